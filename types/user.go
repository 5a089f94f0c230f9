package types

type User struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Email     string `json:"email" bson:"email"`
	Password  string `json:"-" bson:"password"`
	CreatedAt int64  `json:"created_at" bson:"created_at"`
}
