package types

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message represents a single turn half in the conversation
type Message struct {
	Role      string `json:"role" bson:"role"`
	Content   string `json:"content" bson:"content"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"`
}

// Chat holds the ordered message log of one conversation. Messages are
// append-only; insertion order is conversation order.
type Chat struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Title     string    `json:"title" bson:"title"`
	Messages  []Message `json:"messages" bson:"messages"`
	CreatedAt int64     `json:"created_at" bson:"created_at"`
}
