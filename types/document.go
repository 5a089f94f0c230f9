package types

// PDF stores an uploaded document together with its raw payload. A PDF
// belongs to exactly one user and is scoped to exactly one chat.
type PDF struct {
	ID         string `json:"id" bson:"_id,omitempty"`
	UserID     string `json:"user_id" bson:"user_id"`
	ChatID     string `json:"chat_id" bson:"chat_id"`
	Filename   string `json:"filename" bson:"filename"`
	Data       []byte `json:"-" bson:"data"`
	UploadedAt int64  `json:"uploaded_at" bson:"uploaded_at"`
}

// PDFMetadata is the list/upload response shape, without the payload.
type PDFMetadata struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	ChatID     string `json:"chat_id"`
	Filename   string `json:"filename"`
	UploadedAt int64  `json:"uploaded_at"`
}

func (p *PDF) Metadata() PDFMetadata {
	return PDFMetadata{
		ID:         p.ID,
		UserID:     p.UserID,
		ChatID:     p.ChatID,
		Filename:   p.Filename,
		UploadedAt: p.UploadedAt,
	}
}

// DocumentServiceConfig contains configuration options for PDF processing
type DocumentServiceConfig struct {
	MaxChunkSize int // Maximum size for text chunks
	OverlapSize  int // Size of overlap between chunks
}
