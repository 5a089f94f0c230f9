package types

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SendMessageRequest struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

// UploadPDFRequest is the JSON upload variant; Data carries the file
// base64-encoded. The multipart variant uses the "file" form field instead.
type UploadPDFRequest struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`
	ChatID   string `json:"chatId"`
}
