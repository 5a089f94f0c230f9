package types

type TokenResponse struct {
	Token string `json:"token"`
}

// MsgResponse is the body of every status and error response.
type MsgResponse struct {
	Msg string `json:"msg"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
