package models

// User is a chat-platform participant. Rows are created lazily on the first
// score submission and never deleted.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
}
