package model

// ErrorResponse is the envelope for every rejected request. Messages stay
// generic; which check failed is only visible in server logs.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AuthResponse is the payload returned from a successful login.
type AuthResponse struct {
	Token     string   `json:"token"`
	ExpiresIn int64    `json:"expires_in"`
	User      AuthUser `json:"user"`
}

// AuthUser is the client-facing slice of the account embedded in an
// AuthResponse.
type AuthUser struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}
