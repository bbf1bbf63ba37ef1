package handler

import (
	"errors"
	"net/http"

	"github.com/wordwell/wordwell/internal/model"
	"github.com/wordwell/wordwell/internal/service"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// loginRequest is the expected payload for the Login endpoint.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a user and returns a signed session token.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.auth.VerifyCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Same status and body whether the username exists or the
			// password is wrong.
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "Authentication error")
		return
	}

	token, expiresIn, err := h.auth.IssueSession(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Authentication error")
		return
	}

	writeJSON(w, http.StatusOK, model.AuthResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User: model.AuthUser{
			Username: user.Username,
			IsAdmin:  user.IsAdmin,
		},
	})
}
