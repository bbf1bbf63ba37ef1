package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wordwell/wordwell/internal/model"
	"github.com/wordwell/wordwell/internal/store"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password. The two cases are deliberately indistinguishable so login
// responses cannot be used to enumerate usernames.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifies credentials against the user store and issues
// session tokens. The JWT secret and expiry are process-wide read-only
// configuration, injected once at startup.
type AuthService struct {
	store         *store.Store
	jwtSecret     string
	expiryMinutes int
}

// NewAuthService creates an AuthService. expiryMinutes is trusted to be
// within [1, 1440]; config loading validates the range before we get here.
func NewAuthService(st *store.Store, jwtSecret string, expiryMinutes int) *AuthService {
	return &AuthService{
		store:         st,
		jwtSecret:     jwtSecret,
		expiryMinutes: expiryMinutes,
	}
}

// VerifyCredentials looks up username (exact, case-sensitive match) and
// checks password against the stored Argon2id hash. Both lookup misses and
// hash mismatches return ErrInvalidCredentials.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueSession mints an access token for a verified user and returns it
// together with its lifetime in seconds.
func (s *AuthService) IssueSession(user *model.User) (string, int64, error) {
	now := time.Now()
	ttl := time.Duration(s.expiryMinutes) * time.Minute

	claims := &Claims{
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := EncodeToken(claims, s.jwtSecret)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}

	return token, int64(s.expiryMinutes) * 60, nil
}

// ValidateToken decodes and verifies a bearer token using the service's
// configured secret.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	return DecodeToken(tokenStr, s.jwtSecret)
}
