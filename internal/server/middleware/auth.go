package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wordwell/wordwell/internal/service"
)

type contextKeyAuth string

// identityKey is the context key for the authenticated identity.
const identityKey contextKeyAuth = "auth_identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	Subject  string
	Username string
	IsAdmin  bool
}

// errMissingBearer covers an absent Authorization header, a non-Bearer
// scheme, and an empty token.
var errMissingBearer = errors.New("missing or malformed authorization header")

// authenticate validates a raw Authorization header value and returns the
// identity it proves. It is the whole decision: scheme check, token
// decode, and type check. The returned error says which check failed;
// callers log it but never expose it to the client.
func authenticate(header, secret string) (*Identity, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return nil, errMissingBearer
	}
	token := strings.TrimPrefix(header, prefix)
	if token == "" {
		return nil, errMissingBearer
	}
	claims, err := service.DecodeToken(token, secret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != service.TokenTypeAccess {
		return nil, fmt.Errorf("unexpected token type %q", claims.TokenType)
	}
	return &Identity{
		Subject:  claims.Subject,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	}, nil
}

// Authenticate returns middleware that validates the Bearer token on the
// request. Every failure (missing header, wrong scheme, bad signature,
// expired token) gets the same 401 so callers learn nothing about which
// check failed; the specific reason goes to the server log. On success an
// Identity is attached to the context.
func Authenticate(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := authenticate(r.Header.Get("Authorization"), secret)
			if err != nil {
				logger.Info("request rejected by auth",
					"error", err,
					"path", r.URL.Path,
					"request_id", GetRequestID(r.Context()),
				)
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns middleware that enforces admin access. It must run
// after Authenticate. A valid token without the admin flag gets 403.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := GetIdentity(r.Context())
			if id == nil {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !id.IsAdmin {
				writeAuthError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIdentity extracts the authenticated identity from the context, or nil
// for an unauthenticated request.
func GetIdentity(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityKey).(*Identity); ok {
		return id
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Manually construct JSON to avoid an import cycle with the handler
	// package. The message never contains characters needing escapes.
	w.Write([]byte(`{"error":"` + message + `"}`))
}
