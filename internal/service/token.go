package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeAccess marks tokens minted for API sessions. The marker keeps a
// token issued for one purpose from being replayed as another if other
// token kinds are ever added.
const TokenTypeAccess = "access"

var (
	// ErrTokenMalformed indicates a structurally invalid token string,
	// including one missing required claims.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrTokenSignature indicates the signature does not verify.
	ErrTokenSignature = errors.New("invalid token signature")
	// ErrTokenExpired indicates a valid signature but an expiry in the past.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the typed payload embedded in every issued token.
type Claims struct {
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// EncodeToken serializes claims into a compact HS256-signed JWT keyed by
// secret.
func EncodeToken(claims *Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// DecodeToken verifies a token's signature and expiry and returns its
// claims. Failures are reported as one of ErrTokenMalformed,
// ErrTokenSignature, or ErrTokenExpired. No clock-skew leeway is applied.
// The token type is not checked here; callers enforce which kinds they
// accept.
func DecodeToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, ErrTokenSignature
	}

	// Required claims beyond what the parser enforces.
	if claims.Subject == "" || claims.TokenType == "" || claims.IssuedAt == nil {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
