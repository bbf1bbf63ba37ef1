package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-for-token-tests"

func testClaims(ttl time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		Username:  "alice",
		IsAdmin:   true,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := EncodeToken(testClaims(5*time.Minute), testSecret)
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("token is not three dot-separated segments: %q", token)
	}

	claims, err := DecodeToken(token, testSecret)
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("got username %q, want %q", claims.Username, "alice")
	}
	if !claims.IsAdmin {
		t.Error("admin flag lost in round trip")
	}
	if claims.Subject != "1" {
		t.Errorf("got subject %q, want %q", claims.Subject, "1")
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("got token type %q, want %q", claims.TokenType, TokenTypeAccess)
	}
}

func TestDecodeTokenWrongSecret(t *testing.T) {
	token, err := EncodeToken(testClaims(5*time.Minute), testSecret)
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	if _, err := DecodeToken(token, "a-different-secret"); !errors.Is(err, ErrTokenSignature) {
		t.Errorf("got %v, want ErrTokenSignature", err)
	}
}

func TestDecodeTokenTampered(t *testing.T) {
	token, err := EncodeToken(testClaims(5*time.Minute), testSecret)
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	// Flip one character in the payload segment.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)
	tampered := strings.Join(parts, ".")

	if _, err := DecodeToken(tampered, testSecret); err == nil {
		t.Error("tampered token accepted")
	}
}

func TestDecodeTokenExpired(t *testing.T) {
	token, err := EncodeToken(testClaims(-1*time.Minute), testSecret)
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	if _, err := DecodeToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("got %v, want ErrTokenExpired", err)
	}
}

func TestDecodeTokenGarbage(t *testing.T) {
	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := DecodeToken(token, testSecret); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("token %q: got %v, want ErrTokenMalformed", token, err)
		}
	}
}

func TestDecodeTokenMissingRequiredClaims(t *testing.T) {
	now := time.Now()

	// No subject.
	claims := testClaims(5 * time.Minute)
	claims.Subject = ""
	token, err := EncodeToken(claims, testSecret)
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	if _, err := DecodeToken(token, testSecret); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("missing subject: got %v, want ErrTokenMalformed", err)
	}

	// No expiry at all.
	noExp := &Claims{
		Username:  "alice",
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "1",
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	token, err = EncodeToken(noExp, testSecret)
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	if _, err := DecodeToken(token, testSecret); err == nil {
		t.Error("token without expiry accepted")
	}
}

func TestDecodeTokenRejectsAlgNone(t *testing.T) {
	// An unsigned token must never validate, no matter what its header
	// claims about the algorithm.
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, testClaims(5*time.Minute))
	unsigned, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	if _, err := DecodeToken(unsigned, testSecret); err == nil {
		t.Error("alg=none token accepted")
	}
}

func TestDecodeTokenOtherTypeAccepted(t *testing.T) {
	// Decode verifies integrity and expiry only. A token with an
	// unexpected type still decodes; callers enforce type policy.
	claims := testClaims(5 * time.Minute)
	claims.TokenType = "refresh"
	token, err := EncodeToken(claims, testSecret)
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	got, err := DecodeToken(token, testSecret)
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}
	if got.TokenType != "refresh" {
		t.Errorf("got token type %q, want %q", got.TokenType, "refresh")
	}
}
