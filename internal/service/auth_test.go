package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wordwell/wordwell/internal/store"
)

func newTestAuth(t *testing.T) (*AuthService, *store.Store) {
	t.Helper()
	s, err := store.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewAuthService(s, testSecret, 5), s
}

func seedUser(t *testing.T, s *store.Store, username, password string, isAdmin bool) {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if _, err := s.CreateUser(context.Background(), username, hash, isAdmin); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
}

func TestVerifyCredentials(t *testing.T) {
	auth, s := newTestAuth(t)
	seedUser(t, s, "alice", "open sesame", true)
	ctx := context.Background()

	user, err := auth.VerifyCredentials(ctx, "alice", "open sesame")
	if err != nil {
		t.Fatalf("VerifyCredentials: %v", err)
	}
	if user.Username != "alice" || !user.IsAdmin {
		t.Errorf("unexpected user: %+v", user)
	}

	// Unknown user and wrong password must be indistinguishable.
	_, errUnknown := auth.VerifyCredentials(ctx, "mallory", "open sesame")
	_, errWrongPw := auth.VerifyCredentials(ctx, "alice", "wrong")
	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("error messages differ: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestIssueSession(t *testing.T) {
	auth, s := newTestAuth(t)
	seedUser(t, s, "alice", "open sesame", true)

	user, err := auth.VerifyCredentials(context.Background(), "alice", "open sesame")
	if err != nil {
		t.Fatalf("VerifyCredentials: %v", err)
	}

	token, expiresIn, err := auth.IssueSession(user)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	if expiresIn != 5*60 {
		t.Errorf("got expiresIn %d, want %d", expiresIn, 5*60)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("got username %q, want %q", claims.Username, "alice")
	}
	if !claims.IsAdmin {
		t.Error("admin flag not carried into claims")
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("got token type %q, want %q", claims.TokenType, TokenTypeAccess)
	}
	if claims.Subject == "" {
		t.Error("subject claim missing")
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != 5*time.Minute {
		t.Errorf("got ttl %v, want 5m", ttl)
	}
}

func TestIssueSessionNonAdmin(t *testing.T) {
	auth, s := newTestAuth(t)
	seedUser(t, s, "bob", "password123", false)

	user, err := auth.VerifyCredentials(context.Background(), "bob", "password123")
	if err != nil {
		t.Fatalf("VerifyCredentials: %v", err)
	}
	token, _, err := auth.IssueSession(user)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.IsAdmin {
		t.Error("non-admin user got admin claims")
	}
}
