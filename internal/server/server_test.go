package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wordwell/wordwell/internal/config"
	"github.com/wordwell/wordwell/internal/model"
	"github.com/wordwell/wordwell/internal/service"
	"github.com/wordwell/wordwell/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	s, err := store.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ShutdownTimeout: 5 * time.Second,
			RequestTimeout:  10 * time.Second,
			MaxBodySize:     config.DefaultMaxBodySize,
			CORSOrigins:     []string{"*"},
			RateLimit:       0, // disabled so tests can hammer endpoints
		},
		Auth: config.AuthConfig{
			JWTSecret:        "server-test-secret",
			JWTExpiryMinutes: 5,
		},
	}
	authSvc := service.NewAuthService(s, cfg.Auth.JWTSecret, cfg.Auth.JWTExpiryMinutes)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, s, authSvc, logger), s
}

func seedAdminUser(t *testing.T, s *store.Store, username, password string) {
	t.Helper()
	hash, err := service.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if _, err := s.CreateUser(context.Background(), username, hash, true); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

// TestLoginAndManageWords walks the full admin flow: log in, create a word
// through the gate, then read it back from the public endpoint.
func TestLoginAndManageWords(t *testing.T) {
	srv, s := newTestServer(t)
	seedAdminUser(t, s, "admin", "s3cret-passphrase")

	// Unauthenticated create is rejected.
	rr := doJSON(t, srv, "POST", "/admin/en/words", "", model.UpsertWord{
		Word: "x", Definition: "y", Pronunciation: "/z/", WordType: "noun",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: got %d, want 401", rr.Code)
	}

	// Login.
	rr = doJSON(t, srv, "POST", "/auth/login", "", map[string]string{
		"username": "admin", "password": "s3cret-passphrase",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login: got %d, body %s", rr.Code, rr.Body.String())
	}
	var auth model.AuthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &auth); err != nil {
		t.Fatal(err)
	}
	if auth.Token == "" {
		t.Fatal("login returned no token")
	}

	// Create through the gate.
	rr = doJSON(t, srv, "POST", "/admin/en/words", auth.Token, model.UpsertWord{
		Word:          "aplomb",
		Definition:    "self-confidence or assurance",
		Pronunciation: "/əˈplɒm/",
		WordType:      "noun",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("create: got %d, body %s", rr.Code, rr.Body.String())
	}

	// Public random endpoint now serves it, without auth.
	rr = doJSON(t, srv, "GET", "/en/random", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("random: got %d", rr.Code)
	}
	var pub model.PublicWord
	if err := json.Unmarshal(rr.Body.Bytes(), &pub); err != nil {
		t.Fatal(err)
	}
	if pub.Word != "aplomb" {
		t.Errorf("got word %q, want aplomb", pub.Word)
	}
}

func TestRoutePrecedence(t *testing.T) {
	srv, _ := newTestServer(t)

	// Fixed routes must not be swallowed by the /{lang}/{type} wildcard.
	if rr := doJSON(t, srv, "GET", "/health/alive", "", nil); rr.Code != http.StatusOK {
		t.Errorf("/health/alive: got %d", rr.Code)
	}
	if rr := doJSON(t, srv, "GET", "/openapi.json", "", nil); rr.Code != http.StatusOK {
		t.Errorf("/openapi.json: got %d", rr.Code)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doJSON(t, srv, "GET", "/health/alive", "", nil)
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("got X-Content-Type-Options %q", got)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestOversizedBodyRejected(t *testing.T) {
	srv, s := newTestServer(t)
	seedAdminUser(t, s, "admin", "s3cret-passphrase")

	rr := doJSON(t, srv, "POST", "/auth/login", "", map[string]string{
		"username": "admin", "password": "s3cret-passphrase",
	})
	var auth model.AuthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &auth); err != nil {
		t.Fatal(err)
	}

	big := bytes.Repeat([]byte("a"), int(config.DefaultMaxBodySize)+1024)
	req := httptest.NewRequest("POST", "/admin/en/words", bytes.NewReader(big))
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversized body: got %d, want 400", rec.Code)
	}
}
