package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	v := newTestViper(t)
	v.Set("auth.jwt_secret", "test-secret")

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("got port %d, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.JWTExpiryMinutes != DefaultJWTExpiryMinutes {
		t.Errorf("got expiry %d, want %d", cfg.Auth.JWTExpiryMinutes, DefaultJWTExpiryMinutes)
	}
	if cfg.Server.MaxBodySize != DefaultMaxBodySize {
		t.Errorf("got max body size %d, want %d", cfg.Server.MaxBodySize, DefaultMaxBodySize)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("got driver %q, want sqlite", cfg.Database.Driver)
	}
}

func TestMissingSecretRejected(t *testing.T) {
	v := newTestViper(t)

	if _, err := Load(v); err == nil {
		t.Fatal("expected error for missing jwt_secret")
	} else if !strings.Contains(err.Error(), "jwt_secret") {
		t.Errorf("error should name jwt_secret, got: %v", err)
	}
}

func TestDevModeSubstitutesSecret(t *testing.T) {
	v := newTestViper(t)
	v.Set("dev", true)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		t.Error("expected a dev fallback secret")
	}
}

func TestExpiryBounds(t *testing.T) {
	for _, tc := range []struct {
		minutes int
		ok      bool
	}{
		{0, false},
		{1, true},
		{5, true},
		{1440, true},
		{1441, false},
		{-10, false},
	} {
		v := newTestViper(t)
		v.Set("auth.jwt_secret", "test-secret")
		v.Set("auth.jwt_expiry_minutes", tc.minutes)

		_, err := Load(v)
		if tc.ok && err != nil {
			t.Errorf("expiry %d: unexpected error: %v", tc.minutes, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("expiry %d: expected error", tc.minutes)
		}
	}
}

func TestBadDriverRejected(t *testing.T) {
	v := newTestViper(t)
	v.Set("auth.jwt_secret", "test-secret")
	v.Set("database.driver", "oracle")

	if _, err := Load(v); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
