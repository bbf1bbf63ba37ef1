// Package config loads and validates runtime configuration. Values come
// from a YAML config file, WORDWELL_-prefixed environment variables, and
// command-line flags, in ascending precedence.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	// MinJWTExpiryMinutes and MaxJWTExpiryMinutes bound the configurable
	// token lifetime. One minute up to one day.
	MinJWTExpiryMinutes = 1
	MaxJWTExpiryMinutes = 1440

	// DefaultJWTExpiryMinutes keeps admin sessions short unless the
	// operator opts into longer ones.
	DefaultJWTExpiryMinutes = 5

	// DefaultMaxBodySize caps request bodies at 1 MiB.
	DefaultMaxBodySize = 1 << 20
)

// Config is the complete runtime configuration for the server.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Dev      bool
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	MaxBodySize     int64
	CORSOrigins     []string
	RateLimit       int           // requests per window on public routes, 0 disables
	RateLimitWindow time.Duration
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret        string
	JWTExpiryMinutes int
}

// SetDefaults registers default values on the given viper instance. Call
// before binding flags so flag defaults don't mask these.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.max_body_size", DefaultMaxBodySize)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 100)
	v.SetDefault("server.rate_limit_window", "1m")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "wordwell.db")
	v.SetDefault("auth.jwt_expiry_minutes", DefaultJWTExpiryMinutes)
}

// Load reads configuration from the given viper instance and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			RequestTimeout:  v.GetDuration("server.request_timeout"),
			MaxBodySize:     v.GetInt64("server.max_body_size"),
			CORSOrigins:     v.GetStringSlice("server.cors_origins"),
			RateLimit:       v.GetInt("server.rate_limit"),
			RateLimitWindow: v.GetDuration("server.rate_limit_window"),
		},
		Database: DatabaseConfig{
			Driver: v.GetString("database.driver"),
			DSN:    v.GetString("database.dsn"),
		},
		Auth: AuthConfig{
			JWTSecret:        v.GetString("auth.jwt_secret"),
			JWTExpiryMinutes: v.GetInt("auth.jwt_expiry_minutes"),
		},
		Dev: v.GetBool("dev"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that would make the server
// misbehave at runtime. A missing JWT secret is allowed only in dev mode,
// where a well-known insecure default is substituted.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.MaxBodySize <= 0 {
		return fmt.Errorf("server.max_body_size must be positive, got %d", c.Server.MaxBodySize)
	}
	switch c.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("database.driver must be sqlite, postgres, or mysql, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn must not be empty")
	}
	if c.Auth.JWTSecret == "" {
		if !c.Dev {
			return fmt.Errorf("auth.jwt_secret is required (set WORDWELL_AUTH_JWT_SECRET or run with --dev)")
		}
		c.Auth.JWTSecret = "wordwell-dev-secret-change-me"
	}
	if c.Auth.JWTExpiryMinutes < MinJWTExpiryMinutes || c.Auth.JWTExpiryMinutes > MaxJWTExpiryMinutes {
		return fmt.Errorf("auth.jwt_expiry_minutes must be in [%d, %d], got %d",
			MinJWTExpiryMinutes, MaxJWTExpiryMinutes, c.Auth.JWTExpiryMinutes)
	}
	return nil
}
