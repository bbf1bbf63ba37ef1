// Package store persists wordwell's dictionary and user accounts behind a
// single sqlx-backed Store. SQLite is the default engine (and the only one
// needed for a single-node deployment); PostgreSQL and MySQL are supported
// for installations that already run one.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps the database connection and exposes word and user operations.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects to the database identified by driver ("sqlite", "postgres",
// or "mysql") and dsn, and applies schema migrations. For SQLite, pass
// ":memory:" as the DSN to get an ephemeral database (used by tests).
func Open(driver, dsn string) (*Store, error) {
	var driverName string
	switch driver {
	case "sqlite":
		driverName = "sqlite"
		if dsn == ":memory:" {
			dsn = ":memory:?_journal_mode=WAL"
		} else if !strings.Contains(dsn, "?") {
			dsn += "?_journal_mode=WAL&_busy_timeout=5000"
		}
	case "postgres":
		driverName = "pgx"
	case "mysql":
		driverName = "mysql"
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}

	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driver == "sqlite" {
		db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive. Used by the readiness
// probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Driver returns the configured driver name.
func (s *Store) Driver() string {
	return s.driver
}

// idColumn returns the auto-increment primary key DDL for the active driver.
func (s *Store) idColumn() string {
	switch s.driver {
	case "postgres":
		return "BIGSERIAL PRIMARY KEY"
	case "mysql":
		return "BIGINT PRIMARY KEY AUTO_INCREMENT"
	default:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

// timestampType returns the timestamp column type for the active driver.
func (s *Store) timestampType() string {
	switch s.driver {
	case "postgres":
		return "TIMESTAMPTZ"
	default:
		return "DATETIME"
	}
}

// randomFn returns the SQL random-ordering function for the active driver.
func (s *Store) randomFn() string {
	if s.driver == "mysql" {
		return "RAND()"
	}
	return "random()"
}

func (s *Store) migrate() error {
	migrations := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS words (
			id %s,
			word TEXT NOT NULL,
			definition TEXT NOT NULL,
			pronunciation TEXT NOT NULL,
			word_type TEXT NOT NULL,
			created_at %s NOT NULL,
			updated_at %s NOT NULL
		)`, s.idColumn(), s.timestampType(), s.timestampType()),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			id %s,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at %s NOT NULL,
			updated_at %s NOT NULL
		)`, s.idColumn(), s.timestampType(), s.timestampType()),
	}

	// MySQL lacks CREATE INDEX IF NOT EXISTS, so the index migration only
	// runs on the other drivers. MySQL deployments can add it manually.
	if s.driver != "mysql" {
		migrations = append(migrations,
			`CREATE INDEX IF NOT EXISTS idx_words_word_type ON words (word_type)`)
	}

	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
