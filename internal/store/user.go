package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wordwell/wordwell/internal/model"
)

// GetUserByUsername returns the user with the given username, or ErrNotFound.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	q := s.db.Rebind("SELECT * FROM users WHERE username = ?")
	err := s.db.GetContext(ctx, &u, q, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new user with the given pre-hashed password and
// returns it with ID and timestamps set.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (*model.User, error) {
	now := time.Now().UTC()
	u := model.User{
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if s.driver == "mysql" {
		q := s.db.Rebind(
			`INSERT INTO users (username, password_hash, is_admin, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?)`)
		res, err := s.db.ExecContext(ctx, q,
			u.Username, u.PasswordHash, u.IsAdmin, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		u.ID = id
		return &u, nil
	}

	q := s.db.Rebind(
		`INSERT INTO users (username, password_hash, is_admin, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`)
	if err := s.db.GetContext(ctx, &u.ID, q,
		u.Username, u.PasswordHash, u.IsAdmin, u.CreatedAt, u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

// ListUsers returns all users ordered by username.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := s.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY username"); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// HasAnyAdmin reports whether at least one admin account exists.
func (s *Store) HasAnyAdmin(ctx context.Context) (bool, error) {
	var n int64
	q := s.db.Rebind("SELECT COUNT(*) FROM users WHERE is_admin = ?")
	if err := s.db.GetContext(ctx, &n, q, true); err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return n > 0, nil
}

// DeleteUser removes the user with the given username, or returns
// ErrNotFound.
func (s *Store) DeleteUser(ctx context.Context, username string) error {
	q := s.db.Rebind("DELETE FROM users WHERE username = ?")
	res, err := s.db.ExecContext(ctx, q, username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
