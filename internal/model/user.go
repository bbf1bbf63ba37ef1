package model

import "time"

// User represents an account capable of authenticating against the API.
// Accounts are provisioned through the CLI only; there is no registration
// endpoint. Passwords are stored as Argon2id PHC strings.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // never expose
	IsAdmin      bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
