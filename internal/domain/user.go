package domain

import "time"

// User represents an account that can create threads and save books.
type User struct {
	Entity
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	DisplayName  string     `json:"display_name"`
	LastLoginAt  *time.Time `json:"last_login_at,omitzero"`
}
