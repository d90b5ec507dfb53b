package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// PasswordHash holds the digest produced by the password hasher, never the raw password.
// Username is unique across all users; the store enforces it.
type User struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
