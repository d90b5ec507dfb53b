package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

// PasswordHasher is a one-way password digest. Verify reports whether password
// produces digest, which lets salted hashes stand in for a deterministic one.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(digest, password string) bool
}

const (
	EventUserRegistered = "user.registered"
	EventUserUpdated    = "user.updated"
	EventUserDeleted    = "user.deleted"
)

// AccountEvent is published after a successful mutation. It never carries the password digest.
type AccountEvent struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, evt AccountEvent) error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, AccountEvent) error { return nil }

// UserHit is a single search result.
type UserHit struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserIndex mirrors users into a search backend.
type UserIndex interface {
	Index(ctx context.Context, u *entity.User) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, size int) ([]UserHit, error)
}
