package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned by lookups, Update and Delete when no row matches.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned by Create and Update when the unique username constraint rejects the write.
	ErrDuplicateUsername = errors.New("username already exists")
)

// UserRepository defines the interface for user-related persistence operations.
type UserRepository interface {
	GetAll(ctx context.Context) ([]*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Create assigns u.ID and the timestamps.
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error
}
