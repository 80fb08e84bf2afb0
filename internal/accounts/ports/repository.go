package ports

import (
	"context"
	"errors"

	"github.com/s-urunov-dev/bookstore/internal/accounts/domain"
)

// UserRepository exposes persistence operations required by the application layer.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) error
}

var (
	// ErrNotFound is returned when the requested user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
)
