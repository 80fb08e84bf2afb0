package memory

import (
	"context"
	"sync"

	"github.com/s-urunov-dev/bookstore/internal/accounts/domain"
	"github.com/s-urunov-dev/bookstore/internal/accounts/ports"
)

// Repository provides an in-memory user store useful for local development and tests.
type Repository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{users: make(map[string]domain.User)}
}

func (r *Repository) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return ports.ErrDuplicateUsername
		}
	}

	r.users[user.ID] = user
	return nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := user
	return &copy, nil
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			copy := user
			return &copy, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ports.ErrNotFound
	}

	user.IsActive = active
	r.users[id] = user
	return nil
}
