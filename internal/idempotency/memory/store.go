package memory

import (
	"context"
	"sync"

	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
)

// Store retains idempotency responses for replaying duplicate requests.
// First write wins, matching the SQL store's conflict handling.
type Store struct {
	mu    sync.RWMutex
	items map[string]ports.StoredResponse
}

// NewStore creates a new in-memory idempotency store.
func NewStore() *Store {
	return &Store{items: make(map[string]ports.StoredResponse)}
}

// Get returns the stored response for a given key if present.
func (s *Store) Get(_ context.Context, key string) (*ports.StoredResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	stored := value
	return &stored, nil
}

// Save stores the response for a key unless one is already recorded.
func (s *Store) Save(_ context.Context, key string, response ports.StoredResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		s.items[key] = response
	}
	return nil
}
