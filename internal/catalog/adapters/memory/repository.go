package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/s-urunov-dev/bookstore/internal/catalog/domain"
	"github.com/s-urunov-dev/bookstore/internal/catalog/ports"
)

// Repository provides an in-memory book store useful for local development and tests.
type Repository struct {
	mu    sync.RWMutex
	books map[string]domain.Book
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{books: make(map[string]domain.Book)}
}

func (r *Repository) Create(_ context.Context, book domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[book.ID] = book
	return nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.books[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := book
	return &copy, nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Book, 0, len(r.books))
	for _, book := range r.books {
		result = append(result, book)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start >= len(result) {
		return []domain.Book{}, nil
	}

	end := start + pageSize
	if end > len(result) {
		end = len(result)
	}

	slice := make([]domain.Book, end-start)
	copy(slice, result[start:end])

	return slice, nil
}

func (r *Repository) Update(_ context.Context, book domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[book.ID]; !ok {
		return ports.ErrNotFound
	}
	r.books[book.ID] = book
	return nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.books, id)
	return nil
}
