package ports

import (
	"context"
	"errors"

	"github.com/s-urunov-dev/bookstore/internal/catalog/domain"
)

// BookRepository exposes persistence operations required by the application layer.
type BookRepository interface {
	Create(ctx context.Context, book domain.Book) error
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Book, error)
	Update(ctx context.Context, book domain.Book) error
	Delete(ctx context.Context, id string) error
}

// ListFilter narrows list queries by pagination.
type ListFilter struct {
	Page     int
	PageSize int
}

var (
	// ErrNotFound is returned when the requested book does not exist.
	ErrNotFound = errors.New("book not found")
)
