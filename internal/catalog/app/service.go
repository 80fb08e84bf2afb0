package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/s-urunov-dev/bookstore/internal/apperrors"
	"github.com/s-urunov-dev/bookstore/internal/catalog/domain"
	"github.com/s-urunov-dev/bookstore/internal/catalog/ports"
	"github.com/shopspring/decimal"
)

// Service bundles catalog use cases.
type Service struct {
	repo   ports.BookRepository
	logger *slog.Logger
}

// NewService wires required dependencies.
func NewService(repo ports.BookRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// BookInput captures payload for creating or updating a book.
type BookInput struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// CreateBook adds a book to the catalog.
func (s *Service) CreateBook(ctx context.Context, input BookInput) (*domain.Book, error) {
	book := domain.Book{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Price:     input.Price,
		Image:     input.Image,
		CreatedAt: time.Now().UTC(),
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "book created", "book_id", book.ID, "title", book.Title)

	return &book, nil
}

// GetBook retrieves a book by ID.
func (s *Service) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperrors.NotFound("book not found")
		}
		return nil, err
	}
	return book, nil
}

// ListBooks returns catalog entries, newest first.
func (s *Service) ListBooks(ctx context.Context, filter ports.ListFilter) ([]domain.Book, error) {
	return s.repo.List(ctx, filter)
}

// UpdateBook replaces a book's editable fields.
func (s *Service) UpdateBook(ctx context.Context, id string, input BookInput) (*domain.Book, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperrors.NotFound("book not found")
		}
		return nil, err
	}

	updated := *existing
	updated.Title = input.Title
	updated.Price = input.Price
	updated.Image = input.Image

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperrors.NotFound("book not found")
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "book updated", "book_id", id)

	return &updated, nil
}

// DeleteBook removes a book from the catalog.
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return apperrors.NotFound("book not found")
		}
		return err
	}

	s.logger.InfoContext(ctx, "book deleted", "book_id", id)

	return nil
}
