package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/s-urunov-dev/bookstore/internal/catalog/domain"
	"github.com/s-urunov-dev/bookstore/internal/catalog/ports"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, book domain.Book) error {
	query := `
		INSERT INTO books (id, title, price, image, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Price,
		book.Image,
		book.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	query := `
		SELECT id, title, price, image, created_at
		FROM books
		WHERE id = $1
	`

	var book domain.Book
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Price,
		&book.Image,
		&book.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select book: %w", err)
	}

	return &book, nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Book, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	query := `
		SELECT id, title, price, image, created_at
		FROM books
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	offset := (page - 1) * pageSize

	rows, err := r.pool.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Price,
			&book.Image,
			&book.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}

func (r *Repository) Update(ctx context.Context, book domain.Book) error {
	query := `
		UPDATE books
		SET title = $1, price = $2, image = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query, book.Title, book.Price, book.Image, book.ID)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM books
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrNotFound
	}

	return nil
}
