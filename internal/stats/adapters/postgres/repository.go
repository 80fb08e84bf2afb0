package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/s-urunov-dev/bookstore/internal/stats/ports"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Snapshot gathers all counters in a single round trip.
func (r *Repository) Snapshot(ctx context.Context) (*ports.Snapshot, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_active = FALSE),
			(SELECT COUNT(*) FROM books),
			(SELECT COUNT(*) FROM payments),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE is_paid = TRUE)
	`

	var snapshot ports.Snapshot
	err := r.pool.QueryRow(ctx, query).Scan(
		&snapshot.TotalUsers,
		&snapshot.BlockedUsers,
		&snapshot.Books,
		&snapshot.Payments,
		&snapshot.Orders,
		&snapshot.PaidOrders,
	)
	if err != nil {
		return nil, fmt.Errorf("select stats snapshot: %w", err)
	}

	return &snapshot, nil
}
