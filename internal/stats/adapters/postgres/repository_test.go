//go:build integration

package postgres_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/s-urunov-dev/bookstore/internal/database"
	"github.com/s-urunov-dev/bookstore/internal/stats/adapters/postgres"
	testpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := testpostgres.Run(ctx,
		"postgres:16-alpine",
		testpostgres.WithDatabase("test"),
		testpostgres.WithUsername("test"),
		testpostgres.WithPassword("test"),
		testpostgres.BasicWaitStrategies(),
		testpostgres.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").WithOccurrence(2)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	projectRoot := findProjectRoot(t)
	migrationsPath := filepath.Join(projectRoot, "migrations")

	if err := database.RunMigrations(connStr, migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func seedUser(t *testing.T, pool *pgxpool.Pool, active bool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO users (id, username, email, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, 'x', 'user', $4, $5)
	`, id, "user-"+id[:8], id[:8]+"@example.com", active, time.Now().UTC())
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

func TestSnapshot(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	t.Run("empty store yields zero counts", func(t *testing.T) {
		snapshot, err := repo.Snapshot(ctx)
		if err != nil {
			t.Fatalf("failed to take snapshot: %v", err)
		}
		if snapshot.TotalUsers != 0 || snapshot.Orders != 0 {
			t.Errorf("expected empty snapshot, got %+v", snapshot)
		}
	})

	t.Run("counts users, books, orders and payments", func(t *testing.T) {
		activeUser := seedUser(t, pool, true)
		seedUser(t, pool, false)

		bookID := uuid.NewString()
		if _, err := pool.Exec(ctx, `
			INSERT INTO books (id, title, price, image, created_at)
			VALUES ($1, 'Counting Book', 10.00, '', $2)
		`, bookID, time.Now().UTC()); err != nil {
			t.Fatalf("failed to seed book: %v", err)
		}

		paidOrder := uuid.NewString()
		unpaidOrder := uuid.NewString()
		for _, row := range []struct {
			id   string
			paid bool
		}{{paidOrder, true}, {unpaidOrder, false}} {
			if _, err := pool.Exec(ctx, `
				INSERT INTO orders (id, user_id, book_id, is_paid, created_at)
				VALUES ($1, $2, $3, $4, $5)
			`, row.id, activeUser, bookID, row.paid, time.Now().UTC()); err != nil {
				t.Fatalf("failed to seed order: %v", err)
			}
		}

		invoiceID := uuid.NewString()
		if _, err := pool.Exec(ctx, `
			INSERT INTO invoices (id, order_id, amount, issued_at)
			VALUES ($1, $2, 10.00, $3)
		`, invoiceID, paidOrder, time.Now().UTC()); err != nil {
			t.Fatalf("failed to seed invoice: %v", err)
		}

		if _, err := pool.Exec(ctx, `
			INSERT INTO payments (id, invoice_id, card_number, is_successful, paid_at)
			VALUES ($1, $2, '1111111111111112', TRUE, $3)
		`, uuid.NewString(), invoiceID, time.Now().UTC()); err != nil {
			t.Fatalf("failed to seed payment: %v", err)
		}

		snapshot, err := repo.Snapshot(ctx)
		if err != nil {
			t.Fatalf("failed to take snapshot: %v", err)
		}

		if snapshot.TotalUsers != 2 {
			t.Errorf("expected 2 users, got %d", snapshot.TotalUsers)
		}
		if snapshot.BlockedUsers != 1 {
			t.Errorf("expected 1 blocked user, got %d", snapshot.BlockedUsers)
		}
		if snapshot.Books != 1 {
			t.Errorf("expected 1 book, got %d", snapshot.Books)
		}
		if snapshot.Orders != 2 {
			t.Errorf("expected 2 orders, got %d", snapshot.Orders)
		}
		if snapshot.PaidOrders != 1 {
			t.Errorf("expected 1 paid order, got %d", snapshot.PaidOrders)
		}
		if snapshot.Payments != 1 {
			t.Errorf("expected 1 payment, got %d", snapshot.Payments)
		}
	})
}
