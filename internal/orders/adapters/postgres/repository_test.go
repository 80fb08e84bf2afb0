//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/s-urunov-dev/bookstore/internal/database"
	"github.com/s-urunov-dev/bookstore/internal/orders/adapters/postgres"
	"github.com/s-urunov-dev/bookstore/internal/orders/domain"
	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
	"github.com/shopspring/decimal"
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

func seedUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO users (id, username, email, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, 'x', 'user', TRUE, $4)
	`, id, "user-"+id[:8], id[:8]+"@example.com", time.Now().UTC())
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

func seedBook(t *testing.T, pool *pgxpool.Pool, price string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO books (id, title, price, image, created_at)
		VALUES ($1, 'Test Book', $2, '', $3)
	`, id, price, time.Now().UTC())
	if err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}
	return id
}

func place(t *testing.T, repo *postgres.Repository, userID, bookID string) *domain.Invoice {
	t.Helper()
	invoice, err := repo.PlaceOrder(context.Background(), ports.PlaceOrderParams{
		OrderID:   uuid.NewString(),
		InvoiceID: uuid.NewString(),
		UserID:    userID,
		BookID:    bookID,
		Now:       time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to place order: %v", err)
	}
	return invoice
}

func TestPlaceOrder(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)

	userID := seedUser(t, pool)
	bookID := seedBook(t, pool, "42.50")

	invoice := place(t, repo, userID, bookID)

	if !invoice.Amount.Equal(decimal.RequireFromString("42.50")) {
		t.Errorf("expected invoice amount 42.50, got %s", invoice.Amount)
	}
	if invoice.Order.IsPaid {
		t.Error("expected new order to be unpaid")
	}

	order, err := repo.GetOrder(context.Background(), invoice.Order.ID)
	if err != nil {
		t.Fatalf("failed to load order: %v", err)
	}
	if order.Book.ID != bookID {
		t.Errorf("expected book %s, got %s", bookID, order.Book.ID)
	}
}

func TestPlaceOrderUnknownBook(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)

	userID := seedUser(t, pool)

	_, err := repo.PlaceOrder(context.Background(), ports.PlaceOrderParams{
		OrderID:   uuid.NewString(),
		InvoiceID: uuid.NewString(),
		UserID:    userID,
		BookID:    "missing",
		Now:       time.Now().UTC(),
	})
	if !errors.Is(err, ports.ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
}

func TestGetInvoiceForUser(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	userID := seedUser(t, pool)
	otherID := seedUser(t, pool)
	bookID := seedBook(t, pool, "10.00")

	invoice := place(t, repo, userID, bookID)

	retrieved, err := repo.GetInvoiceForUser(ctx, invoice.ID, userID)
	if err != nil {
		t.Fatalf("failed to load invoice: %v", err)
	}
	if retrieved.Order.UserID != userID {
		t.Errorf("expected owner %s, got %s", userID, retrieved.Order.UserID)
	}

	if _, err := repo.GetInvoiceForUser(ctx, invoice.ID, otherID); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign invoice, got %v", err)
	}
}

func TestCreatePayment(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	userID := seedUser(t, pool)
	bookID := seedBook(t, pool, "10.00")
	invoice := place(t, repo, userID, bookID)

	newPayment := func(successful bool) domain.Payment {
		return domain.Payment{
			ID:           uuid.NewString(),
			InvoiceID:    invoice.ID,
			CardNumber:   "1111111111111112",
			IsSuccessful: successful,
			PaidAt:       time.Now().UTC(),
		}
	}

	t.Run("declined payment leaves order unpaid", func(t *testing.T) {
		if err := repo.CreatePayment(ctx, newPayment(false), false); err != nil {
			t.Fatalf("failed to record declined payment: %v", err)
		}

		order, err := repo.GetOrder(ctx, invoice.Order.ID)
		if err != nil {
			t.Fatalf("failed to load order: %v", err)
		}
		if order.IsPaid {
			t.Error("expected order to remain unpaid")
		}
	})

	t.Run("successful payment marks order paid", func(t *testing.T) {
		if err := repo.CreatePayment(ctx, newPayment(true), true); err != nil {
			t.Fatalf("failed to record payment: %v", err)
		}

		order, err := repo.GetOrder(ctx, invoice.Order.ID)
		if err != nil {
			t.Fatalf("failed to load order: %v", err)
		}
		if !order.IsPaid {
			t.Error("expected order to be marked paid")
		}
	})

	t.Run("settling a paid order returns ErrAlreadyPaid and keeps no payment row", func(t *testing.T) {
		racing := newPayment(true)
		if err := repo.CreatePayment(ctx, racing, true); !errors.Is(err, ports.ErrAlreadyPaid) {
			t.Fatalf("expected ErrAlreadyPaid, got %v", err)
		}

		payments, err := repo.ListPayments(ctx, ports.ListFilter{UserID: &userID})
		if err != nil {
			t.Fatalf("failed to list payments: %v", err)
		}
		for _, p := range payments {
			if p.ID == racing.ID {
				t.Error("expected racing payment to be rolled back")
			}
		}
	})
}

func TestListScoping(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	firstUser := seedUser(t, pool)
	secondUser := seedUser(t, pool)
	bookID := seedBook(t, pool, "10.00")

	place(t, repo, firstUser, bookID)
	place(t, repo, secondUser, bookID)

	orders, err := repo.ListOrders(ctx, ports.ListFilter{UserID: &firstUser})
	if err != nil {
		t.Fatalf("failed to list orders: %v", err)
	}
	if len(orders) != 1 || orders[0].UserID != firstUser {
		t.Errorf("expected 1 order for %s, got %d", firstUser, len(orders))
	}

	all, err := repo.ListOrders(ctx, ports.ListFilter{})
	if err != nil {
		t.Fatalf("failed to list all orders: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 orders, got %d", len(all))
	}

	invoices, err := repo.ListInvoices(ctx, ports.ListFilter{UserID: &secondUser})
	if err != nil {
		t.Fatalf("failed to list invoices: %v", err)
	}
	if len(invoices) != 1 || invoices[0].Order.UserID != secondUser {
		t.Errorf("expected 1 invoice for %s, got %d", secondUser, len(invoices))
	}
}
