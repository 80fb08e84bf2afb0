package ports

import (
	"context"
	"errors"
	"time"

	"github.com/s-urunov-dev/bookstore/internal/orders/domain"
)

// OrderRepository exposes persistence operations required by the application layer.
// PlaceOrder writes the order and its invoice in a single transaction; the
// invoice amount is read from the book row inside that transaction.
type OrderRepository interface {
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*domain.Invoice, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	GetInvoiceForUser(ctx context.Context, invoiceID, userID string) (*domain.Invoice, error)
	CreatePayment(ctx context.Context, payment domain.Payment, markPaid bool) error
	ListOrders(ctx context.Context, filter ListFilter) ([]domain.Order, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]domain.Invoice, error)
	ListPayments(ctx context.Context, filter ListFilter) ([]domain.Payment, error)
}

// PlaceOrderParams carries the identifiers for an atomic order+invoice write.
type PlaceOrderParams struct {
	OrderID   string
	InvoiceID string
	UserID    string
	BookID    string
	Now       time.Time
}

// ListFilter narrows list queries by owner and pagination. A nil UserID
// means no owner restriction (admin listings).
type ListFilter struct {
	UserID   *string
	Page     int
	PageSize int
}

var (
	// ErrNotFound is returned when the requested order or invoice does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBookNotFound is returned when an order references a missing book.
	ErrBookNotFound = errors.New("book not found")

	// ErrAlreadyPaid is returned when a settlement races a concurrent payment
	// that already marked the order paid.
	ErrAlreadyPaid = errors.New("order already paid")
)
