package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	catalogports "github.com/s-urunov-dev/bookstore/internal/catalog/ports"
	"github.com/s-urunov-dev/bookstore/internal/orders/domain"
	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
)

// Repository keeps orders, invoices and payments in memory. Books are read
// from the catalog repository, mirroring the join the SQL adapter performs.
type Repository struct {
	mu       sync.RWMutex
	books    catalogports.BookRepository
	orders   map[string]domain.Order
	invoices map[string]domain.Invoice
	payments []domain.Payment
}

// NewRepository creates an empty in-memory order store backed by the given
// book source.
func NewRepository(books catalogports.BookRepository) *Repository {
	return &Repository{
		books:    books,
		orders:   make(map[string]domain.Order),
		invoices: make(map[string]domain.Invoice),
	}
}

func (r *Repository) PlaceOrder(ctx context.Context, params ports.PlaceOrderParams) (*domain.Invoice, error) {
	book, err := r.books.GetByID(ctx, params.BookID)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, ports.ErrBookNotFound
		}
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order := domain.Order{
		ID:        params.OrderID,
		UserID:    params.UserID,
		Book:      *book,
		IsPaid:    false,
		CreatedAt: params.Now,
	}
	invoice := domain.Invoice{
		ID:       params.InvoiceID,
		Order:    order,
		Amount:   book.Price,
		IssuedAt: params.Now,
	}

	r.orders[order.ID] = order
	r.invoices[invoice.ID] = invoice

	return &invoice, nil
}

func (r *Repository) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &order, nil
}

func (r *Repository) GetInvoiceForUser(_ context.Context, invoiceID, userID string) (*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invoice, ok := r.invoices[invoiceID]
	if !ok || invoice.Order.UserID != userID {
		return nil, ports.ErrNotFound
	}

	// Reflect the current paid state on the embedded order.
	if order, ok := r.orders[invoice.Order.ID]; ok {
		invoice.Order = order
	}

	return &invoice, nil
}

func (r *Repository) CreatePayment(_ context.Context, payment domain.Payment, markPaid bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if markPaid {
		invoice, ok := r.invoices[payment.InvoiceID]
		if !ok {
			return ports.ErrNotFound
		}
		order := r.orders[invoice.Order.ID]
		if order.IsPaid {
			return ports.ErrAlreadyPaid
		}
		order.IsPaid = true
		r.orders[order.ID] = order
	}

	r.payments = append(r.payments, payment)
	return nil
}

func (r *Repository) ListOrders(_ context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []domain.Order
	for _, order := range r.orders {
		if filter.UserID != nil && order.UserID != *filter.UserID {
			continue
		}
		orders = append(orders, order)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return paginate(orders, filter), nil
}

func (r *Repository) ListInvoices(_ context.Context, filter ports.ListFilter) ([]domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var invoices []domain.Invoice
	for _, invoice := range r.invoices {
		if filter.UserID != nil && invoice.Order.UserID != *filter.UserID {
			continue
		}
		if order, ok := r.orders[invoice.Order.ID]; ok {
			invoice.Order = order
		}
		invoices = append(invoices, invoice)
	}

	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].IssuedAt.After(invoices[j].IssuedAt)
	})

	return paginate(invoices, filter), nil
}

func (r *Repository) ListPayments(_ context.Context, filter ports.ListFilter) ([]domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payments []domain.Payment
	for _, payment := range r.payments {
		if filter.UserID != nil {
			invoice, ok := r.invoices[payment.InvoiceID]
			if !ok || invoice.Order.UserID != *filter.UserID {
				continue
			}
		}
		payments = append(payments, payment)
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].PaidAt.After(payments[j].PaidAt)
	})

	return paginate(payments, filter), nil
}

func paginate[T any](items []T, filter ports.ListFilter) []T {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
