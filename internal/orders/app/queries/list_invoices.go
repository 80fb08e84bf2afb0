package queries

import (
	"context"

	"github.com/s-urunov-dev/bookstore/internal/auth"
	"github.com/s-urunov-dev/bookstore/internal/orders/domain"
	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
)

// ListInvoicesQuery lists invoices visible to the caller.
type ListInvoicesQuery struct {
	Caller   auth.Identity
	Page     int
	PageSize int
}

// ListInvoicesQueryHandler executes ListInvoicesQuery.
type ListInvoicesQueryHandler struct {
	repo ports.OrderRepository
}

// NewListInvoicesQueryHandler constructs a ListInvoicesQueryHandler.
func NewListInvoicesQueryHandler(repo ports.OrderRepository) *ListInvoicesQueryHandler {
	return &ListInvoicesQueryHandler{repo: repo}
}

// Handle executes the query with owner scoping applied.
func (h *ListInvoicesQueryHandler) Handle(ctx context.Context, query ListInvoicesQuery) ([]domain.Invoice, error) {
	return h.repo.ListInvoices(ctx, scopedFilter(query.Caller, query.Page, query.PageSize))
}
