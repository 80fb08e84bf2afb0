package queries

import (
	"context"

	"github.com/s-urunov-dev/bookstore/internal/auth"
	"github.com/s-urunov-dev/bookstore/internal/orders/domain"
	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
)

// ListPaymentsQuery lists payment attempts visible to the caller.
type ListPaymentsQuery struct {
	Caller   auth.Identity
	Page     int
	PageSize int
}

// ListPaymentsQueryHandler executes ListPaymentsQuery.
type ListPaymentsQueryHandler struct {
	repo ports.OrderRepository
}

// NewListPaymentsQueryHandler constructs a ListPaymentsQueryHandler.
func NewListPaymentsQueryHandler(repo ports.OrderRepository) *ListPaymentsQueryHandler {
	return &ListPaymentsQueryHandler{repo: repo}
}

// Handle executes the query with owner scoping applied.
func (h *ListPaymentsQueryHandler) Handle(ctx context.Context, query ListPaymentsQuery) ([]domain.Payment, error) {
	return h.repo.ListPayments(ctx, scopedFilter(query.Caller, query.Page, query.PageSize))
}
