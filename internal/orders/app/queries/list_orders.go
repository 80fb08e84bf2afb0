package queries

import (
	"context"

	"github.com/s-urunov-dev/bookstore/internal/auth"
	"github.com/s-urunov-dev/bookstore/internal/orders/domain"
	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
)

// ListOrdersQuery lists orders visible to the caller. Admins see all
// orders, regular users only their own.
type ListOrdersQuery struct {
	Caller   auth.Identity
	Page     int
	PageSize int
}

// ListOrdersQueryHandler executes ListOrdersQuery.
type ListOrdersQueryHandler struct {
	repo ports.OrderRepository
}

// NewListOrdersQueryHandler constructs a ListOrdersQueryHandler.
func NewListOrdersQueryHandler(repo ports.OrderRepository) *ListOrdersQueryHandler {
	return &ListOrdersQueryHandler{repo: repo}
}

// Handle executes the query with owner scoping applied.
func (h *ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]domain.Order, error) {
	return h.repo.ListOrders(ctx, scopedFilter(query.Caller, query.Page, query.PageSize))
}

// scopedFilter restricts a listing to the caller's own records unless the
// caller is an admin.
func scopedFilter(caller auth.Identity, page, pageSize int) ports.ListFilter {
	filter := ports.ListFilter{Page: page, PageSize: pageSize}
	if !caller.IsAdmin() {
		userID := caller.UserID
		filter.UserID = &userID
	}
	return filter
}
