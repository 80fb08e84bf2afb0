package queries

import (
	"context"
	"errors"
	"strings"

	"github.com/s-urunov-dev/bookstore/internal/apperrors"
	"github.com/s-urunov-dev/bookstore/internal/auth"
	"github.com/s-urunov-dev/bookstore/internal/orders/domain"
	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
)

// GetOrderQuery represents a request to retrieve an order by its ID on
// behalf of the given caller.
type GetOrderQuery struct {
	OrderID string
	Caller  auth.Identity
}

// Validate ensures the query has valid parameters.
func (q GetOrderQuery) Validate() error {
	if strings.TrimSpace(q.OrderID) == "" {
		return apperrors.Validation("order_id", "order_id is required")
	}
	return nil
}

// GetOrderQueryHandler executes GetOrderQuery and returns the order if the
// caller may see it. Regular users only see their own orders; a foreign
// order is reported as not found.
type GetOrderQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetOrderQueryHandler constructs a GetOrderQueryHandler.
func NewGetOrderQueryHandler(repo ports.OrderRepository) *GetOrderQueryHandler {
	return &GetOrderQueryHandler{repo: repo}
}

// Handle executes the query and retrieves the order.
func (h *GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*domain.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	order, err := h.repo.GetOrder(ctx, query.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, err
	}

	if !query.Caller.IsAdmin() && order.UserID != query.Caller.UserID {
		return nil, apperrors.NotFound("order not found")
	}

	return order, nil
}
