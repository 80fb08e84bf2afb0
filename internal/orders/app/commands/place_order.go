package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/s-urunov-dev/bookstore/internal/apperrors"
	"github.com/s-urunov-dev/bookstore/internal/orders/domain"
	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
)

type PlaceOrderCommand struct {
	UserID string
	BookID string
}

func (c PlaceOrderCommand) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return apperrors.Validation("user_id", "user_id is required")
	}
	if strings.TrimSpace(c.BookID) == "" {
		return apperrors.Validation("book_id", "book_id is required")
	}
	return nil
}

type PlaceOrderHandler interface {
	Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Invoice, error)
}

type PlaceOrderCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
}

func NewPlaceOrderCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
) *PlaceOrderCommandHandler {
	return &PlaceOrderCommandHandler{
		repo:   repo,
		events: events,
	}
}

func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Invoice, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	params := ports.PlaceOrderParams{
		OrderID:   uuid.NewString(),
		InvoiceID: uuid.NewString(),
		UserID:    cmd.UserID,
		BookID:    cmd.BookID,
		Now:       time.Now().UTC(),
	}

	invoice, err := h.repo.PlaceOrder(ctx, params)
	if err != nil {
		if errors.Is(err, ports.ErrBookNotFound) {
			return nil, apperrors.NotFound("book not found")
		}
		return nil, err
	}

	if err := h.events.PublishOrderPlaced(ctx, invoice.Order.ID); err != nil {
		return invoice, fmt.Errorf("order saved but failed to publish event: %w", err)
	}

	return invoice, nil
}
