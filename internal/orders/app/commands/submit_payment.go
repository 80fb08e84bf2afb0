package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/s-urunov-dev/bookstore/internal/apperrors"
	"github.com/s-urunov-dev/bookstore/internal/orders/domain"
	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
)

type SubmitPaymentCommand struct {
	InvoiceID  string
	UserID     string
	CardNumber string
}

func (c SubmitPaymentCommand) Validate() error {
	if strings.TrimSpace(c.InvoiceID) == "" {
		return apperrors.Validation("invoice_id", "invoice_id is required")
	}
	return domain.ValidateCardNumber(c.CardNumber)
}

type SubmitPaymentHandler interface {
	Handle(ctx context.Context, cmd SubmitPaymentCommand) (*domain.Payment, error)
}

type SubmitPaymentCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
}

func NewSubmitPaymentCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
) *SubmitPaymentCommandHandler {
	return &SubmitPaymentCommandHandler{
		repo:   repo,
		events: events,
	}
}

// Handle records a payment attempt against an invoice owned by the caller.
// The card is charged when its last digit is even; a successful charge
// settles the invoice and marks the order paid. Invoices of other users
// surface as not found.
func (h *SubmitPaymentCommandHandler) Handle(ctx context.Context, cmd SubmitPaymentCommand) (*domain.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	invoice, err := h.repo.GetInvoiceForUser(ctx, cmd.InvoiceID, cmd.UserID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperrors.NotFound("invoice not found")
		}
		return nil, err
	}

	if invoice.Order.IsPaid {
		return nil, apperrors.Conflict("", "order is already paid")
	}

	success := domain.ChargeSucceeds(cmd.CardNumber)

	payment := domain.Payment{
		ID:           uuid.NewString(),
		InvoiceID:    invoice.ID,
		CardNumber:   cmd.CardNumber,
		IsSuccessful: success,
		PaidAt:       time.Now().UTC(),
	}

	if err := h.repo.CreatePayment(ctx, payment, success); err != nil {
		if errors.Is(err, ports.ErrAlreadyPaid) {
			return nil, apperrors.Conflict("", "order is already paid")
		}
		return nil, err
	}

	if success {
		if err := h.events.PublishPaymentSucceeded(ctx, payment.ID); err != nil {
			return &payment, err
		}
	} else {
		if err := h.events.PublishPaymentFailed(ctx, payment.ID, "card declined"); err != nil {
			return &payment, err
		}
	}

	return &payment, nil
}
