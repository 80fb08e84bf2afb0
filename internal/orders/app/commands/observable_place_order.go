package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/s-urunov-dev/bookstore/internal/orders/domain"
	"github.com/s-urunov-dev/bookstore/internal/orders/metrics"
	"github.com/s-urunov-dev/bookstore/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservablePlaceOrderHandler struct {
	handler PlaceOrderHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservablePlaceOrderHandler(handler PlaceOrderHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservablePlaceOrderHandler {
	return &ObservablePlaceOrderHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservablePlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Invoice, error) {
	ctx, span := telemetry.StartSpan(ctx, "PlaceOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordOrderPlacementDuration(ctx, duration)
		o.metrics.RecordOrderPlaced(ctx, success)
	}()

	o.logger.InfoContext(ctx, "placing order",
		"user_id", cmd.UserID,
		"book_id", cmd.BookID,
	)

	invoice, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to place order",
			"error", err,
			"user_id", cmd.UserID,
			"book_id", cmd.BookID,
		)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", invoice.Order.ID),
		attribute.String("invoice.id", invoice.ID),
		attribute.String("book.id", invoice.Order.Book.ID),
		attribute.String("invoice.amount", invoice.Amount.String()),
	)

	o.logger.InfoContext(ctx, "order placed successfully",
		"order_id", invoice.Order.ID,
		"invoice_id", invoice.ID,
		"user_id", cmd.UserID,
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return invoice, nil
}
