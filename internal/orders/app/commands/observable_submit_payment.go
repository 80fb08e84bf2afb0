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

type ObservableSubmitPaymentHandler struct {
	handler SubmitPaymentHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableSubmitPaymentHandler(handler SubmitPaymentHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableSubmitPaymentHandler {
	return &ObservableSubmitPaymentHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableSubmitPaymentHandler) Handle(ctx context.Context, cmd SubmitPaymentCommand) (*domain.Payment, error) {
	ctx, span := telemetry.StartSpan(ctx, "SubmitPaymentCommand.Handle")
	defer span.End()

	start := time.Now()
	outcome := "error"
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordPaymentProcessingDuration(ctx, duration)
		o.metrics.RecordPaymentProcessed(ctx, outcome)
	}()

	o.logger.InfoContext(ctx, "processing payment",
		"invoice_id", cmd.InvoiceID,
		"user_id", cmd.UserID,
	)

	payment, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to process payment",
			"error", err,
			"invoice_id", cmd.InvoiceID,
			"user_id", cmd.UserID,
		)
		return nil, err
	}

	if payment.IsSuccessful {
		outcome = "succeeded"
	} else {
		outcome = "declined"
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("payment.id", payment.ID),
		attribute.String("invoice.id", payment.InvoiceID),
		attribute.Bool("payment.successful", payment.IsSuccessful),
	)

	o.logger.InfoContext(ctx, "payment processed",
		"payment_id", payment.ID,
		"invoice_id", payment.InvoiceID,
		"successful", payment.IsSuccessful,
	)

	telemetry.SetSpanSuccess(span)

	return payment, nil
}
