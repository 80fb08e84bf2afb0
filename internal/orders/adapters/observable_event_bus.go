package adapters

import (
	"context"
	"time"

	"github.com/s-urunov-dev/bookstore/internal/kafka"
	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
	"github.com/s-urunov-dev/bookstore/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableEventBus struct {
	bus     ports.EventBus
	metrics *kafka.Metrics
}

func NewObservableEventBus(bus ports.EventBus, metrics *kafka.Metrics) *ObservableEventBus {
	return &ObservableEventBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (e *ObservableEventBus) PublishOrderPlaced(ctx context.Context, orderID string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderPlaced")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", orderID),
		attribute.String("event.type", "order.placed"),
		attribute.String("topic", "order.placed"),
	)

	start := time.Now()
	err := e.bus.PublishOrderPlaced(ctx, orderID)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, "order.placed", duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishPaymentSucceeded(ctx context.Context, paymentID string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishPaymentSucceeded")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("payment.id", paymentID),
		attribute.String("event.type", "payment.succeeded"),
		attribute.String("topic", "payment.succeeded"),
	)

	start := time.Now()
	err := e.bus.PublishPaymentSucceeded(ctx, paymentID)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, "payment.succeeded", duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishPaymentFailed(ctx context.Context, paymentID string, reason string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishPaymentFailed")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("payment.id", paymentID),
		attribute.String("event.type", "payment.failed"),
		attribute.String("topic", "payment.failed"),
		attribute.String("failure.reason", reason),
	)

	start := time.Now()
	err := e.bus.PublishPaymentFailed(ctx, paymentID, reason)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, "payment.failed", duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
