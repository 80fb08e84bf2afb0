package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	ordersPlacedTotal      metric.Int64Counter
	orderPlacementDuration metric.Float64Histogram
	paymentsProcessedTotal metric.Int64Counter
	paymentProcessDuration metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.ordersPlacedTotal, err = meter.Int64Counter(
		"orders_placed_total",
		metric.WithDescription("Total number of orders placed"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create orders_placed_total counter: %w", err)
	}

	m.orderPlacementDuration, err = meter.Float64Histogram(
		"order_placement_duration_seconds",
		metric.WithDescription("Duration of order placement operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_placement_duration histogram: %w", err)
	}

	m.paymentsProcessedTotal, err = meter.Int64Counter(
		"payments_processed_total",
		metric.WithDescription("Total number of payment attempts processed"),
		metric.WithUnit("{payment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create payments_processed_total counter: %w", err)
	}

	m.paymentProcessDuration, err = meter.Float64Histogram(
		"payment_processing_duration_seconds",
		metric.WithDescription("Duration of payment processing operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create payment_processing_duration histogram: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordOrderPlaced(ctx context.Context, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.ordersPlacedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

func (m *Metrics) RecordOrderPlacementDuration(ctx context.Context, durationSeconds float64) {
	m.orderPlacementDuration.Record(ctx, durationSeconds)
}

// RecordPaymentProcessed tracks a processed payment attempt. Outcome is
// "succeeded" or "declined" for completed attempts, "error" when the
// attempt itself failed.
func (m *Metrics) RecordPaymentProcessed(ctx context.Context, outcome string) {
	m.paymentsProcessedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *Metrics) RecordPaymentProcessingDuration(ctx context.Context, durationSeconds float64) {
	m.paymentProcessDuration.Record(ctx, durationSeconds)
}
