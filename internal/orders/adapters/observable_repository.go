package adapters

import (
	"context"
	"time"

	"github.com/s-urunov-dev/bookstore/internal/database"
	"github.com/s-urunov-dev/bookstore/internal/orders/domain"
	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
	"github.com/s-urunov-dev/bookstore/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableRepository struct {
	repo    ports.OrderRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.OrderRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *ObservableRepository) PlaceOrder(ctx context.Context, params ports.PlaceOrderParams) (*domain.Invoice, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.PlaceOrder")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", params.OrderID),
		attribute.String("book.id", params.BookID),
		attribute.String("operation", "place_order"),
	)

	start := time.Now()
	invoice, err := r.repo.PlaceOrder(ctx, params)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "place_order", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.String("invoice.id", invoice.ID))
	telemetry.SetSpanSuccess(span)
	return invoice, nil
}

func (r *ObservableRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.GetOrder")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", id),
		attribute.String("operation", "get_order"),
	)

	start := time.Now()
	order, err := r.repo.GetOrder(ctx, id)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "get_order", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return order, nil
}

func (r *ObservableRepository) GetInvoiceForUser(ctx context.Context, invoiceID, userID string) (*domain.Invoice, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.GetInvoiceForUser")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("invoice.id", invoiceID),
		attribute.String("operation", "get_invoice_for_user"),
	)

	start := time.Now()
	invoice, err := r.repo.GetInvoiceForUser(ctx, invoiceID, userID)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "get_invoice_for_user", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return invoice, nil
}

func (r *ObservableRepository) CreatePayment(ctx context.Context, payment domain.Payment, markPaid bool) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.CreatePayment")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("payment.id", payment.ID),
		attribute.String("invoice.id", payment.InvoiceID),
		attribute.Bool("payment.successful", payment.IsSuccessful),
		attribute.String("operation", "create_payment"),
	)

	start := time.Now()
	err := r.repo.CreatePayment(ctx, payment, markPaid)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "create_payment", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (r *ObservableRepository) ListOrders(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.ListOrders")
	defer span.End()

	telemetry.AddSpanAttributes(span, listAttributes("list_orders", filter)...)

	start := time.Now()
	orders, err := r.repo.ListOrders(ctx, filter)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "list_orders", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(orders)))
	telemetry.SetSpanSuccess(span)
	return orders, nil
}

func (r *ObservableRepository) ListInvoices(ctx context.Context, filter ports.ListFilter) ([]domain.Invoice, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.ListInvoices")
	defer span.End()

	telemetry.AddSpanAttributes(span, listAttributes("list_invoices", filter)...)

	start := time.Now()
	invoices, err := r.repo.ListInvoices(ctx, filter)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "list_invoices", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(invoices)))
	telemetry.SetSpanSuccess(span)
	return invoices, nil
}

func (r *ObservableRepository) ListPayments(ctx context.Context, filter ports.ListFilter) ([]domain.Payment, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.ListPayments")
	defer span.End()

	telemetry.AddSpanAttributes(span, listAttributes("list_payments", filter)...)

	start := time.Now()
	payments, err := r.repo.ListPayments(ctx, filter)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "list_payments", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(payments)))
	telemetry.SetSpanSuccess(span)
	return payments, nil
}

func listAttributes(operation string, filter ports.ListFilter) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Int("page", filter.Page),
		attribute.Int("page_size", filter.PageSize),
	}
	if filter.UserID != nil {
		attrs = append(attrs, attribute.String("filter.user_id", *filter.UserID))
	}
	return attrs
}
