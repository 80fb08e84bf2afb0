package app

import (
	"context"
	"log/slog"

	"github.com/s-urunov-dev/bookstore/internal/auth"
	"github.com/s-urunov-dev/bookstore/internal/orders/app/commands"
	"github.com/s-urunov-dev/bookstore/internal/orders/app/queries"
	"github.com/s-urunov-dev/bookstore/internal/orders/domain"
	"github.com/s-urunov-dev/bookstore/internal/orders/metrics"
	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
)

// Service bundles use cases for handling orders, invoices and payments via
// the API.
type Service struct {
	idemStore            ports.IdempotencyStore
	placeOrderHandler    commands.PlaceOrderHandler
	submitPaymentHandler commands.SubmitPaymentHandler
	getOrderHandler      *queries.GetOrderQueryHandler
	listOrdersHandler    *queries.ListOrdersQueryHandler
	listInvoicesHandler  *queries.ListInvoicesQueryHandler
	listPaymentsHandler  *queries.ListPaymentsQueryHandler
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	events ports.EventBus,
	idem ports.IdempotencyStore,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	placeOrder := commands.NewObservablePlaceOrderHandler(
		commands.NewPlaceOrderCommandHandler(repo, events), logger, metrics)
	submitPayment := commands.NewObservableSubmitPaymentHandler(
		commands.NewSubmitPaymentCommandHandler(repo, events), logger, metrics)

	return &Service{
		idemStore:            idem,
		placeOrderHandler:    placeOrder,
		submitPaymentHandler: submitPayment,
		getOrderHandler:      queries.NewGetOrderQueryHandler(repo),
		listOrdersHandler:    queries.NewListOrdersQueryHandler(repo),
		listInvoicesHandler:  queries.NewListInvoicesQueryHandler(repo),
		listPaymentsHandler:  queries.NewListPaymentsQueryHandler(repo),
	}
}

// PlaceOrderInput captures the payload for placing an order.
type PlaceOrderInput struct {
	BookID string `json:"book_id"`
}

// SubmitPaymentInput captures the payload for paying an invoice.
type SubmitPaymentInput struct {
	InvoiceID  string `json:"invoice_id"`
	CardNumber string `json:"card_number"`
}

// PlaceOrder places an order for the caller and returns the issued invoice.
func (s *Service) PlaceOrder(ctx context.Context, caller auth.Identity, input PlaceOrderInput) (*domain.Invoice, error) {
	cmd := commands.PlaceOrderCommand{
		UserID: caller.UserID,
		BookID: input.BookID,
	}
	return s.placeOrderHandler.Handle(ctx, cmd)
}

// SubmitPayment records a charge attempt against one of the caller's invoices.
func (s *Service) SubmitPayment(ctx context.Context, caller auth.Identity, input SubmitPaymentInput) (*domain.Payment, error) {
	cmd := commands.SubmitPaymentCommand{
		InvoiceID:  input.InvoiceID,
		UserID:     caller.UserID,
		CardNumber: input.CardNumber,
	}
	return s.submitPaymentHandler.Handle(ctx, cmd)
}

// GetOrder retrieves an order visible to the caller.
func (s *Service) GetOrder(ctx context.Context, caller auth.Identity, id string) (*domain.Order, error) {
	return s.getOrderHandler.Handle(ctx, queries.GetOrderQuery{OrderID: id, Caller: caller})
}

// ListOrders returns the caller's orders, or all orders for admins.
func (s *Service) ListOrders(ctx context.Context, caller auth.Identity, page, pageSize int) ([]domain.Order, error) {
	return s.listOrdersHandler.Handle(ctx, queries.ListOrdersQuery{Caller: caller, Page: page, PageSize: pageSize})
}

// ListInvoices returns the caller's invoices, or all invoices for admins.
func (s *Service) ListInvoices(ctx context.Context, caller auth.Identity, page, pageSize int) ([]domain.Invoice, error) {
	return s.listInvoicesHandler.Handle(ctx, queries.ListInvoicesQuery{Caller: caller, Page: page, PageSize: pageSize})
}

// ListPayments returns the caller's payment attempts, or all for admins.
func (s *Service) ListPayments(ctx context.Context, caller auth.Identity, page, pageSize int) ([]domain.Payment, error) {
	return s.listPaymentsHandler.Handle(ctx, queries.ListPaymentsQuery{Caller: caller, Page: page, PageSize: pageSize})
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}
