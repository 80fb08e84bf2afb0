package ports

import "context"

// EventBus defines the contract for publishing order lifecycle events.
type EventBus interface {
	PublishOrderPlaced(ctx context.Context, orderID string) error
	PublishPaymentSucceeded(ctx context.Context, paymentID string) error
	PublishPaymentFailed(ctx context.Context, paymentID string, reason string) error
}
