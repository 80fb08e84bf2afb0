package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the bill issued for an order at placement time. Amount is a
// snapshot of the book price when the order was placed, so later price
// changes never affect an outstanding invoice.
type Invoice struct {
	ID       string          `json:"id"`
	Order    Order           `json:"order"`
	Amount   decimal.Decimal `json:"amount"`
	IssuedAt time.Time       `json:"issued_at"`
}
