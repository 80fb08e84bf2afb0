package domain

import (
	"time"

	catalog "github.com/s-urunov-dev/bookstore/internal/catalog/domain"
)

// Order represents a purchase of a single book by a user. An order is
// unpaid until a successful payment settles its invoice.
type Order struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user"`
	Book      catalog.Book `json:"book"`
	IsPaid    bool         `json:"is_paid"`
	CreatedAt time.Time    `json:"created_at"`
}
