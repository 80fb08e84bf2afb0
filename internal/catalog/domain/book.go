package domain

import (
	"strings"
	"time"

	"github.com/s-urunov-dev/bookstore/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Book represents a catalog entry. Price is a fixed-point money amount.
type Book struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	CreatedAt time.Time       `json:"created_at"`
}

// Validate ensures the book adheres to business constraints.
func (b Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return apperrors.Validation("title", "title is required")
	}
	if !b.Price.IsPositive() {
		return apperrors.Validation("price", "price must be greater than zero")
	}
	return nil
}
