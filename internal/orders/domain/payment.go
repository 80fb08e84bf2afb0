package domain

import (
	"time"

	"github.com/s-urunov-dev/bookstore/internal/apperrors"
)

const cardNumberLength = 16

// Payment records a charge attempt against an invoice. Failed attempts
// are kept as well, so the history of declined cards is queryable.
type Payment struct {
	ID           string    `json:"id"`
	InvoiceID    string    `json:"invoice_id"`
	CardNumber   string    `json:"card_number"`
	IsSuccessful bool      `json:"is_successful"`
	PaidAt       time.Time `json:"paid_at"`
}

// ValidateCardNumber checks that the card number is exactly 16 digits.
func ValidateCardNumber(cardNumber string) error {
	if len(cardNumber) != cardNumberLength {
		return apperrors.Validation("card_number", "card number must be 16 digits")
	}
	for _, c := range cardNumber {
		if c < '0' || c > '9' {
			return apperrors.Validation("card_number", "card number must contain only digits")
		}
	}
	return nil
}

// ChargeSucceeds simulates the payment gateway: cards whose last digit is
// even are charged successfully, odd ones are declined. The card number
// must already be validated.
func ChargeSucceeds(cardNumber string) bool {
	last := cardNumber[len(cardNumber)-1]
	return (last-'0')%2 == 0
}
