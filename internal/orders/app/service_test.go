package app

import (
	"encoding/json"
	"testing"
)

// Input payloads must accept the snake_case keys existing clients send.
func TestInputWireKeys(t *testing.T) {
	t.Run("place order payload uses book_id", func(t *testing.T) {
		var input PlaceOrderInput
		if err := json.Unmarshal([]byte(`{"book_id":"book-1"}`), &input); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if input.BookID != "book-1" {
			t.Errorf("expected BookID book-1, got %q", input.BookID)
		}
	})

	t.Run("submit payment payload uses invoice_id", func(t *testing.T) {
		var input SubmitPaymentInput
		if err := json.Unmarshal([]byte(`{"invoice_id":"inv-1","card_number":"1111111111111112"}`), &input); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if input.InvoiceID != "inv-1" {
			t.Errorf("expected InvoiceID inv-1, got %q", input.InvoiceID)
		}
		if input.CardNumber != "1111111111111112" {
			t.Errorf("expected card number to round-trip, got %q", input.CardNumber)
		}
	})
}
