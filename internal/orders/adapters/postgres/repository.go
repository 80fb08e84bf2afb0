package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/s-urunov-dev/bookstore/internal/orders/domain"
	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// PlaceOrder inserts the order and its invoice in one transaction. The
// invoice amount is the book price read inside the same transaction, so a
// concurrent price update cannot split the pair.
func (r *Repository) PlaceOrder(ctx context.Context, params ports.PlaceOrderParams) (*domain.Invoice, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin place order: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	bookQuery := `
		SELECT id, title, price, image, created_at
		FROM books
		WHERE id = $1
	`

	var invoice domain.Invoice
	order := domain.Order{
		ID:        params.OrderID,
		UserID:    params.UserID,
		IsPaid:    false,
		CreatedAt: params.Now,
	}
	err = tx.QueryRow(ctx, bookQuery, params.BookID).Scan(
		&order.Book.ID,
		&order.Book.Title,
		&order.Book.Price,
		&order.Book.Image,
		&order.Book.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrBookNotFound
		}
		return nil, fmt.Errorf("select book for order: %w", err)
	}

	orderQuery := `
		INSERT INTO orders (id, user_id, book_id, is_paid, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, orderQuery,
		order.ID, order.UserID, order.Book.ID, order.IsPaid, order.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	invoice = domain.Invoice{
		ID:       params.InvoiceID,
		Order:    order,
		Amount:   order.Book.Price,
		IssuedAt: params.Now,
	}

	invoiceQuery := `
		INSERT INTO invoices (id, order_id, amount, issued_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, invoiceQuery,
		invoice.ID, order.ID, invoice.Amount, invoice.IssuedAt,
	); err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit place order: %w", err)
	}

	return &invoice, nil
}

func (r *Repository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.is_paid, o.created_at,
		       b.id, b.title, b.price, b.image, b.created_at
		FROM orders o
		JOIN books b ON b.id = o.book_id
		WHERE o.id = $1
	`

	var order domain.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.IsPaid,
		&order.CreatedAt,
		&order.Book.ID,
		&order.Book.Title,
		&order.Book.Price,
		&order.Book.Image,
		&order.Book.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	return &order, nil
}

// GetInvoiceForUser loads an invoice only if the owning order belongs to
// the given user. Foreign invoices surface as not found.
func (r *Repository) GetInvoiceForUser(ctx context.Context, invoiceID, userID string) (*domain.Invoice, error) {
	query := `
		SELECT i.id, i.amount, i.issued_at,
		       o.id, o.user_id, o.is_paid, o.created_at,
		       b.id, b.title, b.price, b.image, b.created_at
		FROM invoices i
		JOIN orders o ON o.id = i.order_id
		JOIN books b ON b.id = o.book_id
		WHERE i.id = $1 AND o.user_id = $2
	`

	var invoice domain.Invoice
	err := r.pool.QueryRow(ctx, query, invoiceID, userID).Scan(
		&invoice.ID,
		&invoice.Amount,
		&invoice.IssuedAt,
		&invoice.Order.ID,
		&invoice.Order.UserID,
		&invoice.Order.IsPaid,
		&invoice.Order.CreatedAt,
		&invoice.Order.Book.ID,
		&invoice.Order.Book.Title,
		&invoice.Order.Book.Price,
		&invoice.Order.Book.Image,
		&invoice.Order.Book.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select invoice: %w", err)
	}

	return &invoice, nil
}

// CreatePayment records the charge attempt and, when it succeeded, marks
// the order paid in the same transaction. The is_paid guard catches a
// concurrent payment settling the same order.
func (r *Repository) CreatePayment(ctx context.Context, payment domain.Payment, markPaid bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create payment: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insertQuery := `
		INSERT INTO payments (id, invoice_id, card_number, is_successful, paid_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, insertQuery,
		payment.ID, payment.InvoiceID, payment.CardNumber, payment.IsSuccessful, payment.PaidAt,
	); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	if markPaid {
		updateQuery := `
			UPDATE orders
			SET is_paid = TRUE
			FROM invoices
			WHERE invoices.id = $1
			  AND orders.id = invoices.order_id
			  AND orders.is_paid = FALSE
		`
		result, err := tx.Exec(ctx, updateQuery, payment.InvoiceID)
		if err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ports.ErrAlreadyPaid
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create payment: %w", err)
	}

	return nil
}

func (r *Repository) ListOrders(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	page, pageSize := normalize(filter)

	query := `
		SELECT o.id, o.user_id, o.is_paid, o.created_at,
		       b.id, b.title, b.price, b.image, b.created_at
		FROM orders o
		JOIN books b ON b.id = o.book_id
		WHERE ($1::text IS NULL OR o.user_id = $1)
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, filter.UserID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.IsPaid,
			&order.CreatedAt,
			&order.Book.ID,
			&order.Book.Title,
			&order.Book.Price,
			&order.Book.Image,
			&order.Book.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}

func (r *Repository) ListInvoices(ctx context.Context, filter ports.ListFilter) ([]domain.Invoice, error) {
	page, pageSize := normalize(filter)

	query := `
		SELECT i.id, i.amount, i.issued_at,
		       o.id, o.user_id, o.is_paid, o.created_at,
		       b.id, b.title, b.price, b.image, b.created_at
		FROM invoices i
		JOIN orders o ON o.id = i.order_id
		JOIN books b ON b.id = o.book_id
		WHERE ($1::text IS NULL OR o.user_id = $1)
		ORDER BY i.issued_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, filter.UserID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var invoice domain.Invoice
		if err := rows.Scan(
			&invoice.ID,
			&invoice.Amount,
			&invoice.IssuedAt,
			&invoice.Order.ID,
			&invoice.Order.UserID,
			&invoice.Order.IsPaid,
			&invoice.Order.CreatedAt,
			&invoice.Order.Book.ID,
			&invoice.Order.Book.Title,
			&invoice.Order.Book.Price,
			&invoice.Order.Book.Image,
			&invoice.Order.Book.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}

	return invoices, nil
}

func (r *Repository) ListPayments(ctx context.Context, filter ports.ListFilter) ([]domain.Payment, error) {
	page, pageSize := normalize(filter)

	query := `
		SELECT p.id, p.invoice_id, p.card_number, p.is_successful, p.paid_at
		FROM payments p
		JOIN invoices i ON i.id = p.invoice_id
		JOIN orders o ON o.id = i.order_id
		WHERE ($1::text IS NULL OR o.user_id = $1)
		ORDER BY p.paid_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, filter.UserID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.InvoiceID,
			&payment.CardNumber,
			&payment.IsSuccessful,
			&payment.PaidAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}

	return payments, nil
}

func normalize(filter ports.ListFilter) (page, pageSize int) {
	page = filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize = filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return page, pageSize
}
