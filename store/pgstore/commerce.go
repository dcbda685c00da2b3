package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/voyantic/concierge/store"
)

const foreignKeyViolation = "23503"

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

const orderColumns = `
	id, user_id, order_number, status, total_amount,
	COALESCE(shipping_address, ''), COALESCE(tracking_number, ''),
	estimated_delivery, created_at, updated_at`

func (s *Store) GetOrderByNumber(ctx context.Context, orderNumber string) (*store.Order, error) {
	return s.getOrder(ctx, `WHERE order_number = $1`, orderNumber)
}

func (s *Store) GetOrderByID(ctx context.Context, id string) (*store.Order, error) {
	return s.getOrder(ctx, `WHERE id = $1`, id)
}

func (s *Store) getOrder(ctx context.Context, where string, arg any) (*store.Order, error) {
	var order store.Order
	row := s.pool.QueryRow(ctx, `SELECT`+orderColumns+` FROM orders `+where, arg)
	err := row.Scan(&order.ID, &order.UserID, &order.OrderNumber, &order.Status, &order.TotalAmount,
		&order.ShippingAddress, &order.TrackingNumber, &order.EstimatedDelivery,
		&order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := s.listItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (s *Store) ListOrdersByUser(ctx context.Context, userID, status string, limit int) ([]store.Order, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.pool.Query(ctx, `
		SELECT`+orderColumns+`
		FROM orders
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`, userID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []store.Order
	for rows.Next() {
		var order store.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.OrderNumber, &order.Status, &order.TotalAmount,
			&order.ShippingAddress, &order.TrackingNumber, &order.EstimatedDelivery,
			&order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	for i := range orders {
		items, err := s.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *Store) listItems(ctx context.Context, orderID string) ([]store.OrderItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT product_name, COALESCE(category, ''), quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_name
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []store.OrderItem
	for rows.Next() {
		var item store.OrderItem
		if err := rows.Scan(&item.ProductName, &item.Category, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("list order items: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return items, nil
}

const invoiceColumns = `
	id, user_id, order_id, invoice_number, status, amount, due_date, paid_at, created_at`

func (s *Store) GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*store.Invoice, error) {
	return s.getInvoice(ctx, `WHERE invoice_number = $1`, invoiceNumber)
}

func (s *Store) GetInvoiceByOrder(ctx context.Context, orderID string) (*store.Invoice, error) {
	return s.getInvoice(ctx, `WHERE order_id = $1`, orderID)
}

func (s *Store) getInvoice(ctx context.Context, where string, arg any) (*store.Invoice, error) {
	var invoice store.Invoice
	row := s.pool.QueryRow(ctx, `SELECT`+invoiceColumns+` FROM invoices `+where, arg)
	err := row.Scan(&invoice.ID, &invoice.UserID, &invoice.OrderID, &invoice.InvoiceNumber,
		&invoice.Status, &invoice.Amount, &invoice.DueDate, &invoice.PaidAt, &invoice.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &invoice, nil
}

func (s *Store) ListInvoicesByUser(ctx context.Context, userID, status string) ([]store.Invoice, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT`+invoiceColumns+`
		FROM invoices
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
	`, userID, status)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []store.Invoice
	for rows.Next() {
		var invoice store.Invoice
		if err := rows.Scan(&invoice.ID, &invoice.UserID, &invoice.OrderID, &invoice.InvoiceNumber,
			&invoice.Status, &invoice.Amount, &invoice.DueDate, &invoice.PaidAt, &invoice.CreatedAt); err != nil {
			return nil, fmt.Errorf("list invoices: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

func (s *Store) ListRefunds(ctx context.Context, orderID, userID string) ([]store.Refund, error) {
	if orderID == "" && userID == "" {
		return nil, errors.New("list refunds: order id or user id required")
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, order_id, amount, status, COALESCE(reason, ''), requested_at, processed_at
		FROM refunds
		WHERE ($1 = '' OR order_id = $1) AND ($2 = '' OR user_id = $2)
		ORDER BY requested_at DESC
	`, orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("list refunds: %w", err)
	}
	defer rows.Close()

	var refunds []store.Refund
	for rows.Next() {
		var refund store.Refund
		if err := rows.Scan(&refund.ID, &refund.UserID, &refund.OrderID, &refund.Amount,
			&refund.Status, &refund.Reason, &refund.RequestedAt, &refund.ProcessedAt); err != nil {
			return nil, fmt.Errorf("list refunds: %w", err)
		}
		refunds = append(refunds, refund)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list refunds: %w", err)
	}
	return refunds, nil
}
