package memstore

import (
	"context"
	"errors"
	"sort"

	"github.com/voyantic/concierge/store"
)

func (s *Store) GetOrderByNumber(_ context.Context, orderNumber string) (*store.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.orders {
		if s.orders[i].OrderNumber == orderNumber {
			out := s.orders[i]
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetOrderByID(_ context.Context, id string) (*store.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			out := s.orders[i]
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListOrdersByUser(_ context.Context, userID, status string, limit int) ([]store.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []store.Order
	for i := range s.orders {
		order := s.orders[i]
		if order.UserID != userID {
			continue
		}
		if status != "" && order.Status != status {
			continue
		}
		out = append(out, order)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) GetInvoiceByNumber(_ context.Context, invoiceNumber string) (*store.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.invoices {
		if s.invoices[i].InvoiceNumber == invoiceNumber {
			out := s.invoices[i]
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetInvoiceByOrder(_ context.Context, orderID string) (*store.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.invoices {
		if s.invoices[i].OrderID == orderID {
			out := s.invoices[i]
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListInvoicesByUser(_ context.Context, userID, status string) ([]store.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []store.Invoice
	for i := range s.invoices {
		invoice := s.invoices[i]
		if invoice.UserID != userID {
			continue
		}
		if status != "" && invoice.Status != status {
			continue
		}
		out = append(out, invoice)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ListRefunds(_ context.Context, orderID, userID string) ([]store.Refund, error) {
	if orderID == "" && userID == "" {
		return nil, errors.New("list refunds: order id or user id required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []store.Refund
	for i := range s.refunds {
		refund := s.refunds[i]
		if orderID != "" && refund.OrderID != orderID {
			continue
		}
		if userID != "" && refund.UserID != userID {
			continue
		}
		out = append(out, refund)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RequestedAt.After(out[j].RequestedAt)
	})
	return out, nil
}
