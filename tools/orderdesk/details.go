// Package orderdesk is the order agent's toolset: order lookup by
// order number, delivery status, and per-user order listings.
package orderdesk

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/voyantic/concierge/store"
	"github.com/voyantic/concierge/tools"
)

// DetailsInput Schema for looking up one order by its order number.
type DetailsInput struct {
	// OrderNumber the order number to look up
	OrderNumber string `json:"orderNumber" jsonschema:"title=orderNumber,description=The order number (e.g. ORD-001) to look up." validate:"required"`
}

const detailsSchema = `{
	"type": "object",
	"properties": {
		"orderNumber": {
			"type": "string",
			"description": "The order number (e.g. ORD-001) to look up"
		}
	},
	"required": ["orderNumber"]
}`

// Details fetches full order details, including items, status, shipping
// info and the associated invoice and refunds.
type Details struct {
	tools.Config
	db store.CommerceStore
}

var _ tools.AnonymousTool = (*Details)(nil)

func NewDetails(db store.CommerceStore, opts ...tools.Option) *Details {
	ret := &Details{db: db}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("getOrderDetails")
	}
	if ret.Description() == "" {
		ret.SetDescription("Fetch full details of an order by its order number, including items purchased, current status, shipping info, and associated invoice/refunds. Use when a customer asks about a specific order.")
	}
	return ret
}

func (t *Details) InputSchema() json.RawMessage {
	return json.RawMessage(detailsSchema)
}

func (t *Details) Execute(ctx context.Context, args json.RawMessage) tools.Result {
	var input DetailsInput
	if err := tools.DecodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err)
	}
	order, err := t.db.GetOrderByNumber(ctx, input.OrderNumber)
	if errors.Is(err, store.ErrNotFound) {
		return tools.Errorf("Order %q not found. Please check the order number and try again.", input.OrderNumber)
	}
	if err != nil {
		return tools.Errorf("Failed to fetch order details. Please try again.")
	}

	payload := struct {
		store.Order
		Invoice *store.Invoice `json:"invoice,omitempty"`
		Refunds []store.Refund `json:"refunds,omitempty"`
	}{Order: *order}
	if invoice, err := t.db.GetInvoiceByOrder(ctx, order.ID); err == nil {
		payload.Invoice = invoice
	}
	if refunds, err := t.db.ListRefunds(ctx, order.ID, ""); err == nil {
		payload.Refunds = refunds
	}
	return tools.OK(payload)
}
