// Package billingdesk is the billing agent's toolset: invoice lookup,
// refund status, and per-user invoice listings.
package billingdesk

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/voyantic/concierge/store"
	"github.com/voyantic/concierge/tools"
)

// InvoiceInput Schema for looking up one invoice by its invoice number.
type InvoiceInput struct {
	// InvoiceNumber the invoice number to look up
	InvoiceNumber string `json:"invoiceNumber" jsonschema:"title=invoiceNumber,description=The invoice number (e.g. INV-001) to look up." validate:"required"`
}

const invoiceSchema = `{
	"type": "object",
	"properties": {
		"invoiceNumber": {
			"type": "string",
			"description": "The invoice number (e.g. INV-001) to look up"
		}
	},
	"required": ["invoiceNumber"]
}`

// Invoice fetches detailed invoice information together with the order
// it belongs to.
type Invoice struct {
	tools.Config
	db store.CommerceStore
}

var _ tools.AnonymousTool = (*Invoice)(nil)

func NewInvoice(db store.CommerceStore, opts ...tools.Option) *Invoice {
	ret := &Invoice{db: db}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("getInvoiceDetails")
	}
	if ret.Description() == "" {
		ret.SetDescription("Fetch detailed invoice information by invoice number, including the associated order and items. Use when a customer asks about a specific invoice or payment.")
	}
	return ret
}

func (t *Invoice) InputSchema() json.RawMessage {
	return json.RawMessage(invoiceSchema)
}

func (t *Invoice) Execute(ctx context.Context, args json.RawMessage) tools.Result {
	var input InvoiceInput
	if err := tools.DecodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err)
	}
	invoice, err := t.db.GetInvoiceByNumber(ctx, input.InvoiceNumber)
	if errors.Is(err, store.ErrNotFound) {
		return tools.Errorf("Invoice %q not found. Please check the invoice number and try again.", input.InvoiceNumber)
	}
	if err != nil {
		return tools.Errorf("Failed to fetch invoice details.")
	}

	payload := struct {
		store.Invoice
		Order *store.Order `json:"order,omitempty"`
	}{Invoice: *invoice}
	if invoice.OrderID != "" {
		if order, err := t.db.GetOrderByID(ctx, invoice.OrderID); err == nil {
			payload.Order = order
		}
	}
	return tools.OK(payload)
}
