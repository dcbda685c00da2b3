package billingdesk

import (
	"context"
	"encoding/json"

	"github.com/voyantic/concierge/store"
	"github.com/voyantic/concierge/tools"
)

// ListInput Schema for listing the calling user's invoices.
type ListInput struct {
	// Status optional filter by payment status
	Status string `json:"status,omitempty" jsonschema:"title=status,enum=pending,enum=paid,enum=overdue,enum=cancelled,description=Optional filter by payment status." validate:"omitempty,oneof=pending paid overdue cancelled"`
}

const listSchema = `{
	"type": "object",
	"properties": {
		"status": {
			"type": "string",
			"enum": ["pending", "paid", "overdue", "cancelled"],
			"description": "Optional filter by payment status"
		}
	}
}`

// List lists the calling user's invoices, optionally filtered by
// payment status.
type List struct {
	tools.Config
	db     store.CommerceStore
	userID string
}

var _ tools.AnonymousTool = (*List)(nil)

func NewList(db store.CommerceStore, userID string, opts ...tools.Option) *List {
	ret := &List{db: db, userID: userID}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("getUserInvoices")
	}
	if ret.Description() == "" {
		ret.SetDescription("List the customer's invoices, optionally filtered by payment status. Use when a customer wants to see their billing history.")
	}
	return ret
}

func (t *List) InputSchema() json.RawMessage {
	return json.RawMessage(listSchema)
}

func (t *List) Execute(ctx context.Context, args json.RawMessage) tools.Result {
	var input ListInput
	if err := tools.DecodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err)
	}
	invoices, err := t.db.ListInvoicesByUser(ctx, t.userID, input.Status)
	if err != nil {
		return tools.Errorf("Failed to fetch invoices.")
	}
	if len(invoices) == 0 {
		if input.Status != "" {
			return tools.Empty("No " + input.Status + " invoices found for this user.")
		}
		return tools.Empty("No invoices found for this user.")
	}
	return tools.OK(invoices)
}
