package orderdesk

import (
	"context"
	"encoding/json"

	"github.com/voyantic/concierge/store"
	"github.com/voyantic/concierge/tools"
)

// ListInput Schema for listing the calling user's orders. The user is
// bound at construction time, so cross-user listing is structurally
// impossible; the model only chooses an optional status filter.
type ListInput struct {
	// Status optional filter by order status
	Status string `json:"status,omitempty" jsonschema:"title=status,enum=pending,enum=confirmed,enum=processing,enum=shipped,enum=delivered,enum=cancelled,description=Optional filter by order status." validate:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
}

const listSchema = `{
	"type": "object",
	"properties": {
		"status": {
			"type": "string",
			"enum": ["pending", "confirmed", "processing", "shipped", "delivered", "cancelled"],
			"description": "Optional filter by order status"
		}
	}
}`

const defaultListLimit = 10

// List lists the calling user's orders, optionally filtered by status.
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
		ret.SetName("getUserOrders")
	}
	if ret.Description() == "" {
		ret.SetDescription("List the customer's orders, optionally filtered by order status. Use when a customer wants to see their order history or find a specific order.")
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
	orders, err := t.db.ListOrdersByUser(ctx, t.userID, input.Status, defaultListLimit)
	if err != nil {
		return tools.Errorf("Failed to fetch user orders.")
	}
	if len(orders) == 0 {
		if input.Status != "" {
			return tools.Empty("No " + input.Status + " orders found for this user.")
		}
		return tools.Empty("No orders found for this user.")
	}
	return tools.OK(orders)
}
