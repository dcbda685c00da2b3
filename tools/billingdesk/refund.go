package billingdesk

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/voyantic/concierge/store"
	"github.com/voyantic/concierge/tools"
)

// RefundInput Schema for checking refund status. The calling user is
// bound at construction; the model may narrow the search to one order.
type RefundInput struct {
	// OrderNumber optional order number to check refunds for a specific order
	OrderNumber string `json:"orderNumber,omitempty" jsonschema:"title=orderNumber,description=Optional order number to check refunds for a specific order."`
}

const refundSchema = `{
	"type": "object",
	"properties": {
		"orderNumber": {
			"type": "string",
			"description": "Optional order number to check refunds for a specific order"
		}
	}
}`

// Refund checks the status of the calling user's refund requests, with
// human-readable status messages and expected timelines.
type Refund struct {
	tools.Config
	db     store.CommerceStore
	userID string
}

var _ tools.AnonymousTool = (*Refund)(nil)

func NewRefund(db store.CommerceStore, userID string, opts ...tools.Option) *Refund {
	ret := &Refund{db: db, userID: userID}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("checkRefundStatus")
	}
	if ret.Description() == "" {
		ret.SetDescription("Check the status of the customer's refund requests, optionally narrowed to one order number. Use when a customer asks about their refund status.")
	}
	return ret
}

func (t *Refund) InputSchema() json.RawMessage {
	return json.RawMessage(refundSchema)
}

func (t *Refund) Execute(ctx context.Context, args json.RawMessage) tools.Result {
	var input RefundInput
	if err := tools.DecodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err)
	}

	orderID := ""
	if input.OrderNumber != "" {
		order, err := t.db.GetOrderByNumber(ctx, input.OrderNumber)
		if errors.Is(err, store.ErrNotFound) {
			return tools.Errorf("Order %q not found.", input.OrderNumber)
		}
		if err != nil {
			return tools.Errorf("Failed to check refund status.")
		}
		orderID = order.ID
	}

	refunds, err := t.db.ListRefunds(ctx, orderID, t.userID)
	if err != nil {
		return tools.Errorf("Failed to check refund status.")
	}
	if len(refunds) == 0 {
		return tools.Empty("No refund requests found.")
	}

	type refundRow struct {
		store.Refund
		StatusMessage string `json:"statusMessage"`
	}
	rows := make([]refundRow, 0, len(refunds))
	for _, r := range refunds {
		rows = append(rows, refundRow{Refund: r, StatusMessage: refundStatusMessage(r.Status)})
	}
	return tools.OK(rows)
}

func refundStatusMessage(status string) string {
	switch status {
	case store.RefundRequested:
		return "Your refund request has been received and is awaiting review."
	case store.RefundProcessing:
		return "Your refund is being processed. This typically takes 3-5 business days."
	case store.RefundApproved:
		return "Your refund has been approved and will be credited to your account shortly."
	case store.RefundRejected:
		return "Your refund request was not approved. Please contact support for more details."
	case store.RefundCompleted:
		return "Your refund has been completed and the amount has been credited to your account."
	}
	return "Unknown status."
}
