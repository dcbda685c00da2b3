package orderdesk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/voyantic/concierge/store"
	"github.com/voyantic/concierge/tools"
)

// DeliveryInput Schema for checking the delivery status of an order.
type DeliveryInput struct {
	// OrderNumber the order number to check delivery status for
	OrderNumber string `json:"orderNumber" jsonschema:"title=orderNumber,description=The order number to check delivery status for." validate:"required"`
}

const deliverySchema = `{
	"type": "object",
	"properties": {
		"orderNumber": {
			"type": "string",
			"description": "The order number to check delivery status for"
		}
	},
	"required": ["orderNumber"]
}`

// Delivery checks the delivery and shipping status of an order, with a
// human-readable status message the model can relay directly.
type Delivery struct {
	tools.Config
	db store.CommerceStore
}

var _ tools.AnonymousTool = (*Delivery)(nil)

func NewDelivery(db store.CommerceStore, opts ...tools.Option) *Delivery {
	ret := &Delivery{db: db}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("checkDeliveryStatus")
	}
	if ret.Description() == "" {
		ret.SetDescription("Check the delivery and shipping status of an order, including tracking number and estimated delivery date. Use when a customer asks about delivery or tracking.")
	}
	return ret
}

func (t *Delivery) InputSchema() json.RawMessage {
	return json.RawMessage(deliverySchema)
}

func (t *Delivery) Execute(ctx context.Context, args json.RawMessage) tools.Result {
	var input DeliveryInput
	if err := tools.DecodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err)
	}
	order, err := t.db.GetOrderByNumber(ctx, input.OrderNumber)
	if errors.Is(err, store.ErrNotFound) {
		return tools.Errorf("Order %q not found.", input.OrderNumber)
	}
	if err != nil {
		return tools.Errorf("Failed to check delivery status.")
	}

	payload := struct {
		OrderNumber       string     `json:"orderNumber"`
		Status            string     `json:"status"`
		StatusMessage     string     `json:"statusMessage"`
		TrackingNumber    string     `json:"trackingNumber,omitempty"`
		EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
		ShippingAddress   string     `json:"shippingAddress,omitempty"`
		UpdatedAt         time.Time  `json:"updatedAt"`
	}{
		OrderNumber:       order.OrderNumber,
		Status:            order.Status,
		StatusMessage:     deliveryStatusMessage(order),
		TrackingNumber:    order.TrackingNumber,
		EstimatedDelivery: order.EstimatedDelivery,
		ShippingAddress:   order.ShippingAddress,
		UpdatedAt:         order.UpdatedAt,
	}
	return tools.OK(payload)
}

func deliveryStatusMessage(order *store.Order) string {
	switch order.Status {
	case store.OrderPending:
		return "Your order is pending and has not been processed yet."
	case store.OrderConfirmed:
		return "Your order has been confirmed and is being prepared."
	case store.OrderProcessing:
		return "Your order is being prepared for shipment."
	case store.OrderShipped:
		tracking := order.TrackingNumber
		if tracking == "" {
			tracking = "Not available yet"
		}
		return fmt.Sprintf("Your order has been shipped! Tracking number: %s.", tracking)
	case store.OrderDelivered:
		return "Your order has been delivered."
	case store.OrderCancelled:
		return "This order has been cancelled."
	}
	return "Status unknown."
}
