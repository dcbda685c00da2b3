package orderdesk

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/voyantic/concierge/store"
	"github.com/voyantic/concierge/store/memstore"
)

func seeded() *memstore.Store {
	s := memstore.New()
	s.Seed()
	return s
}

func TestDetails(t *testing.T) {
	tool := NewDetails(seeded())
	if tool.Name() != "getOrderDetails" {
		t.Errorf("name = %q", tool.Name())
	}

	res := tool.Execute(context.Background(), json.RawMessage(`{"orderNumber":"ORD-001"}`))
	if res.IsError() {
		t.Fatalf("Execute() error = %q", res.Error)
	}
	bs, _ := json.Marshal(res.Data)
	payload := string(bs)
	if !strings.Contains(payload, "ORD-001") || !strings.Contains(payload, "Wireless Headphones Pro") {
		t.Errorf("payload missing order data: %s", payload)
	}
	// ORD-001 carries a paid invoice and a processing refund.
	if !strings.Contains(payload, "INV-001") {
		t.Errorf("payload missing invoice: %s", payload)
	}
	if !strings.Contains(payload, "ref-002") {
		t.Errorf("payload missing refund: %s", payload)
	}
}

func TestDetailsUnknownOrder(t *testing.T) {
	tool := NewDetails(seeded())
	res := tool.Execute(context.Background(), json.RawMessage(`{"orderNumber":"ORD-999"}`))
	if !res.IsError() {
		t.Fatalf("expected error result")
	}
	if want := `Order "ORD-999" not found. Please check the order number and try again.`; res.Error != want {
		t.Errorf("error = %q, want %q", res.Error, want)
	}
}

func TestDetailsMissingArgument(t *testing.T) {
	tool := NewDetails(seeded())
	res := tool.Execute(context.Background(), json.RawMessage(`{}`))
	if !res.IsError() {
		t.Fatalf("expected validation error")
	}
}

func TestDelivery(t *testing.T) {
	tool := NewDelivery(seeded())
	res := tool.Execute(context.Background(), json.RawMessage(`{"orderNumber":"ORD-002"}`))
	if res.IsError() {
		t.Fatalf("Execute() error = %q", res.Error)
	}
	bs, _ := json.Marshal(res.Data)
	payload := string(bs)
	if !strings.Contains(payload, "TRK-1002-EFGH") {
		t.Errorf("payload missing tracking number: %s", payload)
	}
	if !strings.Contains(payload, "Your order has been shipped! Tracking number: TRK-1002-EFGH.") {
		t.Errorf("payload missing status message: %s", payload)
	}
}

func TestDeliveryStatusMessages(t *testing.T) {
	tests := []struct {
		order store.Order
		want  string
	}{
		{store.Order{Status: store.OrderPending}, "Your order is pending and has not been processed yet."},
		{store.Order{Status: store.OrderShipped}, "Your order has been shipped! Tracking number: Not available yet."},
		{store.Order{Status: store.OrderDelivered}, "Your order has been delivered."},
		{store.Order{Status: store.OrderCancelled}, "This order has been cancelled."},
		{store.Order{Status: "weird"}, "Status unknown."},
	}
	for _, tt := range tests {
		if got := deliveryStatusMessage(&tt.order); got != tt.want {
			t.Errorf("deliveryStatusMessage(%q) = %q, want %q", tt.order.Status, got, tt.want)
		}
	}
}

func TestListScopedToUser(t *testing.T) {
	tool := NewList(seeded(), "user-001")
	res := tool.Execute(context.Background(), json.RawMessage(`{}`))
	if res.IsError() {
		t.Fatalf("Execute() error = %q", res.Error)
	}
	orders, ok := res.Data.([]store.Order)
	if !ok {
		t.Fatalf("data type = %T", res.Data)
	}
	if len(orders) != 4 {
		t.Fatalf("len(orders) = %d, want 4", len(orders))
	}
	for _, order := range orders {
		if order.UserID != "user-001" {
			t.Errorf("leaked order for %q", order.UserID)
		}
	}
}

func TestListStatusFilter(t *testing.T) {
	tool := NewList(seeded(), "user-002")
	res := tool.Execute(context.Background(), json.RawMessage(`{"status":"cancelled"}`))
	if res.IsError() {
		t.Fatalf("Execute() error = %q", res.Error)
	}
	orders := res.Data.([]store.Order)
	if len(orders) != 1 || orders[0].OrderNumber != "ORD-005" {
		t.Errorf("cancelled orders = %+v", orders)
	}
}

func TestListEmpty(t *testing.T) {
	tool := NewList(seeded(), "user-404")
	res := tool.Execute(context.Background(), json.RawMessage(`{}`))
	if res.IsError() {
		t.Fatalf("Execute() error = %q", res.Error)
	}
	if res.Message != "No orders found for this user." {
		t.Errorf("message = %q", res.Message)
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	tool := NewList(seeded(), "user-001")
	res := tool.Execute(context.Background(), json.RawMessage(`{"status":"teleported"}`))
	if !res.IsError() {
		t.Fatalf("expected validation error")
	}
}
