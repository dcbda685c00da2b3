package memstore

import (
	"fmt"
	"time"

	"github.com/voyantic/concierge/store"
)

// Seed loads the demo dataset: three users with orders, invoices,
// refunds, and a couple of past conversations. Used by the dev server
// and the package tests.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = []store.Order{
		{
			ID: "order-001", UserID: "user-001", OrderNumber: "ORD-001",
			Status: store.OrderDelivered, TotalAmount: 349.98,
			ShippingAddress: "123 Main St, Springfield, IL 62701",
			TrackingNumber:  "TRK-1001-ABCD", EstimatedDelivery: datePtr(2025, 1, 10),
			Items: []store.OrderItem{
				{ProductName: "Wireless Headphones Pro", Category: "Electronics", Quantity: 1, UnitPrice: 199.99},
				{ProductName: "Mechanical Keyboard RGB", Category: "Electronics", Quantity: 1, UnitPrice: 149.99},
			},
			CreatedAt: date(2025, 1, 2), UpdatedAt: date(2025, 1, 10),
		},
		{
			ID: "order-002", UserID: "user-001", OrderNumber: "ORD-002",
			Status: store.OrderShipped, TotalAmount: 549.99,
			ShippingAddress: "123 Main St, Springfield, IL 62701",
			TrackingNumber:  "TRK-1002-EFGH", EstimatedDelivery: datePtr(2025, 2, 15),
			Items: []store.OrderItem{
				{ProductName: "Ultrawide Monitor 34\"", Category: "Electronics", Quantity: 1, UnitPrice: 549.99},
			},
			CreatedAt: date(2025, 2, 1), UpdatedAt: date(2025, 2, 5),
		},
		{
			ID: "order-003", UserID: "user-001", OrderNumber: "ORD-003",
			Status: store.OrderProcessing, TotalAmount: 229.98,
			ShippingAddress: "123 Main St, Springfield, IL 62701",
			Items: []store.OrderItem{
				{ProductName: "Cotton T-Shirt Pack (3)", Category: "Clothing", Quantity: 1, UnitPrice: 49.99},
				{ProductName: "Running Shoes Elite", Category: "Clothing", Quantity: 1, UnitPrice: 179.99},
			},
			CreatedAt: date(2025, 2, 10), UpdatedAt: date(2025, 2, 10),
		},
		{
			ID: "order-004", UserID: "user-002", OrderNumber: "ORD-004",
			Status: store.OrderDelivered, TotalAmount: 399.99,
			ShippingAddress: "456 Oak Ave, Portland, OR 97201",
			TrackingNumber:  "TRK-1004-IJKL", EstimatedDelivery: datePtr(2025, 1, 5),
			Items: []store.OrderItem{
				{ProductName: "Ergonomic Office Chair", Category: "Furniture", Quantity: 1, UnitPrice: 399.99},
			},
			CreatedAt: date(2024, 12, 28), UpdatedAt: date(2025, 1, 5),
		},
		{
			ID: "order-005", UserID: "user-002", OrderNumber: "ORD-005",
			Status: store.OrderCancelled, TotalAmount: 279.99,
			ShippingAddress: "456 Oak Ave, Portland, OR 97201",
			Items: []store.OrderItem{
				{ProductName: "Standing Desk Converter", Category: "Furniture", Quantity: 1, UnitPrice: 279.99},
			},
			CreatedAt: date(2025, 1, 8), UpdatedAt: date(2025, 1, 12),
		},
		{
			ID: "order-006", UserID: "user-002", OrderNumber: "ORD-006",
			Status: store.OrderPending, TotalAmount: 329.98,
			ShippingAddress: "456 Oak Ave, Portland, OR 97201",
			Items: []store.OrderItem{
				{ProductName: "Wireless Headphones Pro", Category: "Electronics", Quantity: 1, UnitPrice: 199.99},
				{ProductName: "Smart Home Hub", Category: "Home", Quantity: 1, UnitPrice: 129.99},
			},
			CreatedAt: date(2025, 2, 18), UpdatedAt: date(2025, 2, 18),
		},
		{
			ID: "order-007", UserID: "user-003", OrderNumber: "ORD-007",
			Status: store.OrderShipped, TotalAmount: 179.99,
			ShippingAddress: "789 Pine Rd, Austin, TX 78701",
			TrackingNumber:  "TRK-1007-MNOP", EstimatedDelivery: datePtr(2025, 2, 20),
			Items: []store.OrderItem{
				{ProductName: "Running Shoes Elite", Category: "Clothing", Quantity: 1, UnitPrice: 179.99},
			},
			CreatedAt: date(2025, 2, 8), UpdatedAt: date(2025, 2, 12),
		},
		{
			ID: "order-008", UserID: "user-003", OrderNumber: "ORD-008",
			Status: store.OrderConfirmed, TotalAmount: 679.98,
			ShippingAddress: "789 Pine Rd, Austin, TX 78701",
			Items: []store.OrderItem{
				{ProductName: "Ultrawide Monitor 34\"", Category: "Electronics", Quantity: 1, UnitPrice: 549.99},
				{ProductName: "Smart Home Hub", Category: "Home", Quantity: 1, UnitPrice: 129.99},
			},
			CreatedAt: date(2025, 2, 15), UpdatedAt: date(2025, 2, 15),
		},
		{
			ID: "order-009", UserID: "user-003", OrderNumber: "ORD-009",
			Status: store.OrderDelivered, TotalAmount: 149.99,
			ShippingAddress: "789 Pine Rd, Austin, TX 78701",
			TrackingNumber:  "TRK-1009-QRST", EstimatedDelivery: datePtr(2024, 12, 20),
			Items: []store.OrderItem{
				{ProductName: "Mechanical Keyboard RGB", Category: "Electronics", Quantity: 1, UnitPrice: 149.99},
			},
			CreatedAt: date(2024, 12, 12), UpdatedAt: date(2024, 12, 20),
		},
		{
			ID: "order-010", UserID: "user-001", OrderNumber: "ORD-010",
			Status: store.OrderPending, TotalAmount: 129.99,
			ShippingAddress: "123 Main St, Springfield, IL 62701",
			Items: []store.OrderItem{
				{ProductName: "Smart Home Hub", Category: "Home", Quantity: 1, UnitPrice: 129.99},
			},
			CreatedAt: date(2025, 2, 20), UpdatedAt: date(2025, 2, 20),
		},
	}

	s.invoices = []store.Invoice{
		{ID: "inv-001", OrderID: "order-001", UserID: "user-001", InvoiceNumber: "INV-001", Amount: 349.98, Status: store.InvoicePaid, DueDate: datePtr(2025, 1, 15), PaidAt: datePtr(2025, 1, 8), CreatedAt: date(2025, 1, 2)},
		{ID: "inv-002", OrderID: "order-002", UserID: "user-001", InvoiceNumber: "INV-002", Amount: 549.99, Status: store.InvoicePending, DueDate: datePtr(2025, 2, 20), CreatedAt: date(2025, 2, 1)},
		{ID: "inv-003", OrderID: "order-003", UserID: "user-001", InvoiceNumber: "INV-003", Amount: 229.98, Status: store.InvoicePending, DueDate: datePtr(2025, 2, 25), CreatedAt: date(2025, 2, 10)},
		{ID: "inv-004", OrderID: "order-004", UserID: "user-002", InvoiceNumber: "INV-004", Amount: 399.99, Status: store.InvoicePaid, DueDate: datePtr(2025, 1, 10), PaidAt: datePtr(2025, 1, 3), CreatedAt: date(2024, 12, 28)},
		{ID: "inv-005", OrderID: "order-005", UserID: "user-002", InvoiceNumber: "INV-005", Amount: 279.99, Status: store.InvoiceCancelled, DueDate: datePtr(2025, 1, 20), CreatedAt: date(2025, 1, 8)},
		{ID: "inv-006", OrderID: "order-007", UserID: "user-003", InvoiceNumber: "INV-006", Amount: 179.99, Status: store.InvoicePending, DueDate: datePtr(2025, 2, 25), CreatedAt: date(2025, 2, 8)},
		{ID: "inv-007", OrderID: "order-008", UserID: "user-003", InvoiceNumber: "INV-007", Amount: 679.98, Status: store.InvoiceOverdue, DueDate: datePtr(2025, 1, 30), CreatedAt: date(2025, 1, 15)},
		{ID: "inv-008", OrderID: "order-009", UserID: "user-003", InvoiceNumber: "INV-008", Amount: 149.99, Status: store.InvoicePaid, DueDate: datePtr(2024, 12, 25), PaidAt: datePtr(2024, 12, 22), CreatedAt: date(2024, 12, 12)},
	}

	s.refunds = []store.Refund{
		{ID: "ref-001", OrderID: "order-005", UserID: "user-002", Amount: 279.99, Status: store.RefundCompleted, Reason: "Order cancelled by customer - changed mind", RequestedAt: date(2025, 1, 12), ProcessedAt: datePtr(2025, 1, 15)},
		{ID: "ref-002", OrderID: "order-001", UserID: "user-001", Amount: 199.99, Status: store.RefundProcessing, Reason: "Headphones defective - left ear not working", RequestedAt: date(2025, 1, 20)},
		{ID: "ref-003", OrderID: "order-004", UserID: "user-002", Amount: 399.99, Status: store.RefundRequested, Reason: "Chair armrest broken on arrival", RequestedAt: date(2025, 2, 1)},
		{ID: "ref-004", OrderID: "order-009", UserID: "user-003", Amount: 149.99, Status: store.RefundRejected, Reason: "Keyboard not as described", RequestedAt: date(2025, 1, 25), ProcessedAt: datePtr(2025, 1, 28)},
	}

	s.seedConversation("conv-001", "user-001", "Order status inquiry", "order", []store.Message{
		{Role: "user", Content: "Hi, I want to check my order ORD-002 status", CreatedAt: time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)},
		{Role: "assistant", AgentType: "order", Content: "I found your order ORD-002. It is currently shipped and being delivered to 123 Main St, Springfield. Your tracking number is TRK-1002-EFGH and estimated delivery is February 15, 2025.", CreatedAt: time.Date(2025, 2, 1, 10, 0, 5, 0, time.UTC)},
	})
	s.seedConversation("conv-002", "user-002", "Refund request", "billing", []store.Message{
		{Role: "user", Content: "I need a refund for my chair order. The armrest was broken.", CreatedAt: time.Date(2025, 2, 1, 14, 0, 0, 0, time.UTC)},
		{Role: "assistant", AgentType: "billing", Content: "I'm sorry to hear about the damaged chair. I can see your order ORD-004 for the Ergonomic Office Chair. I've initiated a refund request for $399.99. The refund is currently being reviewed and you should hear back within 3-5 business days.", CreatedAt: time.Date(2025, 2, 1, 14, 0, 8, 0, time.UTC)},
	})
	s.seedConversation("conv-003", "user-003", "Product inquiry", "support", []store.Message{
		{Role: "user", Content: "How do I set up my new smart home hub?", CreatedAt: time.Date(2025, 2, 2, 9, 0, 0, 0, time.UTC)},
		{Role: "assistant", AgentType: "support", Content: "Great question! To set up your Smart Home Hub, follow these steps:\n1. Plug in the hub and wait for the LED to turn blue\n2. Download our companion app from AppStore or Google Play\n3. Create an account or sign in\n4. Tap \"Add New Device\" and select \"Smart Home Hub\"\n5. Follow the on-screen pairing instructions\n\nIf you run into any issues, feel free to ask!", CreatedAt: time.Date(2025, 2, 2, 9, 0, 10, 0, time.UTC)},
	})
}

func (s *Store) seedConversation(id, userID, title, lastAgentType string, messages []store.Message) {
	conv := &store.Conversation{
		ID:            id,
		UserID:        userID,
		Title:         title,
		Status:        store.ConversationActive,
		LastAgentType: lastAgentType,
	}
	for i := range messages {
		messages[i].ID = fmt.Sprintf("%s-msg-%d", id, i+1)
		messages[i].ConversationID = id
	}
	conv.Messages = messages
	conv.CreatedAt = messages[0].CreatedAt
	conv.UpdatedAt = messages[len(messages)-1].CreatedAt
	s.conversations[id] = conv
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}
