// Package store defines the durable data model of the orchestration
// engine: conversations and their append-only message logs, plus the
// read-mostly commerce records the agent toolsets look up.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("store: not found")

// Conversation statuses.
const (
	ConversationActive   = "active"
	ConversationArchived = "archived"
)

// Conversation is one customer dialogue, owned by a user. The context
// summary, once set, is replaced whole on every compaction; it always
// holds the single best available compression of everything compacted
// so far.
type Conversation struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Title          string    `json:"title,omitempty"`
	Status         string    `json:"status"`
	LastAgentType  string    `json:"lastAgentType,omitempty"`
	ContextSummary string    `json:"contextSummary,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Messages       []Message `json:"messages,omitempty"`
}

// Message is one entry of a conversation's append-only log, ordered by
// creation time ascending and never mutated after creation. AgentType is
// set only on assistant messages produced by a specific agent.
type Message struct {
	ID             string          `json:"id"`
	ConversationID string          `json:"conversationId"`
	Role           string          `json:"role"`
	Content        string          `json:"content"`
	AgentType      string          `json:"agentType,omitempty"`
	ToolCalls      json.RawMessage `json:"toolCalls,omitempty"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// AppendMessageParams carries one message append.
type AppendMessageParams struct {
	ConversationID string
	Role           string
	Content        string
	AgentType      string
	ToolCalls      json.RawMessage
	Metadata       json.RawMessage
}

// ConversationSummary is the listing projection of a conversation.
type ConversationSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title,omitempty"`
	Status        string    `json:"status"`
	LastAgentType string    `json:"lastAgentType,omitempty"`
	LastMessage   string    `json:"lastMessage,omitempty"`
	MessageCount  int       `json:"messageCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ConversationPage is one page of a user's conversations.
type ConversationPage struct {
	Items []ConversationSummary `json:"items"`
	Total int                   `json:"total"`
}

// ConversationStore is the durable conversation log. Appending a message
// also refreshes the conversation's UpdatedAt and, when the message
// carries one, its LastAgentType.
type ConversationStore interface {
	CreateConversation(ctx context.Context, userID, title string) (*Conversation, error)
	// GetConversation loads a conversation with its ordered messages.
	// Returns ErrNotFound when the id does not exist.
	GetConversation(ctx context.Context, id string) (*Conversation, error)
	AppendMessage(ctx context.Context, params AppendMessageParams) (*Message, error)
	ListMessages(ctx context.Context, conversationID string) ([]Message, error)
	// UpdateSummary replaces the conversation's context summary whole.
	UpdateSummary(ctx context.Context, conversationID, summary string) error
	ListConversations(ctx context.Context, userID string, limit, offset int) (*ConversationPage, error)
	// DeleteConversation removes a conversation and cascades to its messages.
	DeleteConversation(ctx context.Context, id string) error
}

// Order statuses.
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Invoice statuses.
const (
	InvoicePending   = "pending"
	InvoicePaid      = "paid"
	InvoiceOverdue   = "overdue"
	InvoiceCancelled = "cancelled"
)

// Refund statuses.
const (
	RefundRequested  = "requested"
	RefundProcessing = "processing"
	RefundApproved   = "approved"
	RefundRejected   = "rejected"
	RefundCompleted  = "completed"
)

type Order struct {
	ID                string      `json:"id"`
	UserID            string      `json:"userId"`
	OrderNumber       string      `json:"orderNumber"`
	Status            string      `json:"status"`
	TotalAmount       float64     `json:"totalAmount"`
	ShippingAddress   string      `json:"shippingAddress,omitempty"`
	TrackingNumber    string      `json:"trackingNumber,omitempty"`
	EstimatedDelivery *time.Time  `json:"estimatedDelivery,omitempty"`
	Items             []OrderItem `json:"items,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ProductName string  `json:"productName"`
	Category    string  `json:"category,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type Invoice struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	OrderID       string     `json:"orderId"`
	InvoiceNumber string     `json:"invoiceNumber"`
	Status        string     `json:"status"`
	Amount        float64    `json:"amount"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type Refund struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	OrderID     string     `json:"orderId"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	RequestedAt time.Time  `json:"requestedAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}

// CommerceStore serves the agent toolsets: lookups by natural business
// key and listings scoped to a user identifier. All lookups return
// ErrNotFound on a miss.
type CommerceStore interface {
	GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error)
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	ListOrdersByUser(ctx context.Context, userID, status string, limit int) ([]Order, error)
	GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	GetInvoiceByOrder(ctx context.Context, orderID string) (*Invoice, error)
	ListInvoicesByUser(ctx context.Context, userID, status string) ([]Invoice, error)
	// ListRefunds filters by order id, user id, or both; at least one
	// must be supplied.
	ListRefunds(ctx context.Context, orderID, userID string) ([]Refund, error)
}
