package helpdesk

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/voyantic/concierge/tools"
)

// FAQEntry is a single knowledge base article.
type FAQEntry struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags"`
}

// faqDatabase is the built-in knowledge base searched by the FAQ tool.
var faqDatabase = []FAQEntry{
	{
		ID:       "faq-001",
		Question: "How do I track my order?",
		Answer:   "You can track your order by providing your order number (e.g., ORD-001). I can look up the current status, tracking number, and estimated delivery date for you.",
		Tags:     []string{"track", "order", "delivery", "shipping", "status"},
	},
	{
		ID:       "faq-002",
		Question: "What is your return policy?",
		Answer:   "We offer a 30-day return policy for most items. Items must be in original packaging and unused condition. To initiate a return, provide your order number and we will guide you through the process.",
		Tags:     []string{"return", "policy", "refund", "exchange"},
	},
	{
		ID:       "faq-003",
		Question: "How do I request a refund?",
		Answer:   "To request a refund, provide your order number. We will check the order status and initiate the refund process. Refunds typically take 5-10 business days to process after approval.",
		Tags:     []string{"refund", "money", "payment", "return"},
	},
	{
		ID:       "faq-004",
		Question: "How do I cancel an order?",
		Answer:   "You can cancel an order if it has not been shipped yet. Provide your order number and we will check if cancellation is possible. Orders in \"pending\" or \"confirmed\" status can usually be cancelled.",
		Tags:     []string{"cancel", "order", "stop"},
	},
	{
		ID:       "faq-005",
		Question: "What payment methods do you accept?",
		Answer:   "We accept all major credit cards (Visa, Mastercard, Amex), PayPal, Apple Pay, and Google Pay. All transactions are securely processed.",
		Tags:     []string{"payment", "credit card", "pay", "methods"},
	},
	{
		ID:       "faq-006",
		Question: "How do I contact customer support?",
		Answer:   "You are already talking to our AI-powered customer support! I can help with order inquiries, billing questions, and general support. For complex issues, I can escalate to a human agent.",
		Tags:     []string{"contact", "support", "help", "agent", "human"},
	},
	{
		ID:       "faq-007",
		Question: "How do I set up my smart home hub?",
		Answer:   "To set up your Smart Home Hub: 1) Plug it in and wait for the blue LED, 2) Download our companion app, 3) Create an account, 4) Tap \"Add New Device\" and select \"Smart Home Hub\", 5) Follow pairing instructions.",
		Tags:     []string{"setup", "smart home", "hub", "install", "configure"},
	},
	{
		ID:       "faq-008",
		Question: "Do you offer international shipping?",
		Answer:   "Yes, we ship to over 50 countries. International shipping typically takes 7-14 business days. Shipping costs vary by destination and are calculated at checkout.",
		Tags:     []string{"international", "shipping", "global", "worldwide"},
	},
}

const maxFAQResults = 5

// FAQInput Schema for searching the knowledge base.
type FAQInput struct {
	// Topic keywords to search for
	Topic string `json:"topic" jsonschema:"title=topic,description=The topic or keywords to search for in FAQs." validate:"required"`
}

const faqSchema = `{
	"type": "object",
	"properties": {
		"topic": {
			"type": "string",
			"description": "The topic or keywords to search for in FAQs"
		}
	},
	"required": ["topic"]
}`

// FAQ searches the built-in knowledge base by keyword.
type FAQ struct {
	tools.Config
}

var _ tools.AnonymousTool = (*FAQ)(nil)

func NewFAQ(opts ...tools.Option) *FAQ {
	ret := new(FAQ)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("searchFAQ")
	}
	if ret.Description() == "" {
		ret.SetDescription("Search frequently asked questions and common troubleshooting solutions. Use this for general product questions, how-to guides, or policy inquiries.")
	}
	return ret
}

func (t *FAQ) InputSchema() json.RawMessage {
	return json.RawMessage(faqSchema)
}

func (t *FAQ) Execute(_ context.Context, args json.RawMessage) tools.Result {
	var input FAQInput
	if err := tools.DecodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err)
	}
	topic := strings.ToLower(input.Topic)
	var results []FAQEntry
	for _, faq := range faqDatabase {
		if matchesFAQ(faq, topic) {
			results = append(results, faq)
			if len(results) == maxFAQResults {
				break
			}
		}
	}
	if len(results) == 0 {
		return tools.Empty(fmt.Sprintf("No FAQ entries found for %q. Try rephrasing or I can help directly.", input.Topic))
	}
	return tools.OK(results)
}

func matchesFAQ(faq FAQEntry, topic string) bool {
	if strings.Contains(strings.ToLower(faq.Question), topic) {
		return true
	}
	if strings.Contains(strings.ToLower(faq.Answer), topic) {
		return true
	}
	for _, tag := range faq.Tags {
		if strings.Contains(tag, topic) {
			return true
		}
	}
	return false
}
