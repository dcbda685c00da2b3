package agents

import (
	"github.com/voyantic/concierge/classifier"
	"github.com/voyantic/concierge/store"
	"github.com/voyantic/concierge/tools"
	"github.com/voyantic/concierge/tools/billingdesk"
	"github.com/voyantic/concierge/tools/helpdesk"
	"github.com/voyantic/concierge/tools/orderdesk"
)

// Registry holds the configured agents and resolves classified intents
// to one of them. Dispatch is total: every intent, including ones the
// classifier was never taught, lands on an agent.
type Registry struct {
	ordered []*Agent
	byType  map[AgentType]*Agent
}

func NewRegistry(conversations store.ConversationStore, commerce store.CommerceStore) *Registry {
	agents := []*Agent{
		{
			typ:         TypeRouter,
			name:        "Router Agent",
			description: "Analyzes incoming customer queries, classifies intent, and delegates to the appropriate specialized agent.",
			capabilities: []string{
				"Intent classification",
				"Query routing to specialized agents",
				"Fallback handling for ambiguous queries",
			},
		},
		{
			typ:          TypeSupport,
			name:         "Support Agent",
			description:  "Handles general support inquiries, FAQs, troubleshooting, and product guidance.",
			systemPrompt: supportSystemPrompt,
			capabilities: []string{
				"General product support",
				"FAQ answers",
				"Troubleshooting guidance",
				"Account help",
				"Conversation history lookup",
			},
			toolset: func(userID string) []tools.AnonymousTool {
				return []tools.AnonymousTool{
					helpdesk.NewFAQ(),
					helpdesk.NewHistory(conversations, userID),
				}
			},
		},
		{
			typ:          TypeOrder,
			name:         "Order Agent",
			description:  "Handles order status inquiries, delivery tracking, modifications, and cancellations.",
			systemPrompt: orderSystemPrompt,
			capabilities: []string{
				"Order status lookup",
				"Delivery tracking",
				"Order modification requests",
				"Cancellation processing",
				"Order history listing",
			},
			toolset: func(userID string) []tools.AnonymousTool {
				return []tools.AnonymousTool{
					orderdesk.NewDetails(commerce),
					orderdesk.NewDelivery(commerce),
					orderdesk.NewList(commerce, userID),
				}
			},
		},
		{
			typ:          TypeBilling,
			name:         "Billing Agent",
			description:  "Handles payment issues, refund requests, invoice inquiries, and subscription queries.",
			systemPrompt: billingSystemPrompt,
			capabilities: []string{
				"Invoice lookup",
				"Refund status checking",
				"Payment issue resolution",
				"Billing history",
				"Subscription management guidance",
			},
			toolset: func(userID string) []tools.AnonymousTool {
				return []tools.AnonymousTool{
					billingdesk.NewInvoice(commerce),
					billingdesk.NewRefund(commerce, userID),
					billingdesk.NewList(commerce, userID),
				}
			},
		},
	}
	byType := make(map[AgentType]*Agent, len(agents))
	for _, agent := range agents {
		byType[agent.typ] = agent
	}
	return &Registry{ordered: agents, byType: byType}
}

// Dispatch maps a classified intent to the agent that handles it.
// Unknown intents fall through to the support agent.
func (r *Registry) Dispatch(intent classifier.Intent) *Agent {
	switch intent {
	case classifier.IntentOrder:
		return r.byType[TypeOrder]
	case classifier.IntentBilling:
		return r.byType[TypeBilling]
	case classifier.IntentSupport, classifier.IntentGeneral:
		return r.byType[TypeSupport]
	default:
		return r.byType[TypeSupport]
	}
}

// Get returns the agent of the given type.
func (r *Registry) Get(typ AgentType) (*Agent, bool) {
	agent, ok := r.byType[typ]
	return agent, ok
}

// All returns every agent, router first.
func (r *Registry) All() []*Agent {
	out := make([]*Agent, len(r.ordered))
	copy(out, r.ordered)
	return out
}
