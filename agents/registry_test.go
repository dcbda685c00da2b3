package agents

import (
	"strings"
	"testing"

	"github.com/voyantic/concierge/classifier"
	"github.com/voyantic/concierge/store/memstore"
)

func testRegistry() *Registry {
	db := memstore.New()
	db.Seed()
	return NewRegistry(db, db)
}

func TestDispatchIsTotal(t *testing.T) {
	r := testRegistry()
	tests := []struct {
		intent classifier.Intent
		want   AgentType
	}{
		{classifier.IntentSupport, TypeSupport},
		{classifier.IntentOrder, TypeOrder},
		{classifier.IntentBilling, TypeBilling},
		{classifier.IntentGeneral, TypeSupport},
		{classifier.Intent("made-up"), TypeSupport},
		{classifier.Intent(""), TypeSupport},
	}
	for _, tt := range tests {
		agent := r.Dispatch(tt.intent)
		if agent == nil {
			t.Fatalf("Dispatch(%q) = nil", tt.intent)
		}
		if agent.Type() != tt.want {
			t.Errorf("Dispatch(%q) = %q, want %q", tt.intent, agent.Type(), tt.want)
		}
	}
}

func TestSystemPromptCarriesUserID(t *testing.T) {
	r := testRegistry()
	agent := r.Dispatch(classifier.IntentOrder)
	prompt := agent.SystemPrompt("user-001")
	if !strings.HasSuffix(prompt, "Current user ID: user-001") {
		t.Errorf("prompt does not end with the user id")
	}
	if !strings.Contains(prompt, "order management agent") {
		t.Errorf("prompt is not the order agent's")
	}
}

func TestToolsetsBoundPerAgent(t *testing.T) {
	r := testRegistry()
	tests := []struct {
		typ   AgentType
		tools []string
	}{
		{TypeSupport, []string{"searchFAQ", "queryConversationHistory"}},
		{TypeOrder, []string{"getOrderDetails", "checkDeliveryStatus", "getUserOrders"}},
		{TypeBilling, []string{"getInvoiceDetails", "checkRefundStatus", "getUserInvoices"}},
	}
	for _, tt := range tests {
		agent, ok := r.Get(tt.typ)
		if !ok {
			t.Fatalf("Get(%q) missing", tt.typ)
		}
		toolset := agent.Toolset("user-001")
		if len(toolset) != len(tt.tools) {
			t.Fatalf("%s toolset size = %d, want %d", tt.typ, len(toolset), len(tt.tools))
		}
		names := make(map[string]bool, len(toolset))
		for _, tool := range toolset {
			names[tool.Name()] = true
		}
		for _, want := range tt.tools {
			if !names[want] {
				t.Errorf("%s toolset missing %q", tt.typ, want)
			}
		}
	}
}

func TestRouterHasMetadataButNoTools(t *testing.T) {
	r := testRegistry()
	router, ok := r.Get(TypeRouter)
	if !ok {
		t.Fatalf("router missing from registry")
	}
	if got := router.Toolset("user-001"); len(got) != 0 {
		t.Errorf("router carries tools: %d", len(got))
	}
	info := router.Info()
	if len(info.Capabilities) == 0 {
		t.Errorf("router info has no capabilities")
	}
}

func TestAllListsRouterFirst(t *testing.T) {
	r := testRegistry()
	all := r.All()
	if len(all) != 4 {
		t.Fatalf("len(All()) = %d, want 4", len(all))
	}
	if all[0].Type() != TypeRouter {
		t.Errorf("first agent = %q, want router", all[0].Type())
	}
}
