package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/voyantic/concierge/agents"
	"github.com/voyantic/concierge/classifier"
	"github.com/voyantic/concierge/components"
	"github.com/voyantic/concierge/contextwindow"
	"github.com/voyantic/concierge/provider"
	"github.com/voyantic/concierge/schema"
	"github.com/voyantic/concierge/store"
	"github.com/voyantic/concierge/store/memstore"
)

type stubObjectGenerator struct {
	result     classifier.Classification
	err        error
	lastPrompt string
}

func (s *stubObjectGenerator) GenerateObject(_ context.Context, _, prompt string, result schema.Schema, _ *components.LLMResponse) error {
	s.lastPrompt = prompt
	if s.err != nil {
		return s.err
	}
	if out, ok := result.(*classifier.Classification); ok {
		*out = s.result
	}
	return nil
}

type stubSummarizer struct {
	text string
	err  error
}

func (s *stubSummarizer) GenerateText(context.Context, string, string) (string, error) {
	return s.text, s.err
}

type stubStreamer struct {
	text string
}

func (s *stubStreamer) ChatStream(context.Context, provider.ChatRequest) (*provider.EventStream, error) {
	sent := false
	return provider.NewEventStream(func() (provider.StreamEvent, error) {
		if sent {
			return provider.StreamEvent{}, io.EOF
		}
		sent = true
		return provider.StreamEvent{Type: provider.EventTextDelta, TextDelta: s.text}, nil
	}, nil), nil
}

type fixture struct {
	db     *memstore.Store
	objGen *stubObjectGenerator
	orch   *Orchestrator
}

func newFixture(t *testing.T, opts ...contextwindow.Option) *fixture {
	t.Helper()
	db := memstore.New()
	objGen := &stubObjectGenerator{result: classifier.Classification{
		Intent:     classifier.IntentOrder,
		Confidence: 0.9,
		Reasoning:  "order question",
	}}
	summarizer := &stubSummarizer{text: "Order Status Question"}
	orch := New(
		db,
		agents.NewRegistry(db, db),
		classifier.New(objGen),
		contextwindow.NewCompactor(summarizer, opts...),
		agents.NewLoop(&stubStreamer{text: "It shipped yesterday."}),
		summarizer,
	)
	return &fixture{db: db, objGen: objGen, orch: orch}
}

// waitForMessages polls until the conversation has n messages, since
// the assistant reply is persisted asynchronously.
func waitForMessages(t *testing.T, db *memstore.Store, conversationID string, n int) []store.Message {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		msgs, err := db.ListMessages(context.Background(), conversationID)
		if err != nil {
			t.Fatalf("ListMessages() error = %v", err)
		}
		if len(msgs) >= n {
			return msgs
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("conversation %s never reached %d messages", conversationID, n)
	return nil
}

func TestProcessMessageNewConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.orch.ProcessMessage(ctx, "user-001", "where is my order ORD-002?", "")
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}
	if res.ConversationID == "" {
		t.Fatalf("no conversation id")
	}
	if res.AgentType != agents.TypeOrder {
		t.Errorf("agentType = %q, want order", res.AgentType)
	}
	if res.Classification.Intent != classifier.IntentOrder {
		t.Errorf("intent = %q", res.Classification.Intent)
	}

	text, err := res.Handle.Text(ctx)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if text != "It shipped yesterday." {
		t.Errorf("text = %q", text)
	}

	msgs := waitForMessages(t, f.db, res.ConversationID, 2)
	if msgs[0].Role != components.UserRole || msgs[0].Content != "where is my order ORD-002?" {
		t.Errorf("user message = %+v", msgs[0])
	}
	if msgs[1].Role != components.AssistantRole || msgs[1].AgentType != agents.TypeOrder {
		t.Errorf("assistant message = %+v", msgs[1])
	}

	conv, err := f.db.GetConversation(ctx, res.ConversationID)
	if err != nil {
		t.Fatalf("GetConversation() error = %v", err)
	}
	if conv.Title != "Order Status Question" {
		t.Errorf("title = %q", conv.Title)
	}
}

func TestProcessMessageUnknownConversation(t *testing.T) {
	f := newFixture(t)
	_, err := f.orch.ProcessMessage(context.Background(), "user-001", "hello", "missing-id")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	// Nothing must have been written for the failed request.
	page, _ := f.db.ListConversations(context.Background(), "user-001", 10, 0)
	if page.Total != 0 {
		t.Errorf("conversations created on failed request: %d", page.Total)
	}
}

func TestProcessMessageExistingConversationCarriesContext(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	conv, _ := f.db.CreateConversation(ctx, "user-001", "Earlier chat")
	_, _ = f.db.AppendMessage(ctx, store.AppendMessageParams{
		ConversationID: conv.ID, Role: components.UserRole, Content: "I ordered a monitor last week",
	})

	res, err := f.orch.ProcessMessage(ctx, "user-001", "any update?", conv.ID)
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}
	if res.ConversationID != conv.ID {
		t.Errorf("conversation id = %q, want %q", res.ConversationID, conv.ID)
	}
	if !strings.Contains(f.objGen.lastPrompt, "I ordered a monitor last week") {
		t.Errorf("classifier prompt missing recent context: %q", f.objGen.lastPrompt)
	}
	// The window is rendered after the user message is appended, so the
	// message being classified appears in its own context.
	if !strings.Contains(f.objGen.lastPrompt, "user: any update?") {
		t.Errorf("classifier prompt missing the new message: %q", f.objGen.lastPrompt)
	}
	if _, err := res.Handle.Text(ctx); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	waitForMessages(t, f.db, conv.ID, 3)
}

func TestProcessMessageQuotaAbortsAfterUserMessageSaved(t *testing.T) {
	f := newFixture(t)
	f.objGen.err = fmt.Errorf("%w: 429", provider.ErrQuotaExceeded)
	ctx := context.Background()

	_, err := f.orch.ProcessMessage(ctx, "user-001", "hi", "")
	if !provider.IsQuotaExceeded(err) {
		t.Fatalf("error = %v, want quota", err)
	}
	// The user message is appended before classification, so the quota
	// abort leaves the conversation with exactly that message.
	page, err := f.db.ListConversations(ctx, "user-001", 10, 0)
	if err != nil {
		t.Fatalf("ListConversations() error = %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("conversations = %d, want 1", page.Total)
	}
	msgs, err := f.db.ListMessages(ctx, page.Items[0].ID)
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0].Role != components.UserRole || msgs[0].Content != "hi" {
		t.Errorf("messages = %+v, want the user message alone", msgs)
	}
}

func TestProcessMessagePersistsSummary(t *testing.T) {
	// A tiny budget forces compaction on the second message.
	f := newFixture(t, contextwindow.WithMaxContextTokens(30))
	ctx := context.Background()
	conv, _ := f.db.CreateConversation(ctx, "user-001", "Long chat")
	long := strings.Repeat("the monitor still has not arrived ", 10)
	for i := 0; i < 5; i++ {
		_, _ = f.db.AppendMessage(ctx, store.AppendMessageParams{
			ConversationID: conv.ID, Role: components.UserRole, Content: long,
		})
	}

	res, err := f.orch.ProcessMessage(ctx, "user-001", "any update?", conv.ID)
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}
	got, err := f.db.GetConversation(ctx, conv.ID)
	if err != nil {
		t.Fatalf("GetConversation() error = %v", err)
	}
	if got.ContextSummary != "Order Status Question" {
		t.Errorf("contextSummary = %q, want the summarizer output", got.ContextSummary)
	}
	if _, err := res.Handle.Text(ctx); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
}
