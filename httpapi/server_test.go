package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/voyantic/concierge/agents"
	"github.com/voyantic/concierge/classifier"
	"github.com/voyantic/concierge/components"
	"github.com/voyantic/concierge/contextwindow"
	"github.com/voyantic/concierge/orchestrator"
	"github.com/voyantic/concierge/provider"
	"github.com/voyantic/concierge/schema"
	"github.com/voyantic/concierge/store/memstore"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

type stubObjectGenerator struct{}

func (stubObjectGenerator) GenerateObject(_ context.Context, _, _ string, result schema.Schema, _ *components.LLMResponse) error {
	if out, ok := result.(*classifier.Classification); ok {
		*out = classifier.Classification{Intent: classifier.IntentOrder, Confidence: 0.9, Reasoning: "order"}
	}
	return nil
}

type stubSummarizer struct{}

func (stubSummarizer) GenerateText(context.Context, string, string) (string, error) {
	return "Order Question", nil
}

type stubStreamer struct{}

func (stubStreamer) ChatStream(context.Context, provider.ChatRequest) (*provider.EventStream, error) {
	sent := false
	stream := provider.NewEventStream(func() (provider.StreamEvent, error) {
		if sent {
			return provider.StreamEvent{}, io.EOF
		}
		sent = true
		return provider.StreamEvent{Type: provider.EventTextDelta, TextDelta: "It shipped."}, nil
	}, nil)
	stream.SetUsage(components.LLMUsage{InputTokens: 12, OutputTokens: 7})
	return stream, nil
}

func testServer() (*Server, *memstore.Store) {
	db := memstore.New()
	db.Seed()
	registry := agents.NewRegistry(db, db)
	orch := orchestrator.New(
		db,
		registry,
		classifier.New(stubObjectGenerator{}),
		contextwindow.NewCompactor(stubSummarizer{}),
		agents.NewLoop(stubStreamer{}),
		stubSummarizer{},
	)
	return New(orch, db, registry), db
}

// closeNotifyRecorder adds the http.CloseNotifier implementation that
// gin's Context.Stream requires but httptest.ResponseRecorder lacks.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
}

func (closeNotifyRecorder) CloseNotify() <-chan bool { return make(chan bool) }

func do(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(closeNotifyRecorder{w}, req)
	return w
}

func TestHealth(t *testing.T) {
	srv, _ := testServer()
	w := do(srv, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSendMessageStreams(t *testing.T) {
	srv, _ := testServer()
	w := do(srv, http.MethodPost, "/api/chat/messages",
		`{"userId":"user-001","message":"where is my order ORD-002?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Conversation-Id") == "" {
		t.Errorf("missing X-Conversation-Id header")
	}
	if got := w.Header().Get("X-Agent-Type"); got != "order" {
		t.Errorf("X-Agent-Type = %q", got)
	}
	if got := w.Header().Get("X-Intent"); got != "order" {
		t.Errorf("X-Intent = %q", got)
	}
	if got := w.Header().Get("X-Intent-Confidence"); got != "0.9" {
		t.Errorf("X-Intent-Confidence = %q", got)
	}
	body := w.Body.String()
	if !strings.Contains(body, "text-delta") || !strings.Contains(body, "It shipped.") {
		t.Errorf("body missing stream events: %s", body)
	}
	if !strings.Contains(body, "done") {
		t.Errorf("body missing terminal event: %s", body)
	}
	// Token usage rides on the terminal event.
	if !strings.Contains(body, `"inputTokens":12`) || !strings.Contains(body, `"outputTokens":7`) {
		t.Errorf("body missing usage on done event: %s", body)
	}
}

func TestSendMessageValidation(t *testing.T) {
	srv, _ := testServer()
	w := do(srv, http.MethodPost, "/api/chat/messages", `{"message":""}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestSendMessageUnknownConversation(t *testing.T) {
	srv, _ := testServer()
	w := do(srv, http.MethodPost, "/api/chat/messages",
		`{"userId":"user-001","message":"hello","conversationId":"missing"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetConversation(t *testing.T) {
	srv, _ := testServer()
	w := do(srv, http.MethodGet, "/api/chat/conversations/conv-001", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ORD-002") {
		t.Errorf("body missing messages: %s", w.Body.String())
	}

	w = do(srv, http.MethodGet, "/api/chat/conversations/missing", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListConversations(t *testing.T) {
	srv, _ := testServer()
	w := do(srv, http.MethodGet, "/api/chat/conversations?userId=user-001", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "conv-001") || !strings.Contains(body, `"total":1`) {
		t.Errorf("body = %s", body)
	}

	w = do(srv, http.MethodGet, "/api/chat/conversations", "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status without userId = %d, want 422", w.Code)
	}
}

func TestDeleteConversation(t *testing.T) {
	srv, _ := testServer()
	w := do(srv, http.MethodDelete, "/api/chat/conversations/conv-001", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	w = do(srv, http.MethodDelete, "/api/chat/conversations/conv-001", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestListAgents(t *testing.T) {
	srv, _ := testServer()
	w := do(srv, http.MethodGet, "/api/agents", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, name := range []string{"Router Agent", "Support Agent", "Order Agent", "Billing Agent"} {
		if !strings.Contains(body, name) {
			t.Errorf("body missing %q", name)
		}
	}
}

func TestAgentCapabilities(t *testing.T) {
	srv, _ := testServer()
	w := do(srv, http.MethodGet, "/api/agents/order/capabilities", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "getOrderDetails") {
		t.Errorf("body = %s", w.Body.String())
	}

	w = do(srv, http.MethodGet, "/api/agents/wizard/capabilities", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
