package agents

import (
	"context"

	"go.uber.org/atomic"

	"github.com/voyantic/concierge/components"
	"github.com/voyantic/concierge/tools"
)

type EventType = string

const (
	// EventTextDelta carries one streamed text fragment.
	EventTextDelta EventType = "text-delta"
	// EventToolCall announces a tool invocation before it runs.
	EventToolCall EventType = "tool-call"
	// EventToolResult carries the result of a finished tool call.
	EventToolResult EventType = "tool-result"
	// EventDone is the terminal event of a successful run.
	EventDone EventType = "done"
	// EventError is the terminal event of a failed run.
	EventError EventType = "error"
)

// Event is one observable step of an agent run.
type Event struct {
	Type      EventType            `json:"type"`
	TextDelta string               `json:"textDelta,omitempty"`
	ToolCall  *components.ToolCall `json:"toolCall,omitempty"`
	Result    *tools.Result        `json:"result,omitempty"`
	Err       error                `json:"-"`
}

// Handle is the consumer side of a running agent turn. Events streams
// incrementally; Text blocks until the run finishes and returns the
// full assistant reply.
type Handle struct {
	events chan Event
	done   chan struct{}
	text   atomic.String
	usage  atomic.Pointer[components.LLMUsage]
	err    atomic.Error
}

func newHandle() *Handle {
	return &Handle{
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
}

// Events returns the run's event stream. The channel is closed after
// the terminal done or error event.
func (h *Handle) Events() <-chan Event {
	return h.events
}

// Text blocks until the run finishes and returns the accumulated
// assistant text. On failure the text streamed before the failure is
// still returned alongside the error.
func (h *Handle) Text(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return h.text.Load(), ctx.Err()
	case <-h.done:
		return h.text.Load(), h.err.Load()
	}
}

// Usage returns the run's accumulated token usage, or nil while the
// run is still in flight.
func (h *Handle) Usage() *components.LLMUsage {
	return h.usage.Load()
}

// emit delivers an event unless the consumer's context is gone.
func (h *Handle) emit(ctx context.Context, ev Event) bool {
	select {
	case h.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (h *Handle) finish(ctx context.Context, text string, usage *components.LLMUsage) {
	h.text.Store(text)
	if usage != nil {
		h.usage.Store(usage)
	}
	h.emit(ctx, Event{Type: EventDone})
	close(h.events)
	close(h.done)
}

func (h *Handle) fail(ctx context.Context, text string, err error) {
	h.text.Store(text)
	h.err.Store(err)
	h.emit(ctx, Event{Type: EventError, Err: err})
	close(h.events)
	close(h.done)
}
