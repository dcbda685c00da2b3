package provider

import (
	"context"
	"io"
	"sync"

	"github.com/voyantic/concierge/components"
)

// StreamEventType discriminates events yielded by an EventStream.
type StreamEventType string

const (
	// EventTextDelta carries one increment of assistant text.
	EventTextDelta StreamEventType = "text_delta"
	// EventToolCall carries one complete tool invocation request.
	EventToolCall StreamEventType = "tool_call"
)

// StreamEvent is one event of a model step.
type StreamEvent struct {
	Type      StreamEventType
	TextDelta string
	ToolCall  components.ToolCall
}

// StepResult is the accumulated outcome of one model step: either
// terminal assistant text, or one or more requested tool calls.
type StepResult struct {
	Text      string
	ToolCalls []components.ToolCall
	Model     string
	Usage     components.LLMUsage
}

// nextFunc is the iteration function for an EventStream. Returns
// io.EOF when the stream is complete.
type nextFunc func() (StreamEvent, error)

// EventStream reads streaming events from one model step. It yields
// [StreamEvent] values via [Next] while accumulating the complete
// [StepResult] internally. After Next returns [io.EOF], call [Result]
// to retrieve the accumulated outcome.
//
// EventStream is not safe for concurrent use.
type EventStream struct {
	next   nextFunc
	closer io.Closer
	result StepResult
	mutex  sync.Mutex
	done   bool
}

// NewEventStream creates an EventStream from a backend-specific
// iteration function and an io.Closer for the underlying resource
// (typically the HTTP response body). Tests use it to fake model steps.
//
// The next function must return (event, nil) for each event and
// (zero, io.EOF) when the stream is complete.
func NewEventStream(next nextFunc, closer io.Closer) *EventStream {
	return &EventStream{
		next:   next,
		closer: closer,
	}
}

// Next returns the next event from the stream. Returns io.EOF when the
// stream is complete. After io.EOF, call [Result] for the accumulation.
func (stream *EventStream) Next() (StreamEvent, error) {
	if stream.done {
		return StreamEvent{}, io.EOF
	}

	event, err := stream.next()
	if err != nil {
		if err == io.EOF {
			stream.done = true
		}
		return event, err
	}

	stream.accumulate(event)
	return event, nil
}

// Result returns the accumulated step outcome. Only complete after
// [Next] has returned [io.EOF]; before that it returns whatever has
// been accumulated so far.
func (stream *EventStream) Result() StepResult {
	stream.mutex.Lock()
	defer stream.mutex.Unlock()
	return stream.result
}

// Close releases the underlying resources. Must be called when done
// with the stream, even if iteration ended early.
func (stream *EventStream) Close() error {
	if stream.closer != nil {
		return stream.closer.Close()
	}
	return nil
}

// sendEvent hands one event from a callback-driven backend to the pull
// side. It refuses to block past ctx: when the consumer has abandoned
// the stream and the channel buffer is full, it reports false instead
// of stranding the bridge goroutine.
func sendEvent(ctx context.Context, events chan<- StreamEvent, ev StreamEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (stream *EventStream) accumulate(event StreamEvent) {
	stream.mutex.Lock()
	defer stream.mutex.Unlock()

	switch event.Type {
	case EventTextDelta:
		stream.result.Text += event.TextDelta
	case EventToolCall:
		stream.result.ToolCalls = append(stream.result.ToolCalls, event.ToolCall)
	}
}

// SetModel sets the model name on the accumulated result. Called by
// backend implementations during stream parsing.
func (stream *EventStream) SetModel(model string) {
	stream.mutex.Lock()
	defer stream.mutex.Unlock()
	stream.result.Model = model
}

// SetUsage sets the usage statistics on the accumulated result. Called
// by backend implementations during stream parsing.
func (stream *EventStream) SetUsage(usage components.LLMUsage) {
	stream.mutex.Lock()
	defer stream.mutex.Unlock()
	stream.result.Usage = usage
}
