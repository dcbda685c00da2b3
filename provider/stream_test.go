package provider

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/voyantic/concierge/components"
)

func scripted(events ...StreamEvent) *EventStream {
	i := 0
	return NewEventStream(func() (StreamEvent, error) {
		if i >= len(events) {
			return StreamEvent{}, io.EOF
		}
		ev := events[i]
		i++
		return ev, nil
	}, nil)
}

func TestEventStreamAccumulatesText(t *testing.T) {
	stream := scripted(
		StreamEvent{Type: EventTextDelta, TextDelta: "Hello, "},
		StreamEvent{Type: EventTextDelta, TextDelta: "world"},
	)
	var seen string
	for {
		ev, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		seen += ev.TextDelta
	}
	res := stream.Result()
	if res.Text != "Hello, world" || seen != res.Text {
		t.Errorf("accumulated %q, streamed %q", res.Text, seen)
	}
	if len(res.ToolCalls) != 0 {
		t.Errorf("unexpected tool calls: %+v", res.ToolCalls)
	}
}

func TestEventStreamAccumulatesToolCalls(t *testing.T) {
	stream := scripted(
		StreamEvent{Type: EventToolCall, ToolCall: components.ToolCall{ID: "a", Name: "getOrderDetails", Arguments: `{"orderNumber":"ORD-001"}`}},
		StreamEvent{Type: EventToolCall, ToolCall: components.ToolCall{ID: "b", Name: "checkDeliveryStatus", Arguments: `{}`}},
	)
	for {
		if _, err := stream.Next(); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
	}
	res := stream.Result()
	if len(res.ToolCalls) != 2 {
		t.Fatalf("len(toolCalls) = %d", len(res.ToolCalls))
	}
	if res.ToolCalls[0].ID != "a" || res.ToolCalls[1].Name != "checkDeliveryStatus" {
		t.Errorf("tool calls = %+v", res.ToolCalls)
	}
}

func TestEventStreamNextAfterEOF(t *testing.T) {
	stream := scripted()
	if _, err := stream.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("first Next() error = %v, want EOF", err)
	}
	if _, err := stream.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("second Next() error = %v, want EOF", err)
	}
}

func TestEventStreamCloseWithoutCloser(t *testing.T) {
	if err := scripted().Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSendEventDelivers(t *testing.T) {
	events := make(chan StreamEvent, 1)
	if !sendEvent(context.Background(), events, StreamEvent{Type: EventTextDelta, TextDelta: "hi"}) {
		t.Fatalf("sendEvent() = false with buffer space")
	}
	if ev := <-events; ev.TextDelta != "hi" {
		t.Errorf("delivered event = %+v", ev)
	}
}

func TestSendEventAbandonedConsumer(t *testing.T) {
	// A full buffer with no reader models a consumer that walked away
	// mid-stream; the send must give up once the context is gone
	// instead of blocking.
	events := make(chan StreamEvent, 1)
	events <- StreamEvent{Type: EventTextDelta, TextDelta: "unread"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan bool, 1)
	go func() {
		done <- sendEvent(ctx, events, StreamEvent{Type: EventTextDelta, TextDelta: "stuck"})
	}()
	select {
	case ok := <-done:
		if ok {
			t.Errorf("sendEvent() = true on cancelled context with full buffer")
		}
	case <-time.After(time.Second):
		t.Fatalf("sendEvent blocked on an abandoned stream")
	}
}
