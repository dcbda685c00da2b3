package tokens

import (
	"strings"
	"testing"

	"github.com/voyantic/concierge/components"
)

func TestCharEstimatorText(t *testing.T) {
	est := CharEstimator{}
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 400), 100},
	}
	for _, tt := range tests {
		if got := est.Text(tt.input); got != tt.want {
			t.Errorf("Text(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCharEstimatorMessages(t *testing.T) {
	est := CharEstimator{}
	messages := []components.Message{
		*components.NewMessage(components.UserRole, "abcd"),
		*components.NewMessage(components.AssistantRole, "abcdefgh"),
	}
	// 4 chars -> 1 token, 8 chars -> 2 tokens, plus 4 overhead each.
	if got, want := est.Messages(messages), 11; got != want {
		t.Errorf("Messages() = %d, want %d", got, want)
	}
}

func TestCharEstimatorMonotonic(t *testing.T) {
	est := CharEstimator{}
	prev := 0
	for i := 0; i < 64; i++ {
		got := est.Text(strings.Repeat("a", i))
		if got < prev {
			t.Fatalf("estimate decreased at length %d: %d < %d", i, got, prev)
		}
		prev = got
	}
}

func TestCharEstimatorEmptyMessages(t *testing.T) {
	est := CharEstimator{}
	if got := est.Messages(nil); got != 0 {
		t.Errorf("Messages(nil) = %d, want 0", got)
	}
}
