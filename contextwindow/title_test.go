package contextwindow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/voyantic/concierge/provider"
)

func TestGenerateTitle(t *testing.T) {
	llm := &stubSummarizer{text: "  Order Delivery Question  "}
	got, err := GenerateTitle(context.Background(), llm, "where is my order ORD-002?")
	if err != nil {
		t.Fatalf("GenerateTitle() error = %v", err)
	}
	if got != "Order Delivery Question" {
		t.Errorf("title = %q", got)
	}
}

func TestGenerateTitleFailureFallsBack(t *testing.T) {
	llm := &stubSummarizer{err: errors.New("boom")}
	got, err := GenerateTitle(context.Background(), llm, "hello")
	if err != nil {
		t.Fatalf("GenerateTitle() error = %v", err)
	}
	if got != DefaultTitle {
		t.Errorf("title = %q, want %q", got, DefaultTitle)
	}
}

func TestGenerateTitleEmptyFallsBack(t *testing.T) {
	llm := &stubSummarizer{text: "   "}
	got, err := GenerateTitle(context.Background(), llm, "hello")
	if err != nil {
		t.Fatalf("GenerateTitle() error = %v", err)
	}
	if got != DefaultTitle {
		t.Errorf("title = %q, want %q", got, DefaultTitle)
	}
}

func TestGenerateTitleTruncates(t *testing.T) {
	llm := &stubSummarizer{text: strings.Repeat("t", 150)}
	got, err := GenerateTitle(context.Background(), llm, "hello")
	if err != nil {
		t.Fatalf("GenerateTitle() error = %v", err)
	}
	if len(got) != maxTitleLength {
		t.Errorf("len(title) = %d, want %d", len(got), maxTitleLength)
	}
}

func TestGenerateTitleQuotaAborts(t *testing.T) {
	llm := &stubSummarizer{err: fmt.Errorf("%w: 429", provider.ErrQuotaExceeded)}
	if _, err := GenerateTitle(context.Background(), llm, "hello"); !provider.IsQuotaExceeded(err) {
		t.Fatalf("error = %v, want quota", err)
	}
}
