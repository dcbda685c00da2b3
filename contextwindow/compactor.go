// Package contextwindow bounds the model's input across a growing
// conversation: recent turns are kept verbatim, older turns are
// compacted into a rolling summary.
package contextwindow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/voyantic/concierge/components"
	"github.com/voyantic/concierge/provider"
	"github.com/voyantic/concierge/store"
	"github.com/voyantic/concierge/tokens"
)

// SummaryPrefix introduces the injected system-role summary message.
const SummaryPrefix = "Previous conversation summary: "

const summarizerSystemPrompt = "You are a conversation summarizer. Create a concise summary of the conversation below, " +
	"preserving key details like order numbers, issue descriptions, refund amounts, agent actions taken, " +
	"and any unresolved issues. Keep it to 2-3 sentences."

// Summarizer is the slice of the language model the compactor needs.
type Summarizer interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

// Config represents compactor configuration
type Config struct {
	estimator tokens.Estimator
	// maxContextTokens is the token budget for one model call.
	maxContextTokens int
	// keepRecent is the number of most recent messages retained
	// verbatim when compacting.
	keepRecent int
	logger     *slog.Logger
}

// Compactor produces a bounded message sequence for a model call from
// raw persisted history and an optional existing summary.
type Compactor struct {
	Config
	llm Summarizer
}

// NewCompactor returns a Compactor backed by the given summarizer.
func NewCompactor(llm Summarizer, options ...Option) *Compactor {
	ret := &Compactor{llm: llm}
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.estimator == nil {
		ret.estimator = tokens.CharEstimator{}
	}
	if ret.maxContextTokens == 0 {
		ret.maxContextTokens = 3000
	}
	if ret.keepRecent == 0 {
		ret.keepRecent = 4
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}

// Prepare translates persisted history into the bounded model-facing
// sequence. Tool-role messages are dropped: they are an implementation
// detail of a prior tool-calling loop, not meaningful to a fresh call.
// When the sequence exceeds the token budget, the oldest messages are
// compacted into a summary and the most recent keepRecent messages are
// retained verbatim.
//
// The second return value is the newly generated summary, empty when no
// compaction happened. If the summarizer fails, Prepare degrades to the
// recent tail alone — losing the summary is acceptable, losing recency
// is not. The only failure surfaced as an error is provider quota
// exhaustion.
func (c *Compactor) Prepare(ctx context.Context, history []store.Message, existingSummary string) ([]components.Message, string, error) {
	messages := make([]components.Message, 0, len(history)+1)
	if existingSummary != "" {
		messages = append(messages, *components.NewMessage(components.SystemRole, SummaryPrefix+existingSummary))
	}
	for _, m := range history {
		switch m.Role {
		case components.UserRole, components.AssistantRole, components.SystemRole:
			messages = append(messages, *components.NewMessage(m.Role, m.Content))
		}
	}

	if c.estimator.Messages(messages) <= c.maxContextTokens {
		return messages, "", nil
	}
	return c.compact(ctx, messages)
}

func (c *Compactor) compact(ctx context.Context, messages []components.Message) ([]components.Message, string, error) {
	keep := c.keepRecent
	if keep > len(messages) {
		keep = len(messages)
	}
	old := messages[:len(messages)-keep]
	recent := messages[len(messages)-keep:]

	if len(old) == 0 {
		return recent, "", nil
	}

	summary, err := c.llm.GenerateText(ctx, summarizerSystemPrompt, renderTranscript(old))
	if err != nil {
		if provider.IsQuotaExceeded(err) {
			return nil, "", err
		}
		c.logger.Error("context compaction failed, keeping recent tail only", "error", err)
		return recent, "", nil
	}

	compacted := make([]components.Message, 0, len(recent)+1)
	compacted = append(compacted, *components.NewMessage(components.SystemRole, SummaryPrefix+summary))
	compacted = append(compacted, recent...)
	return compacted, summary, nil
}

// renderTranscript renders messages as "role: content" lines for the
// summarizer and the classifier context window.
func renderTranscript(messages []components.Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role(), m.Content()))
	}
	return strings.Join(lines, "\n")
}

// RenderRecentWindow renders the last n persisted turns as a short
// transcript, used as classifier context.
func RenderRecentWindow(history []store.Message, n int) string {
	if len(history) > n {
		history = history[len(history)-n:]
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	return strings.Join(lines, "\n")
}
