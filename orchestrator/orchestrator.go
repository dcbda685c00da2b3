// Package orchestrator ties the pipeline together: conversation
// resolution, intent classification, context preparation, agent
// dispatch, and the asynchronous persistence of the assistant's reply.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/voyantic/concierge/agents"
	"github.com/voyantic/concierge/classifier"
	"github.com/voyantic/concierge/components"
	"github.com/voyantic/concierge/contextwindow"
	"github.com/voyantic/concierge/store"
)

// recentWindowSize is how many trailing messages are rendered as
// classification context.
const recentWindowSize = 6

type Config struct {
	logger *slog.Logger
}

// Orchestrator routes one user message through classification,
// compaction, and the dispatched agent's tool loop.
type Orchestrator struct {
	Config
	conversations store.ConversationStore
	registry      *agents.Registry
	classifier    *classifier.Classifier
	compactor     *contextwindow.Compactor
	loop          *agents.Loop
	llm           contextwindow.Summarizer
}

func New(
	conversations store.ConversationStore,
	registry *agents.Registry,
	cls *classifier.Classifier,
	compactor *contextwindow.Compactor,
	loop *agents.Loop,
	llm contextwindow.Summarizer,
	options ...Option,
) *Orchestrator {
	ret := &Orchestrator{
		conversations: conversations,
		registry:      registry,
		classifier:    cls,
		compactor:     compactor,
		loop:          loop,
		llm:           llm,
	}
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}

// Response is the running outcome of one processed message. Handle
// streams the agent's reply; the metadata fields are final immediately.
type Response struct {
	Handle         *agents.Handle
	ConversationID string
	AgentType      agents.AgentType
	Classification classifier.Classification
}

// ProcessMessage resolves the conversation, records the user message,
// classifies it against the recent window, prepares the model context,
// and starts the dispatched agent's turn.
// The assistant reply is persisted in the background once the turn
// finishes; the caller streams it through the returned Handle.
//
// A missing conversationID creates a new conversation; a supplied id
// that does not exist fails with [store.ErrNotFound] before anything
// is written.
func (o *Orchestrator) ProcessMessage(ctx context.Context, userID, message, conversationID string) (*Response, error) {
	conv, err := o.resolveConversation(ctx, userID, message, conversationID)
	if err != nil {
		return nil, err
	}

	userMsg, err := o.conversations.AppendMessage(ctx, store.AppendMessageParams{
		ConversationID: conv.ID,
		Role:           components.UserRole,
		Content:        message,
	})
	if err != nil {
		return nil, fmt.Errorf("append user message: %w", err)
	}
	history := append(conv.Messages, *userMsg)

	recent := contextwindow.RenderRecentWindow(history, recentWindowSize)
	result, err := o.classifier.Classify(ctx, message, recent)
	if err != nil {
		return nil, err
	}

	prepared, summary, err := o.compactor.Prepare(ctx, history, conv.ContextSummary)
	if err != nil {
		return nil, err
	}
	if summary != "" && summary != conv.ContextSummary {
		if err := o.conversations.UpdateSummary(ctx, conv.ID, summary); err != nil {
			o.logger.WarnContext(ctx, "persisting context summary failed", "conversation_id", conv.ID, "error", err)
		}
	}

	agent := o.registry.Dispatch(result.Intent)
	handle := o.loop.Run(ctx, agent, userID, prepared)
	go o.persistReply(context.WithoutCancel(ctx), handle, conv.ID, agent.Type())

	return &Response{
		Handle:         handle,
		ConversationID: conv.ID,
		AgentType:      agent.Type(),
		Classification: result,
	}, nil
}

// resolveConversation loads the conversation with its history, or
// creates one titled from the first message when no id was supplied.
func (o *Orchestrator) resolveConversation(ctx context.Context, userID, message, conversationID string) (*store.Conversation, error) {
	if conversationID != "" {
		conv, err := o.conversations.GetConversation(ctx, conversationID)
		if err != nil {
			return nil, err
		}
		return conv, nil
	}
	title, err := contextwindow.GenerateTitle(ctx, o.llm, message)
	if err != nil {
		return nil, err
	}
	conv, err := o.conversations.CreateConversation(ctx, userID, title)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// persistReply waits for the agent turn to finish and appends the
// assistant message. The wait context is detached from the request so
// a disconnecting client does not lose the reply.
func (o *Orchestrator) persistReply(ctx context.Context, handle *agents.Handle, conversationID string, agentType agents.AgentType) {
	text, err := handle.Text(ctx)
	if err != nil {
		o.logger.WarnContext(ctx, "agent turn failed, reply not persisted", "conversation_id", conversationID, "error", err)
		return
	}
	if text == "" {
		return
	}
	if err := o.PersistAssistantResponse(ctx, conversationID, agentType, text); err != nil {
		o.logger.ErrorContext(ctx, "persisting assistant reply failed", "conversation_id", conversationID, "error", err)
	}
}

// PersistAssistantResponse appends a finished assistant reply to the
// conversation log.
func (o *Orchestrator) PersistAssistantResponse(ctx context.Context, conversationID string, agentType agents.AgentType, text string) error {
	_, err := o.conversations.AppendMessage(ctx, store.AppendMessageParams{
		ConversationID: conversationID,
		Role:           components.AssistantRole,
		Content:        text,
		AgentType:      agentType,
	})
	return err
}
