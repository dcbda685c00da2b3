// Package memstore is the in-memory store used for development and
// tests. It implements both the conversation log and the commerce
// read models behind a single mutex-guarded state.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"

	"github.com/voyantic/concierge/store"
)

const defaultListLimit = 20

type Store struct {
	mu            sync.RWMutex
	conversations map[string]*store.Conversation
	orders        []store.Order
	invoices      []store.Invoice
	refunds       []store.Refund
	now           func() time.Time
}

var (
	_ store.ConversationStore = (*Store)(nil)
	_ store.CommerceStore     = (*Store)(nil)
)

func New() *Store {
	return &Store{
		conversations: make(map[string]*store.Conversation),
		now:           time.Now,
	}
}

func (s *Store) CreateConversation(_ context.Context, userID, title string) (*store.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	conv := &store.Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Status:    store.ConversationActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.conversations[conv.ID] = conv
	out := *conv
	return &out, nil
}

func (s *Store) GetConversation(_ context.Context, id string) (*store.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *conv
	out.Messages = append([]store.Message(nil), conv.Messages...)
	return &out, nil
}

func (s *Store) AppendMessage(_ context.Context, params store.AppendMessageParams) (*store.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[params.ConversationID]
	if !ok {
		return nil, store.ErrNotFound
	}
	now := s.now()
	msg := store.Message{
		ID:             xid.New().String(),
		ConversationID: params.ConversationID,
		Role:           params.Role,
		Content:        params.Content,
		AgentType:      params.AgentType,
		ToolCalls:      params.ToolCalls,
		Metadata:       params.Metadata,
		CreatedAt:      now,
	}
	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = now
	if params.AgentType != "" {
		conv.LastAgentType = params.AgentType
	}
	out := msg
	return &out, nil
}

func (s *Store) ListMessages(_ context.Context, conversationID string) ([]store.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]store.Message(nil), conv.Messages...), nil
}

func (s *Store) UpdateSummary(_ context.Context, conversationID, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[conversationID]
	if !ok {
		return store.ErrNotFound
	}
	conv.ContextSummary = summary
	conv.UpdatedAt = s.now()
	return nil
}

func (s *Store) ListConversations(_ context.Context, userID string, limit, offset int) (*store.ConversationPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var mine []*store.Conversation
	for _, conv := range s.conversations {
		if conv.UserID == userID {
			mine = append(mine, conv)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].UpdatedAt.After(mine[j].UpdatedAt)
	})
	if limit <= 0 {
		limit = defaultListLimit
	}
	page := &store.ConversationPage{Total: len(mine)}
	if offset >= len(mine) {
		page.Items = []store.ConversationSummary{}
		return page, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	page.Items = make([]store.ConversationSummary, 0, end-offset)
	for _, conv := range mine[offset:end] {
		summary := store.ConversationSummary{
			ID:            conv.ID,
			Title:         conv.Title,
			Status:        conv.Status,
			LastAgentType: conv.LastAgentType,
			MessageCount:  len(conv.Messages),
			CreatedAt:     conv.CreatedAt,
			UpdatedAt:     conv.UpdatedAt,
		}
		if n := len(conv.Messages); n > 0 {
			summary.LastMessage = truncate(conv.Messages[n-1].Content, 120)
		}
		page.Items = append(page.Items, summary)
	}
	return page, nil
}

func (s *Store) DeleteConversation(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.conversations, id)
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
