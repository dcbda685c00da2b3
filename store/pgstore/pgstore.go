// Package pgstore is the postgres implementation of the conversation
// log and commerce read models, backed by a pgx connection pool.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/xid"

	"github.com/voyantic/concierge/store"
)

const defaultListLimit = 20

type Store struct {
	pool *pgxpool.Pool
}

var (
	_ store.ConversationStore = (*Store)(nil)
	_ store.CommerceStore     = (*Store)(nil)
)

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect creates a pgx pool from the DSN and verifies it with a ping.
// SQLAlchemy-style driver suffixes in the DSN are normalized away so
// .env files shared with other stacks keep working.
func Connect(ctx context.Context, dsn string, opts ...func(*pgxpool.Config)) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(normalizeDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.MaxConns == 0 {
		cfg.MaxConns = 4
	}
	if cfg.MaxConnIdleTime == 0 {
		cfg.MaxConnIdleTime = 5 * time.Minute
	}
	if cfg.HealthCheckPeriod == 0 {
		cfg.HealthCheckPeriod = time.Minute
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: new pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return pool, nil
}

func normalizeDSN(dsn string) string {
	s := strings.TrimSpace(dsn)
	s = strings.Replace(s, "postgresql+asyncpg://", "postgresql://", 1)
	s = strings.Replace(s, "postgres+asyncpg://", "postgres://", 1)
	s = strings.Replace(s, "postgresql+pgx://", "postgresql://", 1)
	s = strings.Replace(s, "postgres+pgx://", "postgres://", 1)
	return s
}

func (s *Store) CreateConversation(ctx context.Context, userID, title string) (*store.Conversation, error) {
	conv := &store.Conversation{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  title,
		Status: store.ConversationActive,
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO conversations (id, user_id, title, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, conv.ID, conv.UserID, conv.Title, conv.Status)
	if err := row.Scan(&conv.CreatedAt, &conv.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

func (s *Store) GetConversation(ctx context.Context, id string) (*store.Conversation, error) {
	var conv store.Conversation
	row := s.pool.QueryRow(ctx, `
		SELECT id, user_id, COALESCE(title, ''), status, COALESCE(last_agent_type, ''),
		       COALESCE(context_summary, ''), created_at, updated_at
		FROM conversations
		WHERE id = $1
	`, id)
	err := row.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.Status,
		&conv.LastAgentType, &conv.ContextSummary, &conv.CreatedAt, &conv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	messages, err := s.ListMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	conv.Messages = messages
	return &conv, nil
}

func (s *Store) AppendMessage(ctx context.Context, params store.AppendMessageParams) (*store.Message, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	defer tx.Rollback(ctx)

	msg := &store.Message{
		ID:             xid.New().String(),
		ConversationID: params.ConversationID,
		Role:           params.Role,
		Content:        params.Content,
		AgentType:      params.AgentType,
		ToolCalls:      params.ToolCalls,
		Metadata:       params.Metadata,
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO messages (id, conversation_id, role, content, agent_type, tool_calls, metadata)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		RETURNING created_at
	`, msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.AgentType, msg.ToolCalls, msg.Metadata)
	if err := row.Scan(&msg.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("append message: %w", err)
	}

	ct, err := tx.Exec(ctx, `
		UPDATE conversations
		SET updated_at = now(),
		    last_agent_type = COALESCE(NULLIF($2, ''), last_agent_type)
		WHERE id = $1
	`, params.ConversationID, params.AgentType)
	if err != nil {
		return nil, fmt.Errorf("append message: touch conversation: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return nil, store.ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return msg, nil
}

func (s *Store) ListMessages(ctx context.Context, conversationID string) ([]store.Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, conversation_id, role, content, COALESCE(agent_type, ''), tool_calls, metadata, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []store.Message
	for rows.Next() {
		var msg store.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content,
			&msg.AgentType, &msg.ToolCalls, &msg.Metadata, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (s *Store) UpdateSummary(ctx context.Context, conversationID, summary string) error {
	ct, err := s.pool.Exec(ctx, `
		UPDATE conversations
		SET context_summary = $2, updated_at = now()
		WHERE id = $1
	`, conversationID, summary)
	if err != nil {
		return fmt.Errorf("update summary: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListConversations(ctx context.Context, userID string, limit, offset int) (*store.ConversationPage, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	page := new(store.ConversationPage)
	if err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM conversations WHERE user_id = $1`, userID,
	).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("list conversations: count: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT c.id, COALESCE(c.title, ''), c.status, COALESCE(c.last_agent_type, ''),
		       c.created_at, c.updated_at,
		       COALESCE((SELECT count(*) FROM messages m WHERE m.conversation_id = c.id), 0),
		       COALESCE((SELECT m.content FROM messages m WHERE m.conversation_id = c.id
		                 ORDER BY m.created_at DESC, m.id DESC LIMIT 1), '')
		FROM conversations c
		WHERE c.user_id = $1
		ORDER BY c.updated_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	page.Items = []store.ConversationSummary{}
	for rows.Next() {
		var item store.ConversationSummary
		if err := rows.Scan(&item.ID, &item.Title, &item.Status, &item.LastAgentType,
			&item.CreatedAt, &item.UpdatedAt, &item.MessageCount, &item.LastMessage); err != nil {
			return nil, fmt.Errorf("list conversations: %w", err)
		}
		page.Items = append(page.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return page, nil
}

func (s *Store) DeleteConversation(ctx context.Context, id string) error {
	ct, err := s.pool.Exec(ctx, `DELETE FROM conversations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
