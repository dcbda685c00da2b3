package helpdesk

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/voyantic/concierge/store"
	"github.com/voyantic/concierge/tools"
)

const (
	defaultHistoryLimit = 5
	historyMessageTail  = 3
)

// HistoryInput Schema for searching past conversations.
type HistoryInput struct {
	// Query optional keyword to match in message content
	Query string `json:"query,omitempty" jsonschema:"title=query,description=Optional keyword to search in message content."`
	// Limit maximum number of conversations to return
	Limit int `json:"limit,omitempty" jsonschema:"title=limit,description=Maximum number of conversations to return.,default=5" validate:"omitempty,min=1,max=20"`
}

const historySchema = `{
	"type": "object",
	"properties": {
		"query": {
			"type": "string",
			"description": "Optional keyword to search in message content"
		},
		"limit": {
			"type": "integer",
			"description": "Maximum number of conversations to return",
			"default": 5
		}
	}
}`

// HistoryConversation is one past conversation with its most recent
// messages attached.
type HistoryConversation struct {
	ID        string           `json:"id"`
	Title     string           `json:"title,omitempty"`
	Status    string           `json:"status"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Messages  []HistoryMessage `json:"messages"`
}

// HistoryMessage is the trimmed message projection returned to the model.
type HistoryMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	AgentType string    `json:"agentType,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// History searches the calling user's past conversations for relevant
// context. The user is fixed at construction so the model cannot read
// another user's history.
type History struct {
	tools.Config
	db     store.ConversationStore
	userID string
}

var _ tools.AnonymousTool = (*History)(nil)

func NewHistory(db store.ConversationStore, userID string, opts ...tools.Option) *History {
	ret := &History{db: db, userID: userID}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("queryConversationHistory")
	}
	if ret.Description() == "" {
		ret.SetDescription("Search past conversations for the current user to find relevant context, previous issues discussed, or solutions provided before. Use this when the user references past interactions.")
	}
	return ret
}

func (t *History) InputSchema() json.RawMessage {
	return json.RawMessage(historySchema)
}

func (t *History) Execute(ctx context.Context, args json.RawMessage) tools.Result {
	var input HistoryInput
	if err := tools.DecodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	page, err := t.db.ListConversations(ctx, t.userID, limit*4, 0)
	if err != nil {
		return tools.Errorf("Failed to search conversation history.")
	}
	query := strings.ToLower(input.Query)
	var results []HistoryConversation
	for _, summary := range page.Items {
		if len(results) == limit {
			break
		}
		messages, err := t.db.ListMessages(ctx, summary.ID)
		if err != nil {
			return tools.Errorf("Failed to search conversation history.")
		}
		if query != "" && !anyMessageContains(messages, query) {
			continue
		}
		results = append(results, HistoryConversation{
			ID:        summary.ID,
			Title:     summary.Title,
			Status:    summary.Status,
			UpdatedAt: summary.UpdatedAt,
			Messages:  recentMessages(messages, historyMessageTail),
		})
	}
	if len(results) == 0 {
		return tools.Empty("No past conversations found for this user.")
	}
	return tools.OK(results)
}

func anyMessageContains(messages []store.Message, query string) bool {
	for _, msg := range messages {
		if strings.Contains(strings.ToLower(msg.Content), query) {
			return true
		}
	}
	return false
}

// recentMessages returns the newest n messages, newest first.
func recentMessages(messages []store.Message, n int) []HistoryMessage {
	if len(messages) < n {
		n = len(messages)
	}
	out := make([]HistoryMessage, 0, n)
	for i := len(messages) - 1; i >= len(messages)-n; i-- {
		msg := messages[i]
		out = append(out, HistoryMessage{
			Role:      msg.Role,
			Content:   msg.Content,
			AgentType: msg.AgentType,
			CreatedAt: msg.CreatedAt,
		})
	}
	return out
}
