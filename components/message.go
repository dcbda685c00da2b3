package components

import (
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
)

// MessageRole is the role of the message sender (e.g., 'user', 'system', 'tool')
type MessageRole = string

const (
	SystemRole    MessageRole = "system"
	UserRole      MessageRole = "user"
	AssistantRole MessageRole = "assistant"
	ToolRole      MessageRole = "tool"
)

// Message is the bounded, model-facing representation of one turn of a
// conversation. It is distinct from a persisted message: tool-role
// history is excluded from it and a synthetic system-role summary may
// sit at position 0.
type Message struct {
	role    MessageRole
	content string
}

// NewMessage returns a new Message
func NewMessage(role MessageRole, content string) *Message {
	return &Message{
		role:    role,
		content: content,
	}
}

// Role returns message role
func (m Message) Role() MessageRole {
	return m.role
}

// Content returns message content
func (m Message) Content() string {
	return m.content
}

// ToOpenAI convert message to openai ChatCompletionMessage
func (m Message) ToOpenAI(dist *openai.ChatCompletionMessage) {
	dist.Role = m.role
	dist.Content = m.content
}

// ToAnthropic convert message to anthropic Message. Anthropic carries the
// system prompt in the request's System field rather than the message
// list, so system-role history messages (the injected conversation
// summary) are folded into user-role content.
func (m Message) ToAnthropic(dist *anthropic.Message) {
	role := anthropic.ChatRole(m.role)
	if m.role == SystemRole {
		role = anthropic.RoleUser
	}
	dist.Role = role
	dist.Content = []anthropic.MessageContent{anthropic.NewTextMessageContent(m.content)}
}
