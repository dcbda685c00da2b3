// Package provider is the client for the language model: structured
// output, free text, and tool-augmented streaming over the instructor
// OpenAI and Anthropic backends.
package provider

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bububa/instructor-go/pkg/instructor"

	"github.com/voyantic/concierge/components"
	"github.com/voyantic/concierge/schema"
)

// ToolDefinition describes one tool offered to the model during a step.
// Parameters is a JSON Schema object for the tool's input.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// Step records one completed round of a tool-calling exchange: the
// calls the model requested and the structured results fed back.
type Step struct {
	Calls   []components.ToolCall
	Results []components.ToolCallback
}

// ChatRequest is one model step of a tool-calling exchange.
type ChatRequest struct {
	System  string
	History []components.Message
	Steps   []Step
	Tools   []ToolDefinition
}

// Config represents general provider client configuration
type Config struct {
	// client for interacting with the language model
	client instructor.Instructor
	// model llm model
	model string
	// temperature Temperature for response generation, typically ranging from 0 to 1.
	temperature float32
	// maxTokens Maximum number of tokens allowed in the response
	maxTokens int
}

// Client talks to a language model through an instructor client. It
// is safe for concurrent use.
type Client struct {
	Config
}

// New initializes a provider Client.
func New(options ...Option) *Client {
	ret := new(Client)
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.maxTokens == 0 {
		ret.maxTokens = 1024
	}
	return ret
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// GenerateObject requests a single structured object conforming to the
// result schema. llmResp, when non-nil, receives the raw provider
// response metadata.
func (c *Client) GenerateObject(ctx context.Context, system, prompt string, result schema.Schema, llmResp *components.LLMResponse) error {
	switch clt := c.client.(type) {
	case *instructor.InstructorOpenAI:
		return c.generateObjectOpenAI(ctx, clt, system, prompt, result, llmResp)
	case *instructor.InstructorAnthropic:
		return c.generateObjectAnthropic(ctx, clt, system, prompt, result, llmResp)
	}
	return errors.New("provider: unsupported instructor client")
}

// GenerateText requests a plain free-text completion.
func (c *Client) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	switch clt := c.client.(type) {
	case *instructor.InstructorOpenAI:
		return c.generateTextOpenAI(ctx, clt.Client, system, prompt)
	case *instructor.InstructorAnthropic:
		return c.generateTextAnthropic(ctx, clt.Client, system, prompt)
	}
	return "", errors.New("provider: unsupported instructor client")
}

// ChatStream runs one step of a tool-augmented exchange and returns the
// event stream. The caller must Close the stream.
func (c *Client) ChatStream(ctx context.Context, req ChatRequest) (*EventStream, error) {
	switch clt := c.client.(type) {
	case *instructor.InstructorOpenAI:
		return c.chatStreamOpenAI(ctx, clt.Client, req)
	case *instructor.InstructorAnthropic:
		return c.chatStreamAnthropic(ctx, clt.Client, req)
	}
	return nil, errors.New("provider: unsupported instructor client")
}
