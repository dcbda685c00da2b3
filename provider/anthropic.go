package provider

import (
	"context"
	"encoding/json"
	"io"

	"github.com/bububa/instructor-go/pkg/instructor"
	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/voyantic/concierge/components"
	"github.com/voyantic/concierge/schema"
)

func (c *Client) generateObjectAnthropic(ctx context.Context, clt *instructor.InstructorAnthropic, system, prompt string, result schema.Schema, llmResp *components.LLMResponse) error {
	temperature := c.temperature
	chatReq := anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		Temperature: &temperature,
		MaxTokens:   c.maxTokens,
		System:      system,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
	}
	res, err := clt.CreateMessages(ctx, chatReq, result)
	if err != nil {
		return wrapErr(err)
	}
	if llmResp != nil {
		llmResp.FromAnthropic(&res)
	}
	return nil
}

func (c *Client) generateTextAnthropic(ctx context.Context, clt *anthropic.Client, system, prompt string) (string, error) {
	temperature := c.temperature
	res, err := clt.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		Temperature: &temperature,
		MaxTokens:   c.maxTokens,
		System:      system,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
	})
	if err != nil {
		return "", wrapErr(err)
	}
	return res.GetFirstContentText(), nil
}

func (c *Client) chatStreamAnthropic(ctx context.Context, clt *anthropic.Client, req ChatRequest) (*EventStream, error) {
	temperature := c.temperature
	msgReq := anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		Temperature: &temperature,
		MaxTokens:   c.maxTokens,
		System:      req.System,
		Messages:    anthropicMessages(req),
	}
	for _, def := range req.Tools {
		var inputSchema any
		if err := json.Unmarshal(def.Parameters, &inputSchema); err != nil {
			inputSchema = map[string]any{"type": "object"}
		}
		msgReq.Tools = append(msgReq.Tools, anthropic.ToolDefinition{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: inputSchema,
		})
	}

	events := make(chan StreamEvent, 16)
	errs := make(chan error, 1)
	eventStream := NewEventStream(nil, nil)

	// The anthropic SDK drives the stream via callbacks; bridge it to
	// the pull-based EventStream through a channel. Sends are guarded
	// on ctx so an abandoned consumer does not strand this goroutine
	// once the channel buffer fills.
	go func() {
		defer close(events)
		res, err := clt.CreateMessagesStream(ctx, anthropic.MessagesStreamRequest{
			MessagesRequest: msgReq,
			OnContentBlockDelta: func(data anthropic.MessagesEventContentBlockDeltaData) {
				if data.Delta.Text != nil && *data.Delta.Text != "" {
					sendEvent(ctx, events, StreamEvent{Type: EventTextDelta, TextDelta: *data.Delta.Text})
				}
			},
		})
		if err != nil {
			errs <- wrapErr(err)
			return
		}
		eventStream.SetModel(string(res.Model))
		eventStream.SetUsage(components.LLMUsage{
			InputTokens:  int64(res.Usage.InputTokens),
			OutputTokens: int64(res.Usage.OutputTokens),
		})
		for _, block := range res.Content {
			if block.Type != anthropic.MessagesContentTypeToolUse || block.MessageContentToolUse == nil {
				continue
			}
			ok := sendEvent(ctx, events, StreamEvent{Type: EventToolCall, ToolCall: components.ToolCall{
				ID:        block.MessageContentToolUse.ID,
				Name:      block.MessageContentToolUse.Name,
				Arguments: string(block.MessageContentToolUse.Input),
			}})
			if !ok {
				return
			}
		}
	}()

	eventStream.next = func() (StreamEvent, error) {
		event, ok := <-events
		if !ok {
			select {
			case err := <-errs:
				return StreamEvent{}, err
			default:
				return StreamEvent{}, io.EOF
			}
		}
		return event, nil
	}
	return eventStream, nil
}

// anthropicMessages flattens a ChatRequest into the wire message list.
// The system prompt travels in the request's System field, so a leading
// system-role history message (the injected conversation summary) is
// folded into user-role content by Message.ToAnthropic.
func anthropicMessages(req ChatRequest) []anthropic.Message {
	messages := make([]anthropic.Message, 0, len(req.History)+2*len(req.Steps))
	for _, m := range req.History {
		v := new(anthropic.Message)
		m.ToAnthropic(v)
		messages = append(messages, *v)
	}
	for _, step := range req.Steps {
		calls := new(anthropic.Message)
		components.ToolCallsToAnthropic(step.Calls, calls)
		messages = append(messages, *calls)
		results := new(anthropic.Message)
		components.ToolCallbacksToAnthropic(step.Results, results)
		messages = append(messages, *results)
	}
	return messages
}
