package provider

import (
	"context"
	"errors"
	"io"

	"github.com/bububa/instructor-go/pkg/instructor"
	openai "github.com/sashabaranov/go-openai"

	"github.com/voyantic/concierge/components"
	"github.com/voyantic/concierge/schema"
)

func (c *Client) generateObjectOpenAI(ctx context.Context, clt *instructor.InstructorOpenAI, system, prompt string, result schema.Schema, llmResp *components.LLMResponse) error {
	chatReq := openai.ChatCompletionRequest{
		Model:               c.model,
		Temperature:         c.temperature,
		MaxCompletionTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: components.SystemRole, Content: system},
			{Role: components.UserRole, Content: prompt},
		},
	}
	res, err := clt.CreateChatCompletion(ctx, chatReq, result)
	if err != nil {
		return wrapErr(err)
	}
	if llmResp != nil {
		llmResp.FromOpenAI(&res)
	}
	return nil
}

func (c *Client) generateTextOpenAI(ctx context.Context, clt *openai.Client, system, prompt string) (string, error) {
	res, err := clt.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               c.model,
		Temperature:         c.temperature,
		MaxCompletionTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: components.SystemRole, Content: system},
			{Role: components.UserRole, Content: prompt},
		},
	})
	if err != nil {
		return "", wrapErr(err)
	}
	if len(res.Choices) == 0 {
		return "", errors.New("provider: empty completion")
	}
	return res.Choices[0].Message.Content, nil
}

func (c *Client) chatStreamOpenAI(ctx context.Context, clt *openai.Client, req ChatRequest) (*EventStream, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               c.model,
		Temperature:         c.temperature,
		MaxCompletionTokens: c.maxTokens,
		Messages:            openAIMessages(req),
		StreamOptions:       &openai.StreamOptions{IncludeUsage: true},
	}
	for _, def := range req.Tools {
		chatReq.Tools = append(chatReq.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}

	stream, err := clt.CreateChatCompletionStream(ctx, chatReq)
	if err != nil {
		return nil, wrapErr(err)
	}

	// Tool call arguments arrive as incremental fragments keyed by
	// index; they are assembled here and emitted once the stream ends.
	pending := make(map[int]*components.ToolCall)
	order := make([]int, 0, 4)
	var queue []StreamEvent
	flushed := false

	eventStream := NewEventStream(nil, stream)
	eventStream.next = func() (StreamEvent, error) {
		for {
			if len(queue) > 0 {
				event := queue[0]
				queue = queue[1:]
				return event, nil
			}
			res, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				if !flushed {
					flushed = true
					for _, idx := range order {
						queue = append(queue, StreamEvent{Type: EventToolCall, ToolCall: *pending[idx]})
					}
					if len(queue) > 0 {
						continue
					}
				}
				return StreamEvent{}, io.EOF
			}
			if err != nil {
				return StreamEvent{}, wrapErr(err)
			}
			if res.Model != "" {
				eventStream.SetModel(res.Model)
			}
			if res.Usage != nil {
				eventStream.SetUsage(components.LLMUsage{
					InputTokens:  int64(res.Usage.PromptTokens),
					OutputTokens: int64(res.Usage.CompletionTokens),
				})
			}
			if len(res.Choices) == 0 {
				continue
			}
			delta := res.Choices[0].Delta
			for _, tc := range delta.ToolCalls {
				idx := 0
				if tc.Index != nil {
					idx = *tc.Index
				}
				call, ok := pending[idx]
				if !ok {
					call = new(components.ToolCall)
					pending[idx] = call
					order = append(order, idx)
				}
				if tc.ID != "" {
					call.ID = tc.ID
				}
				if tc.Function.Name != "" {
					call.Name = tc.Function.Name
				}
				call.Arguments += tc.Function.Arguments
			}
			if delta.Content != "" {
				return StreamEvent{Type: EventTextDelta, TextDelta: delta.Content}, nil
			}
		}
	}
	return eventStream, nil
}

// openAIMessages flattens a ChatRequest into the wire message list:
// system prompt, bounded history, then each completed tool round as an
// assistant tool-call message followed by its tool results.
func openAIMessages(req ChatRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2*len(req.Steps)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: components.SystemRole, Content: req.System})
	}
	for _, m := range req.History {
		v := new(openai.ChatCompletionMessage)
		m.ToOpenAI(v)
		messages = append(messages, *v)
	}
	for _, step := range req.Steps {
		v := new(openai.ChatCompletionMessage)
		components.ToolCallsToOpenAI(step.Calls, v)
		messages = append(messages, *v)
		messages = append(messages, components.ToolCallbacksToOpenAI(step.Results)...)
	}
	return messages
}
