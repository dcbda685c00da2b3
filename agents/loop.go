package agents

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/voyantic/concierge/components"
	"github.com/voyantic/concierge/provider"
	"github.com/voyantic/concierge/tools"
)

const defaultMaxSteps = 5

// Streamer is the model surface the loop drives.
type Streamer interface {
	ChatStream(ctx context.Context, req provider.ChatRequest) (*provider.EventStream, error)
}

type Config struct {
	maxSteps int
	logger   *slog.Logger
}

// Loop runs one agent turn as a bounded sequence of model steps. Each
// step streams text and may request tool calls; requested tools are
// executed and their results fed into the next step. The turn ends when
// a step requests no tools or the step ceiling is hit.
type Loop struct {
	Config
	llm Streamer
}

func NewLoop(llm Streamer, options ...Option) *Loop {
	ret := &Loop{llm: llm}
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.maxSteps <= 0 {
		ret.maxSteps = defaultMaxSteps
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}

// Run starts the agent turn and returns immediately. The returned
// Handle streams events and yields the final text.
func (l *Loop) Run(ctx context.Context, agent *Agent, userID string, history []components.Message) *Handle {
	h := newHandle()
	go l.run(ctx, h, agent, userID, history)
	return h
}

func (l *Loop) run(ctx context.Context, h *Handle, agent *Agent, userID string, history []components.Message) {
	toolset := agent.Toolset(userID)
	byName := make(map[string]tools.AnonymousTool, len(toolset))
	for _, t := range toolset {
		byName[t.Name()] = t
	}
	req := provider.ChatRequest{
		System:  agent.SystemPrompt(userID),
		History: history,
		Tools:   toolDefinitions(toolset),
	}

	var full strings.Builder
	usage := new(components.LLMUsage)
	for step := 0; step < l.maxSteps; step++ {
		stream, err := l.llm.ChatStream(ctx, req)
		if err != nil {
			h.fail(ctx, full.String(), err)
			return
		}
		if err := l.drain(ctx, h, stream, &full); err != nil {
			stream.Close()
			h.fail(ctx, full.String(), err)
			return
		}
		res := stream.Result()
		stream.Close()
		usage.Merge(&res.Usage)
		if len(res.ToolCalls) == 0 {
			h.finish(ctx, full.String(), usage)
			return
		}

		exchange := provider.Step{Calls: res.ToolCalls}
		for _, call := range res.ToolCalls {
			call := call
			h.emit(ctx, Event{Type: EventToolCall, ToolCall: &call})
			result := l.execute(ctx, byName, call)
			h.emit(ctx, Event{Type: EventToolResult, ToolCall: &call, Result: &result})
			exchange.Results = append(exchange.Results, components.ToolCallback{
				ID:      call.ID,
				Name:    call.Name,
				Content: result.JSON(),
				IsError: result.IsError(),
			})
		}
		req.Steps = append(req.Steps, exchange)
	}
	// Step ceiling. Return whatever text accumulated rather than loop on.
	l.logger.WarnContext(ctx, "agent turn hit step ceiling", "agent", agent.Type(), "max_steps", l.maxSteps)
	h.finish(ctx, full.String(), usage)
}

func (l *Loop) drain(ctx context.Context, h *Handle, stream *provider.EventStream, full *strings.Builder) error {
	for {
		ev, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		if ev.Type == provider.EventTextDelta && ev.TextDelta != "" {
			full.WriteString(ev.TextDelta)
			if !h.emit(ctx, Event{Type: EventTextDelta, TextDelta: ev.TextDelta}) {
				return ctx.Err()
			}
		}
	}
}

// execute runs one requested tool. Failures, including requests for
// tools the agent does not carry, come back as error results for the
// model to observe.
func (l *Loop) execute(ctx context.Context, byName map[string]tools.AnonymousTool, call components.ToolCall) tools.Result {
	tool, ok := byName[call.Name]
	if !ok {
		l.logger.WarnContext(ctx, "model requested unknown tool", "tool", call.Name)
		return tools.Errorf("Unknown tool %q.", call.Name)
	}
	result := tool.Execute(ctx, json.RawMessage(call.Arguments))
	if result.IsError() {
		l.logger.WarnContext(ctx, "tool returned error", "tool", call.Name, "error", result.Error)
	}
	return result
}
