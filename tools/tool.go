// Package tools defines the contract between agents and their domain
// tools: schema-typed inputs, and results carried on an explicit error
// channel so the model can observe and narrate failures instead of the
// exchange crashing.
package tools

import (
	"context"
	"encoding/json"
)

type ITool interface {
	SetName(string)
	Name() string
	SetDescription(string)
	Description() string
	// InputSchema returns the JSON Schema of the tool's input.
	InputSchema() json.RawMessage
}

// AnonymousTool executes against raw model-provided arguments. Execute
// never returns a Go error: every failure is folded into the Result's
// error channel and fed back into the exchange.
type AnonymousTool interface {
	ITool
	Execute(ctx context.Context, args json.RawMessage) Result
}
