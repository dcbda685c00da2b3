package tools

import (
	"encoding/json"
	"fmt"
)

// Result is the discriminated outcome of one tool call: Error set and
// Data nil on failure, Error empty and Data set on success. Message
// optionally carries a human-readable note when the result set is empty.
type Result struct {
	Error   string `json:"error"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// OK returns a successful result.
func OK(data any) Result {
	return Result{Data: data}
}

// Empty returns a successful result with no rows and a note the model
// can relay to the user.
func Empty(message string) Result {
	return Result{Data: []any{}, Message: message}
}

// Errorf returns a failed result.
func Errorf(format string, args ...any) Result {
	return Result{Error: fmt.Sprintf(format, args...)}
}

// IsError reports whether the result is on the error channel.
func (r Result) IsError() bool {
	return r.Error != ""
}

// JSON renders the result for feeding back into the model exchange.
func (r Result) JSON() string {
	bs, _ := json.Marshal(r)
	return string(bs)
}
