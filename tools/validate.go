package tools

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodeArgs unmarshals raw model-provided arguments into v and checks
// its `validate` struct tags. Models do occasionally emit malformed or
// incomplete arguments; the returned error is meant to be folded into a
// Result so the model can correct itself on the next step.
func DecodeArgs(args json.RawMessage, v any) error {
	if len(args) > 0 {
		if err := json.Unmarshal(args, v); err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
