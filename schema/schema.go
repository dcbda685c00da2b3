package schema

import "encoding/json"

// Schema is the contract for typed structures exchanged with a language
// model: structured outputs, tool inputs and tool outputs. The string
// form is what gets rendered into prompts and wire payloads.
type Schema interface {
	String() string
}

// Stringify renders a schema for prompt or wire use.
func Stringify(s Schema) string {
	return s.String()
}

// ToBytes renders a schema as raw bytes.
func ToBytes(s Schema) []byte {
	return []byte(s.String())
}

// JSONString marshals v and returns the JSON text. It is the common
// String() implementation for struct schemas.
func JSONString(v any) string {
	bs, _ := json.Marshal(v)
	return string(bs)
}
