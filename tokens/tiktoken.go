package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/voyantic/concierge/components"
)

// TiktokenEstimator counts exact tokens using the tiktoken library,
// which implements the tokenization schemes used by OpenAI models.
// The per-message framing overhead is still approximated.
type TiktokenEstimator struct {
	tke *tiktoken.Tiktoken
}

var _ Estimator = (*TiktokenEstimator)(nil)

// NewTiktokenEstimator creates a TiktokenEstimator using the specified
// encoding. Common encodings include:
// - "cl100k_base" (GPT-4, ChatGPT)
// - "o200k_base" (GPT-4o)
func NewTiktokenEstimator(encoding string) (*TiktokenEstimator, error) {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding: %w", err)
	}
	return &TiktokenEstimator{tke: tke}, nil
}

func (e *TiktokenEstimator) Text(s string) int {
	return len(e.tke.Encode(s, nil, nil))
}

func (e *TiktokenEstimator) Messages(msgs []components.Message) int {
	total := 0
	for _, m := range msgs {
		total += messageOverhead + e.Text(m.Content())
	}
	return total
}
