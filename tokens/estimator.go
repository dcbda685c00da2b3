// Package tokens approximates the model token cost of text and message
// sequences without invoking a model.
package tokens

import "github.com/voyantic/concierge/components"

// charsPerToken is the fixed character-to-token ratio. BPE tokenizers
// average roughly 4 characters per token for English text.
const charsPerToken = 4

// messageOverhead accounts for role and delimiter framing added around
// each message on the wire.
const messageOverhead = 4

// Estimator counts approximate tokens. Implementations must be monotone
// with text length; accuracy beyond that is not a correctness requirement.
type Estimator interface {
	Text(s string) int
	Messages(msgs []components.Message) int
}

// CharEstimator estimates tokens from character counts at a fixed ratio,
// rounding up. It is pure and never fails.
type CharEstimator struct{}

var _ Estimator = CharEstimator{}

func (CharEstimator) Text(s string) int {
	return (len(s) + charsPerToken - 1) / charsPerToken
}

func (e CharEstimator) Messages(msgs []components.Message) int {
	total := 0
	for _, m := range msgs {
		total += messageOverhead + e.Text(m.Content())
	}
	return total
}
