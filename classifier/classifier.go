// Package classifier labels a user message with one of the fixed
// support intents via a structured-output model call.
package classifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/voyantic/concierge/components"
	"github.com/voyantic/concierge/provider"
	"github.com/voyantic/concierge/schema"
)

// Intent is the classified category of a user message, driving dispatch.
type Intent string

const (
	IntentSupport Intent = "support"
	IntentOrder   Intent = "order"
	IntentBilling Intent = "billing"
	IntentGeneral Intent = "general"
)

// Classification is the structured classifier output. It is ephemeral:
// computed per request, never persisted.
type Classification struct {
	// Intent the classified category of the message
	Intent Intent `json:"intent" jsonschema:"title=intent,enum=support,enum=order,enum=billing,enum=general,description=The classified category of the user message." validate:"required,oneof=support order billing general"`
	// Confidence how certain the classification is
	Confidence float64 `json:"confidence" jsonschema:"title=confidence,minimum=0,maximum=1,description=How certain the classification is, from 0 to 1." validate:"gte=0,lte=1"`
	// Reasoning a short explanation for the chosen intent
	Reasoning string `json:"reasoning" jsonschema:"title=reasoning,description=A short explanation for the chosen intent." validate:"required"`
}

func (c Classification) String() string {
	return schema.JSONString(c)
}

// Fallback is returned whenever classification fails: the safest route
// is the default one, never a user-visible error.
var Fallback = Classification{
	Intent:     IntentGeneral,
	Confidence: 0.3,
	Reasoning:  "Classification failed, defaulting to general support.",
}

const routerSystemPrompt = `You are a customer support intent classifier. Analyze the user's message and classify it into one of the following categories.

Classification rules:
- "support": General product support, FAQs, troubleshooting, how-to questions, account help, setup guides
- "order": Order status inquiries, delivery tracking, order modifications, cancellations, shipping questions about specific orders
- "billing": Payment issues, refund requests/status, invoice inquiries, subscription management, charges, billing history
- "general": Greetings, off-topic messages, unclear intent that doesn't fit the above categories

Guidelines:
- Consider the full context of the conversation, not just keywords
- If a message mentions both order and billing (e.g., "refund for order X"), classify as "billing" since the primary action is billing-related
- Simple greetings like "hi" or "hello" should be "general"
- If unsure, lean toward "general" with lower confidence
- Confidence should reflect how certain you are: >0.8 = very clear, 0.5-0.8 = likely, <0.5 = uncertain`

// ObjectGenerator is the slice of the language model the classifier needs.
type ObjectGenerator interface {
	GenerateObject(ctx context.Context, system, prompt string, result schema.Schema, llmResp *components.LLMResponse) error
}

// Classifier labels messages with an intent.
type Classifier struct {
	llm    ObjectGenerator
	logger *slog.Logger
}

// New returns a Classifier backed by the given structured-output client.
func New(llm ObjectGenerator, options ...Option) *Classifier {
	ret := &Classifier{llm: llm}
	for _, opt := range options {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}

// Classify labels the message, optionally informed by a short rendered
// window of recent turns. It never fails into the caller's face: any
// provider error other than quota exhaustion degrades to [Fallback].
func (c *Classifier) Classify(ctx context.Context, message, recentContext string) (Classification, error) {
	var prompt string
	if recentContext != "" {
		prompt = fmt.Sprintf("Previous conversation context:\n%s\n\nNew user message: %q", recentContext, message)
	} else {
		prompt = fmt.Sprintf("User message: %q", message)
	}

	var result Classification
	if err := c.llm.GenerateObject(ctx, routerSystemPrompt, prompt, &result, nil); err != nil {
		if provider.IsQuotaExceeded(err) {
			return Classification{}, err
		}
		c.logger.Error("intent classification failed", "error", err)
		return Fallback, nil
	}
	return result, nil
}
