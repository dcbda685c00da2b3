package contextwindow

import (
	"context"
	"strings"

	"github.com/voyantic/concierge/provider"
)

// DefaultTitle is used when title generation fails.
const DefaultTitle = "New Conversation"

const titleSystemPrompt = "Generate a very short title (3-6 words) for a customer support conversation " +
	"based on the user's first message. Return only the title, nothing else."

const maxTitleLength = 100

// GenerateTitle derives a short conversation title from the first user
// message. Generation is best effort: any provider failure other than
// quota exhaustion yields DefaultTitle rather than blocking
// conversation creation.
func GenerateTitle(ctx context.Context, llm Summarizer, userMessage string) (string, error) {
	title, err := llm.GenerateText(ctx, titleSystemPrompt, userMessage)
	if err != nil {
		if provider.IsQuotaExceeded(err) {
			return "", err
		}
		return DefaultTitle, nil
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle, nil
	}
	if len(title) > maxTitleLength {
		title = title[:maxTitleLength]
	}
	return title, nil
}
