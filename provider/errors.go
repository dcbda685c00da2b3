package provider

import (
	"errors"
	"fmt"
	"net/http"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
)

// ErrQuotaExceeded marks provider rate/quota refusals. Unlike other
// provider failures, which callers degrade around, quota exhaustion
// aborts the whole request: retrying or faking a result would mislead
// the user about billing-sensitive capacity.
var ErrQuotaExceeded = errors.New("provider: quota exceeded")

// wrapErr tags quota refusals so callers can test with errors.Is.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if isQuota(err) {
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	return err
}

// IsQuotaExceeded reports whether err is a provider rate or quota
// refusal, across both SDKs' error shapes.
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded) || isQuota(err)
}

func isQuota(err error) bool {
	var oaiErr *openai.APIError
	if errors.As(err, &oaiErr) {
		if oaiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return true
		}
		if code, ok := oaiErr.Code.(string); ok && code == "insufficient_quota" {
			return true
		}
	}
	var antReqErr *anthropic.RequestError
	if errors.As(err, &antReqErr) && antReqErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	var antErr *anthropic.APIError
	if errors.As(err, &antErr) && antErr.Type == "rate_limit_error" {
		return true
	}
	return false
}
