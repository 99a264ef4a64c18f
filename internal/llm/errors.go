package llm

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrInvalidCredential indicates the provider rejected the API key (401/403).
type ErrInvalidCredential struct {
	Err error
}

func (e *ErrInvalidCredential) Error() string {
	return fmt.Sprintf("invalid credential: %v", e.Err)
}

func (e *ErrInvalidCredential) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrBadRequest indicates the provider refused the request as malformed (400).
type ErrBadRequest struct {
	Err error
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("bad request: %v", e.Err)
}

func (e *ErrBadRequest) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the provider returned a reply with no
// usable completion.
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content string
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// UserMessage turns a generation error into the message shown to the
// teacher. Every error class maps to a distinct sentence.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		cred    *ErrInvalidCredential
		rl      *ErrRateLimit
		bad     *ErrBadRequest
		invalid *ErrInvalidResponse
		maxTok  *ErrMaxTokensExceeded
	)
	switch {
	case errors.Is(err, ErrMalformedCredential):
		return "Invalid API key format. API keys start with \"sk-\" followed by at least 20 letters, digits, hyphens or underscores."
	case errors.As(err, &cred):
		return "Invalid API key. Please check your API key."
	case errors.As(err, &rl):
		return "Rate limit exceeded. Please try again later."
	case errors.As(err, &bad):
		return "Invalid request. Please check your input."
	case errors.As(err, &invalid):
		return "The AI service returned an unusable response."
	case errors.As(err, &maxTok):
		return "The AI response was cut short before it finished."
	default:
		return fmt.Sprintf("AI service error: %v", err)
	}
}

// classifyStatus maps an HTTP status returned by a provider to one of the
// error types above. Anything unrecognized is treated as the provider
// being unavailable.
func classifyStatus(status int, err error) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ErrInvalidCredential{Err: err}
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status == http.StatusBadRequest:
		return &ErrBadRequest{Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
