package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable indicates the model provider is unreachable.
	ErrProviderUnavailable = errors.New("llm provider unavailable")

	// ErrNotConfigured indicates the provider is missing required settings
	// such as an API key.
	ErrNotConfigured = errors.New("llm provider not configured")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)

// StatusError is a non-success HTTP response from a provider without an SDK
// error type of its own.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}
