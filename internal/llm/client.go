package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default

	// SchemaName and Schema request structured output from providers that
	// support it. Providers without schema support ignore them.
	SchemaName string
	Schema     any
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the provider is reachable.
	Available(ctx context.Context) bool
}

// completion is one resolved provider call.
type completion struct {
	system      string
	user        string
	temperature float64
	maxTokens   int
	schemaName  string
	schema      any
}

// backend is a single model provider. It performs exactly one request per
// call; retries, timeouts, and observation live in retryingClient.
type backend interface {
	complete(ctx context.Context, model string, c completion) (text string, servedBy string, err error)
	ping(ctx context.Context) bool
}

// retryingClient wraps a backend with per-attempt timeouts, retries, and
// observer events.
type retryingClient struct {
	cfg      LLMConfig
	model    string
	backend  backend
	observer Observer
}

func newRetryingClient(cfg LLMConfig, b backend, observer Observer) *retryingClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &retryingClient{
		cfg:      cfg,
		model:    cfg.ModelOrDefault(),
		backend:  b,
		observer: observer,
	}
}

func (c *retryingClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	call := completion{
		system:      req.SystemPrompt,
		user:        req.UserPrompt,
		temperature: taskCfg.Temperature,
		maxTokens:   taskCfg.MaxTokens,
		schemaName:  req.SchemaName,
		schema:      req.Schema,
	}
	if req.Temperature != nil {
		call.temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		call.maxTokens = *req.MaxTokens
	}

	timeout := time.Duration(c.cfg.TaskTimeout(req.Task)) * time.Millisecond

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		text, servedBy, err := c.attempt(ctx, timeout, call)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Provider:  c.cfg.Provider,
				Model:     c.model,
				LatencyMs: latency,
				Success:   true,
			})
			if servedBy == "" {
				servedBy = c.model
			}
			return &GenerateResponse{Text: text, Model: servedBy, LatencyMs: latency}, nil
		}
		lastErr = err

		// Caller cancellation ends the loop; a per-attempt timeout does not.
		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}

	final := classify(ctx, lastErr)
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  c.cfg.Provider,
		Model:     c.model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(final),
	})
	return nil, final
}

func (c *retryingClient) attempt(ctx context.Context, timeout time.Duration, call completion) (string, string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, servedBy, err := c.backend.complete(attemptCtx, c.model, call)
	if err != nil && attemptCtx.Err() != nil && ctx.Err() == nil {
		return "", "", fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return text, servedBy, err
}

func (c *retryingClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.backend.ping(ctx)
}

func classify(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil, errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, ErrNotConfigured):
		return err
	case isConnectionError(err):
		return ErrProviderUnavailable
	case !retryable(err):
		return rejected(err)
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

// retryable reports whether another attempt may succeed. Timeouts,
// connection failures, rate limits and server errors qualify; other provider
// status codes do not.
func retryable(err error) bool {
	switch {
	case errors.Is(err, ErrTimeout), isConnectionError(err):
		return true
	case errors.Is(err, ErrNotConfigured):
		return false
	}
	if code, ok := statusCode(err); ok {
		return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
	}
	return true
}

func rejected(err error) error {
	if errors.Is(err, ErrNotConfigured) {
		return err
	}
	if code, _ := statusCode(err); code == http.StatusUnauthorized || code == http.StatusForbidden {
		return fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}

func statusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	var oe *openai.Error
	if errors.As(err, &oe) {
		return oe.StatusCode, true
	}
	var ae *anthropic.Error
	if errors.As(err, &ae) {
		return ae.StatusCode, true
	}
	return 0, false
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrProviderUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrNotConfigured):
		return "NOT_CONFIGURED"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
