package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicDefaultMaxTokens = 1024

type anthropicBackend struct {
	client anthropic.Client
}

// NewAnthropicClient creates an LLMClient backed by the Anthropic Messages API.
func NewAnthropicClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: %w: API key is required", ErrNotConfigured)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}

	return newRetryingClient(cfg, &anthropicBackend{client: anthropic.NewClient(opts...)}, observer), nil
}

func (b *anthropicBackend) complete(ctx context.Context, model string, c completion) (string, string, error) {
	maxTokens := c.maxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(c.user)),
		},
		Temperature: anthropic.Float(c.temperature),
	}
	if c.system != "" {
		params.System = []anthropic.TextBlockParam{{Text: c.system}}
	}

	resp, err := b.client.Messages.New(ctx, params)
	if err != nil {
		return "", "", fmt.Errorf("anthropic messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), string(resp.Model), nil
}

func (b *anthropicBackend) ping(ctx context.Context) bool {
	_, err := b.client.Models.List(ctx, anthropic.ModelListParams{})
	return err == nil
}
