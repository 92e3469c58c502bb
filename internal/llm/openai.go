package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAIBackend struct {
	client openai.Client
}

// NewOpenAIClient creates an LLMClient backed by the OpenAI chat completions
// API. Endpoint, when set, overrides the base URL for compatible gateways.
func NewOpenAIClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w: API key is required", ErrNotConfigured)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}

	return newRetryingClient(cfg, &openAIBackend{client: openai.NewClient(opts...)}, observer), nil
}

func (b *openAIBackend) complete(ctx context.Context, model string, c completion) (string, string, error) {
	params := openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.system),
			openai.UserMessage(c.user),
		},
		Temperature: openai.Float(c.temperature),
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.maxTokens))
	}
	if c.schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        c.schemaName,
					Description: openai.String("Structured response schema"),
					Schema:      c.schema,
					Strict:      openai.Bool(true),
				},
			},
		}
	}

	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("openai chat: no choices in response")
	}
	return resp.Choices[0].Message.Content, resp.Model, nil
}

func (b *openAIBackend) ping(ctx context.Context) bool {
	_, err := b.client.Models.List(ctx)
	return err == nil
}
