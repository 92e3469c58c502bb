package llm

import "fmt"

// NewClient builds the LLMClient for cfg.Provider.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllamaClient(cfg, observer), nil
	case ProviderOpenAI:
		return NewOpenAIClient(cfg, observer)
	case ProviderAnthropic:
		return NewAnthropicClient(cfg, observer)
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", ErrNotConfigured, cfg.Provider)
	}
}
