package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskStrategy TaskType = "strategy"
)

// Provider selects the model backend.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default, so strategy plays are rule-based.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		TimeoutMs:  10000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskStrategy: {Temperature: 0.2, MaxTokens: 1500, TimeoutMs: 15000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("DEALDESK_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DEALDESK_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DEALDESK_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(v))
	}
	if v := os.Getenv("DEALDESK_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("DEALDESK_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	cfg.APIKey = firstEnv("DEALDESK_LLM_API_KEY", providerKeyEnv(cfg.Provider))
	if v := os.Getenv("DEALDESK_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("DEALDESK_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskStrategy, "DEALDESK_LLM_STRATEGY_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// ModelOrDefault returns the configured model or the provider's default.
func (c LLMConfig) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	default:
		return "llama3.2"
	}
}

func providerKeyEnv(p Provider) string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if n == "" {
			continue
		}
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
