package llm

import (
	"context"
	"log/slog"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes LLM call events to a structured logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	attrs := []any{
		"task", event.Task,
		"provider", event.Provider,
		"model", event.Model,
		"latency_ms", event.LatencyMs,
		"success", event.Success,
	}
	if !event.Success {
		o.logger.Log(context.Background(), slog.LevelWarn, "llm_call", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Info("llm_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}

// MultiObserver fans each event out to every non-nil observer.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event LLMCallEvent) {
	for _, o := range m {
		if o != nil {
			o.OnCallComplete(event)
		}
	}
}
