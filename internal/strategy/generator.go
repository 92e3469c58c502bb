package strategy

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/llm"
)

// Generator produces the ranked plays for a deal.
type Generator interface {
	Generate(ctx context.Context, dc DealContext) ([]domain.StrategyPlay, error)
}

// RuleBasedGenerator is the deterministic generator.
type RuleBasedGenerator struct {
	Tuning Tuning
}

func NewRuleBasedGenerator() *RuleBasedGenerator {
	return &RuleBasedGenerator{Tuning: DefaultTuning()}
}

func (g *RuleBasedGenerator) Generate(_ context.Context, dc DealContext) ([]domain.StrategyPlay, error) {
	return BuildRuleBasedPlays(dc, g.Tuning), nil
}

// FallbackRecorder is told each time the LLM path falls back, with a short
// reason code.
type FallbackRecorder interface {
	RecordFallback(reason string)
}

type noopFallbackRecorder struct{}

func (noopFallbackRecorder) RecordFallback(string) {}

// LLMGenerator asks a model for plays and falls back to another Generator
// on any failure. It never returns the model's error.
type LLMGenerator struct {
	client   llm.LLMClient
	fallback Generator
	recorder FallbackRecorder
	tuning   Tuning
}

func NewLLMGenerator(client llm.LLMClient, fallback Generator, recorder FallbackRecorder) *LLMGenerator {
	if recorder == nil {
		recorder = noopFallbackRecorder{}
	}
	return &LLMGenerator{client: client, fallback: fallback, recorder: recorder, tuning: DefaultTuning()}
}

type aiPlay struct {
	Title          string   `json:"title" jsonschema:"description=Short name of the play"`
	Thesis         string   `json:"thesis"`
	Trigger        string   `json:"trigger"`
	Steps          []string `json:"steps"`
	ExpectedImpact string   `json:"expectedImpact"`
	Confidence     float64  `json:"confidence"`
}

type aiPlays struct {
	Plays []aiPlay `json:"plays"`
}

func validateAIPlays(p aiPlays) error {
	if len(p.Plays) < 2 || len(p.Plays) > 4 {
		return fmt.Errorf("expected 2-4 plays, got %d", len(p.Plays))
	}
	for i, play := range p.Plays {
		if strings.TrimSpace(play.Title) == "" {
			return fmt.Errorf("play %d has no title", i+1)
		}
		if len(play.Steps) == 0 {
			return fmt.Errorf("play %d has no steps", i+1)
		}
	}
	return nil
}

func (g *LLMGenerator) Generate(ctx context.Context, dc DealContext) ([]domain.StrategyPlay, error) {
	if g.client == nil {
		g.recorder.RecordFallback("not_configured")
		return g.fallback.Generate(ctx, dc)
	}

	f := deriveFacts(dc, g.tuning)
	out, err := llm.GenerateJSON[aiPlays](ctx, g.client, llm.GenerateRequest{
		Task:         llm.TaskStrategy,
		SystemPrompt: strategySystemPrompt,
		UserPrompt:   buildStrategyUserPrompt(dc, f),
		SchemaName:   "strategy_plays",
	}, validateAIPlays)
	if err != nil {
		g.recorder.RecordFallback(fallbackReason(err))
		return g.fallback.Generate(ctx, dc)
	}

	plays := make([]domain.StrategyPlay, 0, len(out.Plays))
	seen := make(map[string]int, len(out.Plays))
	for _, p := range out.Plays {
		id := "ai-" + slug(p.Title)
		seen[id]++
		if n := seen[id]; n > 1 {
			id += "-" + strconv.Itoa(n)
		}
		plays = append(plays, domain.StrategyPlay{
			ID:             id,
			Title:          strings.TrimSpace(p.Title),
			Thesis:         p.Thesis,
			Trigger:        p.Trigger,
			Steps:          p.Steps,
			ExpectedImpact: p.ExpectedImpact,
			Confidence:     g.tuning.clamp(p.Confidence),
		})
	}
	return plays, nil
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, llm.ErrTimeout):
		return "timeout"
	case errors.Is(err, llm.ErrProviderUnavailable):
		return "unavailable"
	case errors.Is(err, llm.ErrInvalidOutput):
		return "invalid_output"
	default:
		return "provider_error"
	}
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "play"
	}
	return out
}
