package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
)

// UseCaseEvent describes one finished service call.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes service use-case events to logger.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]slog.Attr, 0, 4+len(event.Fields))
	attrs = append(attrs,
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success),
	)
	for k, v := range event.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, levelFor(event.Err), "service_use_case", attrs...)
}

// levelFor logs caller mistakes (bad input, unknown ids, stale state) at
// warn and everything else that failed at error.
func levelFor(err error) slog.Level {
	switch {
	case err == nil:
		return slog.LevelInfo
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict):
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// observe emits one event for a finished use case. Call it deferred with a
// pointer to the named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
