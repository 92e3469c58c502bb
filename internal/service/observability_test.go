package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_Levels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"success", nil, "level=INFO"},
		{"validation", fmt.Errorf("notes: %w", domain.ErrValidation), "level=WARN"},
		{"not found", domain.ErrNotFound, "level=WARN"},
		{"conflict", domain.ErrConflict, "level=WARN"},
		{"store failure", errors.New("disk I/O error"), "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

			obs.ObserveUseCase(context.Background(), UseCaseEvent{
				Name:     "process-meeting-notes",
				Duration: 12 * time.Millisecond,
				Success:  tt.err == nil,
				Err:      tt.err,
				Fields:   map[string]any{"deal_id": "d-1"},
			})

			out := buf.String()
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, "use_case=process-meeting-notes")
			assert.Contains(t, out, "deal_id=d-1")
		})
	}
}

func TestNewLogUseCaseObserver_NilLoggerIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestObserve_ReadsNamedError(t *testing.T) {
	var got UseCaseEvent
	obs := observerFunc(func(_ context.Context, e UseCaseEvent) { got = e })

	run := func() (err error) {
		defer observe(context.Background(), obs, "ack", time.Now(), nil, &err)
		return domain.ErrNotFound
	}
	_ = run()

	assert.Equal(t, "ack", got.Name)
	assert.False(t, got.Success)
	assert.ErrorIs(t, got.Err, domain.ErrNotFound)
}

type observerFunc func(context.Context, UseCaseEvent)

func (f observerFunc) ObserveUseCase(ctx context.Context, e UseCaseEvent) { f(ctx, e) }
