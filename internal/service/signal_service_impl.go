package service

import (
	"context"
	"time"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/repository"
	"github.com/alexanderramin/dealdesk/internal/scoring"
)

// alertWindow bounds how many recent signals are ranked for alerts.
const alertWindow = 200

type signalService struct {
	signals  repository.SignalRepo
	observer UseCaseObserver
}

func NewSignalService(signals repository.SignalRepo, observers ...UseCaseObserver) SignalService {
	return &signalService{signals: signals, observer: useCaseObserverOrNoop(observers)}
}

func (s *signalService) Alerts(ctx context.Context, actor domain.Actor, minPriority domain.Priority, limit int) (views []contract.AlertView, err error) {
	startedAt := time.Now()
	fields := map[string]any{"min_priority": string(minPriority), "limit": limit}
	defer observe(ctx, s.observer, "signal-alerts", startedAt, fields, &err)

	if err = actor.Validate(); err != nil {
		return nil, err
	}
	if minPriority == "" {
		minPriority = domain.PriorityLow
	}
	if minPriority, err = domain.PriorityCodec.Parse(string(minPriority)); err != nil {
		return nil, err
	}
	limit = ClampLimit(limit)

	signals, err := s.signals.ListRecent(ctx, actor.WorkspaceID, alertWindow)
	if err != nil {
		return nil, err
	}
	alerts := scoring.RankAlerts(signals, minPriority)
	if len(alerts) > limit {
		alerts = alerts[:limit]
	}
	fields["alerts"] = len(alerts)

	views = make([]contract.AlertView, 0, len(alerts))
	for _, a := range alerts {
		views = append(views, contract.AlertView{
			SignalID:   a.Signal.ID,
			AccountID:  a.Signal.AccountID,
			Type:       string(a.Signal.Type),
			Summary:    a.Signal.Summary,
			Score:      a.Signal.Score,
			Priority:   string(a.Priority),
			HappenedAt: a.Signal.HappenedAt,
		})
	}
	return views, nil
}
