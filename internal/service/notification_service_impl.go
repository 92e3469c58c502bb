package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/repository"
	"github.com/alexanderramin/dealdesk/internal/scoring"
	"github.com/google/uuid"
)

// derivationWindow is how many recent signals are re-derived on each list.
const derivationWindow = 50

var recommendedActions = map[domain.SignalType]string{
	domain.SignalHiring:     "Run a champion check-in on new hires and org changes",
	domain.SignalFunding:    "Escalate the proposal while new budget is being allocated",
	domain.SignalTooling:    "Send migration proof points for their tooling change",
	domain.SignalEngagement: "Launch a high-touch sequence while engagement is warm",
}

// RecommendedAction returns the next step suggested for a signal type.
func RecommendedAction(t domain.SignalType) string {
	if a, ok := recommendedActions[t]; ok {
		return a
	}
	return recommendedActions[domain.SignalEngagement]
}

type NotificationDeps struct {
	Signals       repository.SignalRepo
	Deals         repository.DealRepo
	Notifications repository.NotificationRepo
	Audit         repository.AuditRepo
	Recorder      Recorder
	Clock         Clock
}

type notificationService struct {
	deps     NotificationDeps
	now      Clock
	recorder Recorder
	observer UseCaseObserver
}

func NewNotificationService(deps NotificationDeps, observers ...UseCaseObserver) NotificationService {
	return &notificationService{
		deps:     deps,
		now:      clockOrSystem(deps.Clock),
		recorder: recorderOrNoop(deps.Recorder),
		observer: useCaseObserverOrNoop(observers),
	}
}

// ClampLimit bounds a caller-supplied page size to [1, MaxNotificationLimit].
// Zero selects the default page size.
func ClampLimit(limit int) int {
	if limit == 0 {
		return contract.DefaultNotificationLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > contract.MaxNotificationLimit {
		return contract.MaxNotificationLimit
	}
	return limit
}

// List re-derives notifications from the most recent signals, then returns
// the newest ones. Derivation is idempotent per (workspace, signal).
func (s *notificationService) List(ctx context.Context, actor domain.Actor, limit int) (views []contract.NotificationView, err error) {
	startedAt := time.Now()
	fields := map[string]any{"limit": limit}
	defer observe(ctx, s.observer, "list-notifications", startedAt, fields, &err)

	if err = actor.Validate(); err != nil {
		return nil, err
	}
	limit = ClampLimit(limit)
	ws := actor.WorkspaceID

	signals, err := s.deps.Signals.ListRecent(ctx, ws, derivationWindow)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dealByAccount := make(map[string]*string)
	for _, sig := range signals {
		dealID, ok := dealByAccount[sig.AccountID]
		if !ok {
			dealID, err = s.latestOpenDeal(ctx, ws, sig.AccountID)
			if err != nil {
				return nil, err
			}
			dealByAccount[sig.AccountID] = dealID
		}

		n := &domain.SignalNotification{
			ID:                uuid.New().String(),
			WorkspaceID:       ws,
			SignalID:          sig.ID,
			DealID:            dealID,
			Priority:          scoring.PriorityFromScore(sig.Score),
			Summary:           sig.Summary,
			RecommendedAction: RecommendedAction(sig.Type),
			Status:            domain.NotificationUnread,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err = s.deps.Notifications.Upsert(ctx, n); err != nil {
			return nil, err
		}
		s.recorder.RecordNotificationDerived(string(n.Priority))
	}
	fields["derived"] = len(signals)

	rows, err := s.deps.Notifications.ListRecent(ctx, ws, limit)
	if err != nil {
		return nil, err
	}
	views = make([]contract.NotificationView, 0, len(rows))
	for _, row := range rows {
		views = append(views, contract.NewNotificationView(row))
	}
	return views, nil
}

func (s *notificationService) latestOpenDeal(ctx context.Context, ws, accountID string) (*string, error) {
	deal, err := s.deps.Deals.LatestOpenForAccount(ctx, ws, accountID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deal.ID, nil
}

func (s *notificationService) Acknowledge(ctx context.Context, actor domain.Actor, id string) (n *domain.SignalNotification, err error) {
	startedAt := time.Now()
	fields := map[string]any{"notification_id": id}
	defer observe(ctx, s.observer, "acknowledge-notification", startedAt, fields, &err)

	if err = actor.Validate(); err != nil {
		return nil, err
	}
	n, err = s.deps.Notifications.GetByID(ctx, actor.WorkspaceID, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	changed := n.Acknowledge(actor.UserID, now)
	fields["changed"] = changed
	if !changed {
		return n, nil
	}
	applied, err := s.deps.Notifications.Acknowledge(ctx, n)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Lost a race with another acknowledgement; return the stored stamp.
		fields["changed"] = false
		return s.deps.Notifications.GetByID(ctx, actor.WorkspaceID, id)
	}

	err = s.deps.Audit.Append(ctx, &domain.AuditEvent{
		WorkspaceID: actor.WorkspaceID,
		ActorID:     actor.UserID,
		Action:      domain.AuditNotificationAcknowledged,
		EntityType:  "notification",
		EntityID:    n.ID,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}
