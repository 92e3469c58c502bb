package service

import (
	"context"
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/repository"
)

type taskService struct {
	deals    repository.DealRepo
	tasks    repository.TaskRepo
	audit    repository.AuditRepo
	now      Clock
	observer UseCaseObserver
}

func NewTaskService(deals repository.DealRepo, tasks repository.TaskRepo, audit repository.AuditRepo, clock Clock, observers ...UseCaseObserver) TaskService {
	return &taskService{
		deals:    deals,
		tasks:    tasks,
		audit:    audit,
		now:      clockOrSystem(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) ListByDeal(ctx context.Context, actor domain.Actor, dealID string) (out []*domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"deal_id": dealID}
	defer observe(ctx, s.observer, "list-deal-tasks", startedAt, fields, &err)

	if err = actor.Validate(); err != nil {
		return nil, err
	}
	if _, err = s.deals.GetByID(ctx, actor.WorkspaceID, dealID); err != nil {
		return nil, err
	}
	out, err = s.tasks.ListByDeal(ctx, actor.WorkspaceID, dealID)
	if err != nil {
		return nil, err
	}
	fields["count"] = len(out)
	return out, nil
}

func (s *taskService) UpdateStatus(ctx context.Context, actor domain.Actor, taskID string, status domain.TaskStatus) (t *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"task_id": taskID, "status": string(status)}
	defer observe(ctx, s.observer, "update-task-status", startedAt, fields, &err)

	if err = actor.Validate(); err != nil {
		return nil, err
	}
	t, err = s.tasks.GetByID(ctx, actor.WorkspaceID, taskID)
	if err != nil {
		return nil, err
	}

	from := t.Status
	now := s.now()
	if err = t.TransitionTo(status, now); err != nil {
		return nil, err
	}
	if from == t.Status {
		return t, nil
	}
	if err = s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}

	err = s.audit.Append(ctx, &domain.AuditEvent{
		WorkspaceID: actor.WorkspaceID,
		ActorID:     actor.UserID,
		Action:      domain.AuditTaskStatusChanged,
		EntityType:  "task",
		EntityID:    t.ID,
		Metadata:    map[string]any{"from": string(from), "to": string(t.Status)},
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}
