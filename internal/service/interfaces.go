package service

import (
	"context"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
)

// Every call is scoped to actor.WorkspaceID; entities in other workspaces
// are reported as domain.ErrNotFound.

type MeetingNotesService interface {
	// Process records the meeting as an activity and derives tasks, a
	// brief, and a follow-up draft, all in one transaction.
	Process(ctx context.Context, req contract.ProcessNotesRequest) (*contract.ProcessNotesResponse, error)
	// RequestFollowUpApproval queues the deal's latest follow-up draft for review.
	RequestFollowUpApproval(ctx context.Context, actor domain.Actor, dealID string) (*domain.OutboundApproval, error)
}

type StrategyService interface {
	ListPlays(ctx context.Context, actor domain.Actor, dealID string) (*contract.PlaysResponse, error)
	// ExecutePlay never fails with a Go error; failures are in the result.
	ExecutePlay(ctx context.Context, actor domain.Actor, playID, dealID string) contract.ExecutePlayResult
}

type NotificationService interface {
	List(ctx context.Context, actor domain.Actor, limit int) ([]contract.NotificationView, error)
	Acknowledge(ctx context.Context, actor domain.Actor, id string) (*domain.SignalNotification, error)
}

type SignalService interface {
	Alerts(ctx context.Context, actor domain.Actor, minPriority domain.Priority, limit int) ([]contract.AlertView, error)
}

type ApprovalService interface {
	ListPending(ctx context.Context, actor domain.Actor, limit int) ([]*domain.OutboundApproval, error)
	Review(ctx context.Context, req contract.ReviewApprovalRequest) (*domain.OutboundApproval, error)
}

type TaskService interface {
	ListByDeal(ctx context.Context, actor domain.Actor, dealID string) ([]*domain.Task, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, taskID string, status domain.TaskStatus) (*domain.Task, error)
}

type DealService interface {
	List(ctx context.Context, actor domain.Actor) ([]*domain.Deal, error)
	Pipeline(ctx context.Context, actor domain.Actor) (contract.PipelineView, error)
}

type SeedService interface {
	// Seed writes a demo account, deal, signals, and activity history.
	Seed(ctx context.Context, actor domain.Actor) (*SeedResult, error)
}
