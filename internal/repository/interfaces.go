package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
)

// NotificationRow is a notification joined with the signal it was derived
// from and the name of its linked deal, for inbox listings.
type NotificationRow struct {
	Notification domain.SignalNotification
	DealName     string
	SignalType   domain.SignalType
	Score        int
	HappenedAt   time.Time
}

// Every read is scoped by workspaceID; a row in another workspace is
// reported as ErrNotFound.

type AccountRepo interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Account, error)
	List(ctx context.Context, workspaceID string) ([]*domain.Account, error)
}

type DealRepo interface {
	Create(ctx context.Context, d *domain.Deal) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Deal, error)
	List(ctx context.Context, workspaceID string) ([]*domain.Deal, error)
	// LatestOpenForAccount returns the most recently updated non-closed deal
	// on the account, or ErrNotFound.
	LatestOpenForAccount(ctx context.Context, workspaceID, accountID string) (*domain.Deal, error)
	Update(ctx context.Context, d *domain.Deal) error
}

type SignalRepo interface {
	Create(ctx context.Context, s *domain.Signal) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Signal, error)
	ListRecent(ctx context.Context, workspaceID string, limit int) ([]*domain.Signal, error)
	ListByAccount(ctx context.Context, workspaceID, accountID string, limit int) ([]*domain.Signal, error)
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	ListByDeal(ctx context.Context, workspaceID, dealID string, limit int) ([]*domain.Activity, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	// CreateBatch inserts tasks in order. It is only atomic when the repo
	// is bound to a transaction.
	CreateBatch(ctx context.Context, tasks []*domain.Task) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Task, error)
	ListByDeal(ctx context.Context, workspaceID, dealID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
}

type ApprovalRepo interface {
	Create(ctx context.Context, a *domain.OutboundApproval) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.OutboundApproval, error)
	ListByDeal(ctx context.Context, workspaceID, dealID string) ([]*domain.OutboundApproval, error)
	ListByStatus(ctx context.Context, workspaceID string, status domain.ApprovalStatus, limit int) ([]*domain.OutboundApproval, error)
	// SaveReview writes the review fields only if the row is still pending.
	SaveReview(ctx context.Context, a *domain.OutboundApproval) error
}

type NotificationRepo interface {
	// Upsert inserts or refreshes the notification keyed by
	// (workspace, signal). Status and acknowledgement fields of an existing
	// row are preserved.
	Upsert(ctx context.Context, n *domain.SignalNotification) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.SignalNotification, error)
	ListRecent(ctx context.Context, workspaceID string, limit int) ([]NotificationRow, error)
	// Acknowledge stamps an unread notification. It reports false when the
	// row was already acknowledged, leaving the stored stamp untouched.
	Acknowledge(ctx context.Context, n *domain.SignalNotification) (bool, error)
}

type MeetingBriefRepo interface {
	Upsert(ctx context.Context, b *domain.MeetingBrief) error
	GetByDeal(ctx context.Context, workspaceID, dealID string) (*domain.MeetingBrief, error)
}

type FollowUpDraftRepo interface {
	Upsert(ctx context.Context, d *domain.FollowUpDraft) error
	GetByDeal(ctx context.Context, workspaceID, dealID string) (*domain.FollowUpDraft, error)
}

type AuditRepo interface {
	Append(ctx context.Context, e *domain.AuditEvent) error
	ListByEntity(ctx context.Context, workspaceID, entityType, entityID string) ([]*domain.AuditEvent, error)
}
