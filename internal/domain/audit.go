package domain

import "time"

const (
	AuditMeetingNotesProcessed    = "meeting_notes.processed"
	AuditStrategyPlayExecuted     = "strategy_play.executed"
	AuditApprovalReviewed         = "approval.reviewed"
	AuditApprovalRequested        = "approval.requested"
	AuditNotificationAcknowledged = "notification.acknowledged"
	AuditTaskStatusChanged        = "task.status_changed"
)

type AuditEvent struct {
	ID          string
	WorkspaceID string
	ActorID     string
	Action      string
	EntityType  string
	EntityID    string
	Metadata    map[string]any
	CreatedAt   time.Time
}
