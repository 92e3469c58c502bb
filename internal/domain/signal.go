package domain

import "time"

// Signal is an immutable external buying indicator attached to an account.
type Signal struct {
	ID          string
	WorkspaceID string
	AccountID   string
	Type        SignalType
	Summary     string
	HappenedAt  time.Time
	Score       int
}

// SignalNotification is the per-workspace inbox entry derived from a signal.
type SignalNotification struct {
	ID                string
	WorkspaceID       string
	SignalID          string
	DealID            *string
	Priority          Priority
	Summary           string
	RecommendedAction string
	Status            NotificationStatus
	AcknowledgedBy    string
	AcknowledgedAt    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Acknowledge marks the notification read. A second call keeps the first stamp.
func (n *SignalNotification) Acknowledge(by string, now time.Time) bool {
	if n.Status == NotificationAcknowledged {
		return false
	}
	n.Status = NotificationAcknowledged
	n.AcknowledgedBy = by
	n.AcknowledgedAt = &now
	n.UpdatedAt = now
	return true
}
