package domain

import (
	"fmt"
	"strings"
	"time"
)

// OutboundApproval is a drafted outbound message that must be reviewed
// before it is sent. Approved and rejected are terminal.
type OutboundApproval struct {
	ID              string
	WorkspaceID     string
	DealID          string
	Channel         Channel
	Subject         string
	Body            string
	Status          ApprovalStatus
	RequestedBy     string
	ReviewedBy      string
	RejectionReason string
	ReviewedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Review applies an approve or reject decision to a pending approval.
func (a *OutboundApproval) Review(decision ApprovalStatus, reason, reviewer string, now time.Time) error {
	if a.Status != ApprovalPending {
		return fmt.Errorf("%w: approval %s is already %s", ErrConflict, a.ID, a.Status)
	}
	switch decision {
	case ApprovalApproved:
	case ApprovalRejected:
		if strings.TrimSpace(reason) == "" {
			return fmt.Errorf("%w: a rejection reason is required", ErrValidation)
		}
		a.RejectionReason = strings.TrimSpace(reason)
	default:
		return fmt.Errorf("%w: decision must be approved or rejected", ErrValidation)
	}
	a.Status = decision
	a.ReviewedBy = reviewer
	a.ReviewedAt = &now
	a.UpdatedAt = now
	return nil
}
