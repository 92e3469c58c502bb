package domain

import "time"

// MeetingBrief holds the latest derived meeting analysis for a deal.
type MeetingBrief struct {
	ID          string
	WorkspaceID string
	DealID      string
	Summary     string
	PrimaryGoal string
	Objections  []string
	ProofPoints []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FollowUpDraft holds the latest composed follow-up message for a deal.
type FollowUpDraft struct {
	ID          string
	WorkspaceID string
	DealID      string
	Channel     Channel
	Subject     string
	Body        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
