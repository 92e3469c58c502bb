package contract

import (
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/repository"
)

const (
	DefaultNotificationLimit = 20
	MaxNotificationLimit     = 100
)

type NotificationView struct {
	ID                string     `json:"id"`
	DealID            *string    `json:"dealId"`
	DealName          string     `json:"dealName"`
	Summary           string     `json:"summary"`
	RecommendedAction string     `json:"recommendedAction"`
	Priority          string     `json:"priority"`
	Status            string     `json:"status"`
	Score             int        `json:"score"`
	SignalType        string     `json:"signalType"`
	HappenedAt        time.Time  `json:"happenedAt"`
	AcknowledgedAt    *time.Time `json:"acknowledgedAt"`
	AcknowledgedBy    string     `json:"acknowledgedBy"`
}

func NewNotificationView(row repository.NotificationRow) NotificationView {
	n := row.Notification
	return NotificationView{
		ID:                n.ID,
		DealID:            n.DealID,
		DealName:          row.DealName,
		Summary:           n.Summary,
		RecommendedAction: n.RecommendedAction,
		Priority:          string(n.Priority),
		Status:            string(n.Status),
		Score:             row.Score,
		SignalType:        string(row.SignalType),
		HappenedAt:        row.HappenedAt,
		AcknowledgedAt:    n.AcknowledgedAt,
		AcknowledgedBy:    n.AcknowledgedBy,
	}
}

type AlertView struct {
	SignalID   string    `json:"signalId"`
	AccountID  string    `json:"accountId"`
	Type       string    `json:"type"`
	Summary    string    `json:"summary"`
	Score      int       `json:"score"`
	Priority   string    `json:"priority"`
	HappenedAt time.Time `json:"happenedAt"`
}

type PipelineView struct {
	OpenDeals      int            `json:"openDeals"`
	TotalAmount    int64          `json:"totalAmount"`
	WeightedAmount float64        `json:"weightedAmount"`
	ByStage        map[string]int `json:"byStage"`
}

func NewPipelineView(s domain.PipelineSummary) PipelineView {
	by := make(map[string]int, len(s.ByStage))
	for stage, n := range s.ByStage {
		by[string(stage)] = n
	}
	return PipelineView{
		OpenDeals:      s.OpenDeals,
		TotalAmount:    s.TotalAmount,
		WeightedAmount: s.WeightedAmount,
		ByStage:        by,
	}
}

type ApprovalView struct {
	ID              string     `json:"id"`
	DealID          string     `json:"dealId"`
	Channel         string     `json:"channel"`
	Subject         string     `json:"subject"`
	Body            string     `json:"body"`
	Status          string     `json:"status"`
	RequestedBy     string     `json:"requestedBy"`
	ReviewedBy      string     `json:"reviewedBy,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func NewApprovalView(a *domain.OutboundApproval) ApprovalView {
	return ApprovalView{
		ID:              a.ID,
		DealID:          a.DealID,
		Channel:         string(a.Channel),
		Subject:         a.Subject,
		Body:            a.Body,
		Status:          string(a.Status),
		RequestedBy:     a.RequestedBy,
		ReviewedBy:      a.ReviewedBy,
		RejectionReason: a.RejectionReason,
		ReviewedAt:      a.ReviewedAt,
		CreatedAt:       a.CreatedAt,
	}
}

type ReviewApprovalRequest struct {
	ApprovalID string
	Decision   domain.ApprovalStatus
	Reason     string
	Actor      domain.Actor
}
