package contract

import (
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
)

type DealView struct {
	ID          string     `json:"id"`
	AccountID   string     `json:"accountId"`
	Name        string     `json:"name"`
	Stage       string     `json:"stage"`
	Amount      int64      `json:"amount"`
	Confidence  float64    `json:"confidence"`
	CloseDate   *time.Time `json:"closeDate,omitempty"`
	RiskSummary string     `json:"riskSummary,omitempty"`
}

func NewDealViews(deals []*domain.Deal) []DealView {
	out := make([]DealView, 0, len(deals))
	for _, d := range deals {
		out = append(out, DealView{
			ID:          d.ID,
			AccountID:   d.AccountID,
			Name:        d.Name,
			Stage:       string(d.Stage),
			Amount:      d.Amount,
			Confidence:  d.Confidence,
			CloseDate:   d.CloseDate,
			RiskSummary: d.RiskSummary,
		})
	}
	return out
}

// AcknowledgementView is the response to acknowledging a notification.
type AcknowledgementView struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt"`
	AcknowledgedBy string     `json:"acknowledgedBy"`
}

func NewAcknowledgementView(n *domain.SignalNotification) AcknowledgementView {
	return AcknowledgementView{
		ID:             n.ID,
		Status:         string(n.Status),
		AcknowledgedAt: n.AcknowledgedAt,
		AcknowledgedBy: n.AcknowledgedBy,
	}
}
