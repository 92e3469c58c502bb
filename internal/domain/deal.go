package domain

import "time"

type Account struct {
	ID          string
	WorkspaceID string
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Deal struct {
	ID          string
	WorkspaceID string
	AccountID   string
	Name        string
	Stage       Stage
	Amount      int64
	Confidence  float64
	CloseDate   *time.Time
	RiskSummary string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOpen reports whether the deal still counts toward the open pipeline.
func (d *Deal) IsOpen() bool {
	return !d.Stage.IsClosed()
}

// WeightedAmount is the amount discounted by the deal's confidence.
func (d *Deal) WeightedAmount() float64 {
	return float64(d.Amount) * d.Confidence
}

// PipelineSummary aggregates open deals only.
type PipelineSummary struct {
	OpenDeals      int
	TotalAmount    int64
	WeightedAmount float64
	ByStage        map[Stage]int
}

// SummarizePipeline folds deals into a PipelineSummary, skipping closed stages.
func SummarizePipeline(deals []*Deal) PipelineSummary {
	s := PipelineSummary{ByStage: make(map[Stage]int)}
	for _, d := range deals {
		if !d.IsOpen() {
			continue
		}
		s.OpenDeals++
		s.TotalAmount += d.Amount
		s.WeightedAmount += d.WeightedAmount()
		s.ByStage[d.Stage]++
	}
	return s
}
