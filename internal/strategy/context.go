package strategy

import (
	"context"
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/notes"
	"github.com/alexanderramin/dealdesk/internal/repository"
	"github.com/alexanderramin/dealdesk/internal/scoring"
)

// DealContext is the full input to play generation. Now is part of the
// input so generation stays reproducible.
type DealContext struct {
	Deal       domain.Deal
	Signals    []*domain.Signal
	Tasks      []*domain.Task
	Approvals  []*domain.OutboundApproval
	Activities []*domain.Activity
	Now        time.Time
}

var (
	securityRiskKeywords = []string{"security", "legal", "compliance", "procurement"}
	singleThreadKeywords = []string{
		"champion", "single contact", "single-threaded", "single threaded", "only contact", "one contact",
	}
)

// facts are the derived quantities the rules branch on.
type facts struct {
	signalStrength   float64
	pendingApprovals int
	overdueTasks     int
	securityRisk     bool
	singleThreadRisk bool
}

func deriveFacts(dc DealContext, t Tuning) facts {
	f := facts{signalStrength: t.DefaultSignalStrength}
	if len(dc.Signals) > 0 {
		f.signalStrength = scoring.SignalStrength(dc.Signals)
	}

	for _, a := range dc.Approvals {
		if a.Status == domain.ApprovalPending {
			f.pendingApprovals++
		}
	}
	for _, task := range dc.Tasks {
		if task.IsOverdueHighPriority(dc.Now) {
			f.overdueTasks++
		}
	}

	f.securityRisk = notes.ContainsAny(dc.Deal.RiskSummary, securityRiskKeywords...)
	for _, a := range dc.Activities {
		if notes.ContainsAny(a.Summary, securityRiskKeywords...) {
			f.securityRisk = true
		}
		if notes.ContainsAny(a.Summary, singleThreadKeywords...) {
			f.singleThreadRisk = true
		}
	}
	return f
}

const (
	contextSignalLimit   = 20
	contextActivityLimit = 20
)

// ContextLoader assembles a DealContext from persisted state.
type ContextLoader struct {
	Deals      repository.DealRepo
	Signals    repository.SignalRepo
	Tasks      repository.TaskRepo
	Approvals  repository.ApprovalRepo
	Activities repository.ActivityRepo
}

// Load reads the deal and its surrounding state. A deal outside the
// workspace is reported as domain.ErrNotFound.
func (l *ContextLoader) Load(ctx context.Context, workspaceID, dealID string, now time.Time) (DealContext, error) {
	deal, err := l.Deals.GetByID(ctx, workspaceID, dealID)
	if err != nil {
		return DealContext{}, err
	}
	signals, err := l.Signals.ListByAccount(ctx, workspaceID, deal.AccountID, contextSignalLimit)
	if err != nil {
		return DealContext{}, err
	}
	tasks, err := l.Tasks.ListByDeal(ctx, workspaceID, dealID)
	if err != nil {
		return DealContext{}, err
	}
	approvals, err := l.Approvals.ListByDeal(ctx, workspaceID, dealID)
	if err != nil {
		return DealContext{}, err
	}
	activities, err := l.Activities.ListByDeal(ctx, workspaceID, dealID, contextActivityLimit)
	if err != nil {
		return DealContext{}, err
	}

	return DealContext{
		Deal:       *deal,
		Signals:    signals,
		Tasks:      tasks,
		Approvals:  approvals,
		Activities: activities,
		Now:        now,
	}, nil
}
