package strategy

import (
	"fmt"

	"github.com/alexanderramin/dealdesk/internal/domain"
)

const (
	PlayMutualCommitment = "mutual-commitment-map"
	PlayRiskFrontLoad    = "risk-front-load"
	PlayDecisionSurface  = "decision-surface-expansion"
	PlayApprovalSprint   = "approval-throughput-sprint"
)

// BuildRuleBasedPlays derives plays from deal state. Output is a pure
// function of its inputs: identical contexts yield identical plays, which
// the executor relies on to resolve a play by id.
func BuildRuleBasedPlays(dc DealContext, t Tuning) []domain.StrategyPlay {
	f := deriveFacts(dc, t)
	s := f.signalStrength

	plays := make([]domain.StrategyPlay, 0, 4)
	plays = append(plays, mutualCommitmentPlay(dc, f, t.clamp(dc.Deal.Confidence+s/t.CommitmentDivisor)))

	if f.securityRisk {
		plays = append(plays, domain.StrategyPlay{
			ID:      PlayRiskFrontLoad,
			Title:   "Risk Front-Load",
			Thesis:  "Surfacing security, legal, and procurement requirements early keeps late-stage reviews from stalling the close.",
			Trigger: "Risk summary or recent activity mentions security, legal, compliance, or procurement review.",
			Steps: []string{
				"Share security, legal, and compliance packet today",
				"Schedule a review session with procurement and legal this week",
				"Confirm redline owners and turnaround targets",
			},
			ExpectedImpact: "Shortens review cycles and removes surprise blockers before contract stage.",
			Confidence:     t.clamp(t.RiskBase + s/t.RiskDivisor),
		})
	}

	trigger := "Broaden stakeholder coverage before the deal advances to commercial review."
	if f.singleThreadRisk {
		trigger = "Recent activity shows the deal depends on a single champion or contact."
	}
	plays = append(plays, domain.StrategyPlay{
		ID:      PlayDecisionSurface,
		Title:   "Decision Surface Expansion",
		Thesis:  "Deals with multiple engaged stakeholders close more reliably than single-threaded ones.",
		Trigger: trigger,
		Steps: []string{
			"Ask the champion to introduce two additional stakeholders this week",
			"Book discovery calls with finance and IT leads",
			"Share a tailored value summary with each new stakeholder",
		},
		ExpectedImpact: "Reduces single-thread risk and surfaces hidden approvers early.",
		Confidence:     t.clamp(t.SurfaceBase + s/t.SurfaceDivisor),
	})

	if f.pendingApprovals > 0 {
		plays = append(plays, domain.StrategyPlay{
			ID:      PlayApprovalSprint,
			Title:   "Approval Throughput Sprint",
			Thesis:  "Outbound messages waiting on review delay every downstream touchpoint.",
			Trigger: fmt.Sprintf("%d outbound approval(s) are pending review.", f.pendingApprovals),
			Steps: []string{
				"Review pending outbound approvals immediately",
				"Batch approve or reject drafts with clear reasons today",
				"Follow up on approved messages within the week",
			},
			ExpectedImpact: "Unblocks queued outreach and restores cadence with the buying team.",
			Confidence:     t.ApprovalSprint,
		})
	}

	if t.MaxPlays > 0 && len(plays) > t.MaxPlays {
		plays = plays[:t.MaxPlays]
	}
	return plays
}

func mutualCommitmentPlay(dc DealContext, f facts, confidence float64) domain.StrategyPlay {
	trigger := fmt.Sprintf("Deal is in %s and needs a shared plan to reach close.", dc.Deal.Stage)
	if f.overdueTasks > 0 {
		trigger = fmt.Sprintf("%d high-priority task(s) are overdue; milestones are slipping.", f.overdueTasks)
	}
	return domain.StrategyPlay{
		ID:      PlayMutualCommitment,
		Title:   "Mutual Commitment Map",
		Thesis:  "A written plan with owners and dates on both sides turns interest into a dated path to signature.",
		Trigger: trigger,
		Steps: []string{
			"Send one-page mutual action map with owners and dates within 24 hours",
			"Book a 20-minute checkpoint with the champion to confirm milestones",
			"Follow up weekly on slipped milestones and escalate blockers",
		},
		ExpectedImpact: "Improves forecast accuracy and pulls the close date forward.",
		Confidence:     confidence,
	}
}

// FindPlay returns the play with the given id.
func FindPlay(plays []domain.StrategyPlay, id string) (domain.StrategyPlay, bool) {
	for _, p := range plays {
		if p.ID == id {
			return p, true
		}
	}
	return domain.StrategyPlay{}, false
}
