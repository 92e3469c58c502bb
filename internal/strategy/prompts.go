package strategy

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/alexanderramin/dealdesk/internal/notes"
)

const strategySystemPrompt = `You are a B2B sales strategist helping a rep advance a single deal.
Recommend between 2 and 4 concrete plays grounded only in the deal context provided.

Output ONLY a JSON object of the form:
{"plays": [{"title": string, "thesis": string, "trigger": string, "steps": [string], "expectedImpact": string, "confidence": number}]}

Rules:
1. Each play has 2 to 4 short imperative steps a rep can act on this week.
2. Mention a time frame in steps when urgency matters (today, within 24 hours, this week).
3. confidence is a number between 0 and 1.
4. Never invent stakeholders, figures, or events that are not in the context.`

const promptSummaryRunes = 160

func buildStrategyUserPrompt(dc DealContext, f facts) string {
	var b strings.Builder
	d := dc.Deal
	fmt.Fprintf(&b, "Deal: %s\nStage: %s\nAmount: %d\nConfidence: %.2f\n", d.Name, d.Stage, d.Amount, d.Confidence)
	if d.CloseDate != nil {
		fmt.Fprintf(&b, "Target close: %s\n", d.CloseDate.Format("2006-01-02"))
	}
	if d.RiskSummary != "" {
		fmt.Fprintf(&b, "Risk summary: %s\n", notes.Truncate(d.RiskSummary, promptSummaryRunes))
	}

	fmt.Fprintf(&b, "\nSignal strength: %.0f\nOverdue high-priority tasks: %d\nPending approvals: %d\n",
		f.signalStrength, f.overdueTasks, f.pendingApprovals)

	if len(dc.Signals) > 0 {
		b.WriteString("\nSignals:\n")
		for _, s := range dc.Signals {
			fmt.Fprintf(&b, "- [%s, score %d] %s\n", s.Type, s.Score, notes.Truncate(s.Summary, promptSummaryRunes))
		}
	}
	if len(dc.Activities) > 0 {
		b.WriteString("\nRecent activity:\n")
		for _, a := range dc.Activities {
			fmt.Fprintf(&b, "- [%s %s] %s\n", a.Type, a.HappenedAt.Format("2006-01-02"), notes.Truncate(a.Summary, promptSummaryRunes))
		}
	}
	if len(dc.Tasks) > 0 {
		b.WriteString("\nOpen tasks:\n")
		for _, t := range dc.Tasks {
			if t.Status == domain.TaskDone {
				continue
			}
			fmt.Fprintf(&b, "- [%s, due %s] %s\n", t.Priority, t.DueAt.Format("2006-01-02"), t.Title)
		}
	}
	return b.String()
}
