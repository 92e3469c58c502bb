package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
)

func itoa(n int) string { return strconv.Itoa(n) }

// FormatPipeline renders the open-pipeline summary with a per-stage count.
func FormatPipeline(p contract.PipelineView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", Bold("Open deals:"), p.OpenDeals)
	fmt.Fprintf(&b, "%s %s\n", Bold("Total:"), FormatAmount(p.TotalAmount))
	fmt.Fprintf(&b, "%s %s", Bold("Weighted:"), FormatAmount(int64(p.WeightedAmount+0.5)))

	order := domain.StageCodec.Values()
	stages := make([]string, 0, len(p.ByStage))
	for s := range p.ByStage {
		stages = append(stages, s)
	}
	sort.Slice(stages, func(i, j int) bool {
		return stageIndex(order, stages[i]) < stageIndex(order, stages[j])
	})
	if len(stages) > 0 {
		b.WriteString("\n")
	}
	for _, s := range stages {
		fmt.Fprintf(&b, "\n  %-12s %d", StageBadge(domain.Stage(s)), p.ByStage[s])
	}
	return RenderBox("Pipeline", b.String()) + "\n"
}

func stageIndex(order []domain.Stage, s string) int {
	for i, o := range order {
		if string(o) == s {
			return i
		}
	}
	return len(order)
}

// FormatDeals renders deals as a table.
func FormatDeals(deals []*domain.Deal) string {
	if len(deals) == 0 {
		return Dim("No deals.") + "\n"
	}
	headers := []string{"ID", "NAME", "STAGE", "AMOUNT", "CONFIDENCE"}
	rows := make([][]string, 0, len(deals))
	for _, d := range deals {
		rows = append(rows, []string{
			TruncID(d.ID),
			d.Name,
			StageBadge(d.Stage),
			FormatAmount(d.Amount),
			RenderConfidence(d.Confidence, 8),
		})
	}
	return RenderTable(headers, rows)
}

// FormatApprovals renders outbound approvals as a table.
func FormatApprovals(approvals []contract.ApprovalView) string {
	if len(approvals) == 0 {
		return Dim("No pending approvals.") + "\n"
	}
	headers := []string{"ID", "DEAL", "CHANNEL", "SUBJECT", "REQUESTED BY", "STATUS"}
	rows := make([][]string, 0, len(approvals))
	for _, a := range approvals {
		rows = append(rows, []string{
			TruncID(a.ID),
			TruncID(a.DealID),
			a.Channel,
			a.Subject,
			a.RequestedBy,
			ApprovalStatusPill(domain.ApprovalStatus(a.Status)),
		})
	}
	return RenderTable(headers, rows)
}
