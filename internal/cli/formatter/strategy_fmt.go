package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dealdesk/internal/contract"
)

// FormatPlays renders each play with its confidence, thesis, and steps.
func FormatPlays(resp *contract.PlaysResponse) string {
	if len(resp.Plays) == 0 {
		return Dim("No strategy plays for this deal.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header("Strategy plays"))
	b.WriteString("\n")
	for i, p := range resp.Plays {
		fmt.Fprintf(&b, "\n%s %s  %s\n", StyleBold.Render(fmt.Sprintf("%d.", i+1)), Bold(p.Title), Dim(p.ID))
		fmt.Fprintf(&b, "   %s\n", RenderConfidence(p.Confidence, 12))
		fmt.Fprintf(&b, "   %s\n", p.Thesis)
		fmt.Fprintf(&b, "   %s %s\n", Dim("Trigger:"), p.Trigger)
		for j, step := range p.Steps {
			fmt.Fprintf(&b, "   %s %s\n", StyleBlue.Render(fmt.Sprintf("%d)", j+1)), step)
		}
	}
	return b.String()
}

// FormatExecuteResult renders the outcome of executing a play.
func FormatExecuteResult(res contract.ExecutePlayResult) string {
	if !res.Success {
		return fmt.Sprintf("%s %s (%s)\n", StyleRed.Render("✖ Play not executed:"), res.Error, res.ErrorKind)
	}
	return fmt.Sprintf("%s %s: %d task(s) scheduled, %d approval(s) queued\n",
		StyleGreen.Render("✔ Executed"), res.PlayID, res.TasksCreated, res.ApprovalsCreated)
}
