package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
)

// FormatProcessNotes renders the brief, generated tasks, and follow-up draft.
func FormatProcessNotes(resp *contract.ProcessNotesResponse, now time.Time) string {
	var b strings.Builder

	brief := resp.MeetingBrief
	var body strings.Builder
	fmt.Fprintf(&body, "%s %s\n", Bold("Summary:"), brief.Summary)
	fmt.Fprintf(&body, "%s %s\n", Bold("Goal:"), brief.PrimaryGoal)
	body.WriteString(Bold("Objections:") + "\n")
	for _, o := range brief.Objections {
		fmt.Fprintf(&body, "  %s %s\n", StyleYellow.Render("!"), o)
	}
	body.WriteString(Bold("Proof points:") + "\n")
	for _, p := range brief.ProofPoints {
		fmt.Fprintf(&body, "  %s %s\n", StyleGreen.Render("+"), p)
	}
	b.WriteString(RenderBox("Meeting brief", strings.TrimRight(body.String(), "\n")))
	b.WriteString("\n\n")

	b.WriteString(Header("Generated tasks"))
	b.WriteString("\n")
	b.WriteString(FormatTasks(resp.GeneratedTasks, now))
	b.WriteString("\n")

	draft := resp.FollowUpDraft
	b.WriteString(Header("Follow-up draft"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n\n%s\n", Bold("Subject:"), draft.Subject, draft.Body)
	return b.String()
}

// FormatTasks renders task views as a table.
func FormatTasks(tasks []contract.TaskView, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}
	headers := []string{"ID", "TITLE", "PRIORITY", "CHANNEL", "DUE", "STATUS"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Title,
			PriorityIndicator(domain.Priority(t.Priority)),
			t.Channel,
			DueStyled(t.DueAt, now),
			TaskStatusPill(domain.TaskStatus(t.Status)),
		})
	}
	return RenderTable(headers, rows)
}
