package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/dealdesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a short relative date such as "In 3d" or "2w ago".
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueStyled renders a due date relative to now; overdue and next-48h dates
// are red.
func DueStyled(due, now time.Time) string {
	text := RelativeDateFrom(due, now)
	switch until := due.Sub(now); {
	case until < 48*time.Hour:
		return StyleRed.Render(text)
	case until < 7*24*time.Hour:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// HumanTimestamp returns "Just now", "5m ago", "3h ago", or a date.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskTodo:
		return StyleBlue.Render("○ Todo")
	case domain.TaskInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.TaskDone:
		return StyleDim.Render("✔ Done")
	default:
		return StyleDim.Render(string(status))
	}
}

func ApprovalStatusPill(status domain.ApprovalStatus) string {
	switch status {
	case domain.ApprovalPending:
		return StyleYellow.Render("○ Pending")
	case domain.ApprovalApproved:
		return StyleGreen.Render("✔ Approved")
	case domain.ApprovalRejected:
		return StyleRed.Render("✖ Rejected")
	default:
		return StyleDim.Render(string(status))
	}
}

func NotificationStatusPill(status domain.NotificationStatus) string {
	if status == domain.NotificationAcknowledged {
		return StyleDim.Render("✔ Ack")
	}
	return StyleBlue.Render("● New")
}

// StageBadge renders a deal stage; closed stages are dimmed.
func StageBadge(s domain.Stage) string {
	if s.IsClosed() {
		return StyleDim.Render(string(s))
	}
	return StylePurple.Render(string(s))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatAmount renders a whole-currency amount with thousands separators.
func FormatAmount(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}
