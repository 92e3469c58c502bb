package formatter

import (
	"time"

	"github.com/alexanderramin/dealdesk/internal/contract"
	"github.com/alexanderramin/dealdesk/internal/domain"
)

// FormatNotifications renders the signal inbox.
func FormatNotifications(views []contract.NotificationView, now time.Time) string {
	if len(views) == 0 {
		return Dim("No signal notifications.") + "\n"
	}
	headers := []string{"ID", "PRIORITY", "SIGNAL", "DEAL", "SUMMARY", "ACTION", "WHEN", "STATUS"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		deal := v.DealName
		if v.DealID == nil {
			deal = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(v.ID),
			PriorityIndicator(domain.Priority(v.Priority)),
			v.SignalType,
			deal,
			v.Summary,
			v.RecommendedAction,
			HumanTimestamp(v.HappenedAt, now),
			NotificationStatusPill(domain.NotificationStatus(v.Status)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatAlerts renders ranked buying-signal alerts.
func FormatAlerts(alerts []contract.AlertView, now time.Time) string {
	if len(alerts) == 0 {
		return Dim("No alerts at this priority.") + "\n"
	}
	headers := []string{"SCORE", "PRIORITY", "TYPE", "SUMMARY", "WHEN"}
	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		p := domain.Priority(a.Priority)
		rows = append(rows, []string{
			PriorityColor(p).Render(itoa(a.Score)),
			PriorityIndicator(p),
			a.Type,
			a.Summary,
			HumanTimestamp(a.HappenedAt, now),
		})
	}
	return RenderTable(headers, rows)
}
