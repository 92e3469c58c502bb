// Package scoring maps raw buying-signal scores to priorities. It is the
// only place the score thresholds are defined.
package scoring

import (
	"sort"

	"github.com/alexanderramin/dealdesk/internal/domain"
)

// Thresholds are inclusive lower bounds. They are tunable; the defaults
// match the inbox and alert views.
type Thresholds struct {
	High   int
	Medium int
}

func DefaultThresholds() Thresholds {
	return Thresholds{High: 78, Medium: 60}
}

// DefaultSignalStrength is used when a deal has no signals.
const DefaultSignalStrength = 65.0

// PriorityFromScore classifies a score with the default thresholds.
func PriorityFromScore(score int) domain.Priority {
	return DefaultThresholds().Classify(score)
}

func (t Thresholds) Classify(score int) domain.Priority {
	switch {
	case score >= t.High:
		return domain.PriorityHigh
	case score >= t.Medium:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// SignalStrength is the arithmetic mean of the signal scores, or
// DefaultSignalStrength when there are none.
func SignalStrength(signals []*domain.Signal) float64 {
	if len(signals) == 0 {
		return DefaultSignalStrength
	}
	total := 0
	for _, s := range signals {
		total += s.Score
	}
	return float64(total) / float64(len(signals))
}

// Alert is a signal annotated with its derived priority.
type Alert struct {
	Signal   *domain.Signal
	Priority domain.Priority
}

// RankAlerts keeps signals at or above minPriority, ordered by score
// descending, then recency, then id.
func RankAlerts(signals []*domain.Signal, minPriority domain.Priority) []Alert {
	alerts := make([]Alert, 0, len(signals))
	for _, s := range signals {
		p := PriorityFromScore(s.Score)
		if p.Rank() < minPriority.Rank() {
			continue
		}
		alerts = append(alerts, Alert{Signal: s, Priority: p})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i].Signal, alerts[j].Signal
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.HappenedAt.Equal(b.HappenedAt) {
			return a.HappenedAt.After(b.HappenedAt)
		}
		return a.ID < b.ID
	})
	return alerts
}
