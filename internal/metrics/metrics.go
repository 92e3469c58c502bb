// Package metrics exposes Prometheus counters for the inference engine.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/alexanderramin/dealdesk/internal/llm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LLMCallsTotal counts model calls.
	// Labels: task, provider, success (true, false), error_code
	LLMCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealdesk",
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "Total number of LLM calls by outcome",
		},
		[]string{"task", "provider", "success", "error_code"},
	)

	// LLMCallDuration tracks end-to-end call latency including retries.
	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dealdesk",
			Subsystem: "llm",
			Name:      "call_duration_seconds",
			Help:      "Duration of LLM calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"task", "provider"},
	)

	// StrategyFallbacksTotal counts rule-based fallbacks on the LLM path.
	// Labels: reason (timeout, unavailable, invalid_output, provider_error, not_configured)
	StrategyFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealdesk",
			Subsystem: "strategy",
			Name:      "fallbacks_total",
			Help:      "Total number of strategy generations that fell back to rules",
		},
		[]string{"reason"},
	)

	// PlaysExecutedTotal counts executed strategy plays.
	// Labels: result (success, not_found, error)
	PlaysExecutedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealdesk",
			Subsystem: "strategy",
			Name:      "plays_executed_total",
			Help:      "Total number of strategy play executions by result",
		},
		[]string{"result"},
	)

	// NotificationsDerivedTotal counts notification upserts by priority.
	NotificationsDerivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealdesk",
			Subsystem: "notifications",
			Name:      "derived_total",
			Help:      "Total number of signal notifications derived",
		},
		[]string{"priority"},
	)

	// MeetingNotesProcessedTotal counts processed meeting notes.
	MeetingNotesProcessedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dealdesk",
			Subsystem: "notes",
			Name:      "processed_total",
			Help:      "Total number of meeting notes processed",
		},
	)
)

// Recorder adapts the package counters to the observer hooks used by the
// llm, strategy, and service packages.
type Recorder struct{}

func (Recorder) OnCallComplete(e llm.LLMCallEvent) {
	LLMCallsTotal.WithLabelValues(string(e.Task), string(e.Provider), strconv.FormatBool(e.Success), e.ErrorCode).Inc()
	LLMCallDuration.WithLabelValues(string(e.Task), string(e.Provider)).Observe(float64(e.LatencyMs) / 1000)
}

func (Recorder) RecordFallback(reason string) {
	StrategyFallbacksTotal.WithLabelValues(reason).Inc()
}

func (Recorder) RecordPlayExecuted(result string) {
	PlaysExecutedTotal.WithLabelValues(result).Inc()
}

func (Recorder) RecordNotificationDerived(priority string) {
	NotificationsDerivedTotal.WithLabelValues(priority).Inc()
}

func (Recorder) RecordMeetingNotesProcessed() {
	MeetingNotesProcessedTotal.Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
