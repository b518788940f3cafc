// Package metrics exposes the tracker's Prometheus instruments.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sevigo/pr-tracker/internal/core"
)

const (
	OutcomeUpdated = "updated"
	OutcomeStale   = "stale"
	OutcomeDeleted = "deleted"
	OutcomeError   = "error"
)

var (
	refreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pr_tracker_refreshes_total",
		Help: "Pull request refreshes by trigger and outcome.",
	}, []string{"trigger", "outcome"})
	fetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pr_tracker_github_fetch_failures_total",
		Help: "Failed GitHub fetches by resource.",
	}, []string{"resource"})
	discrepancies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pr_tracker_discrepancies_total",
		Help: "Stored values that disagreed with a fresh recomputation, by field.",
	}, []string{"field"})
	reviewerGroupSyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pr_tracker_reviewer_group_syncs_total",
		Help: "Reviewer group syncs by result (unchanged or changed).",
	}, []string{"result"})
	timeToReady = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pr_tracker_time_to_ready_seconds",
		Help:    "Time from PR creation until it first became ready for backend review.",
		Buckets: prometheus.ExponentialBuckets(600, 2, 12),
	})
	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pr_tracker_refresh_queue_depth",
		Help: "Refresh requests waiting for a worker.",
	})
)

// RecordRefresh counts one refresh attempt.
func RecordRefresh(trigger core.Trigger, outcome string) {
	refreshes.WithLabelValues(string(trigger), outcome).Inc()
}

func RecordFetchFailure(resource string) {
	fetchFailures.WithLabelValues(resource).Inc()
}

func RecordDiscrepancy(field string) {
	discrepancies.WithLabelValues(field).Inc()
}

func RecordReviewerGroupSync(changed bool) {
	result := "unchanged"
	if changed {
		result = "changed"
	}
	reviewerGroupSyncs.WithLabelValues(result).Inc()
}

// ObserveTimeToReady records the delay between creation and readiness. Non-positive
// durations come from clock skew and are dropped.
func ObserveTimeToReady(createdAt, readyAt time.Time) {
	if createdAt.IsZero() {
		return
	}
	if d := readyAt.Sub(createdAt); d > 0 {
		timeToReady.Observe(d.Seconds())
	}
}

func SetQueueDepth(n int) {
	queueDepth.Set(float64(n))
}
