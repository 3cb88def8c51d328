// Package metrics provides Prometheus metrics for Inkwell — counters for
// journal activity, the prompt flow, and streak reconciliation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Entries ────────────────────────────────────────────────────────────────

// EntriesCreated tracks stored journal entries.
var EntriesCreated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "inkwell",
	Name:      "entries_created_total",
	Help:      "Total journal entries created.",
})

// WordsWritten tracks total words across all stored entries.
var WordsWritten = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "inkwell",
	Name:      "words_written_total",
	Help:      "Total words written across all entries.",
})

// ─── Prompt Flow ────────────────────────────────────────────────────────────

// PromptCompletions tracks prompt completions and skips by outcome.
var PromptCompletions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "inkwell",
	Name:      "prompt_transitions_total",
	Help:      "Prompt state transitions by outcome (completed, skipped, rejected).",
}, []string{"outcome"})

// ─── Reconciliation ─────────────────────────────────────────────────────────

// StreakCorrections tracks cached writing-streak counters that disagreed
// with recomputation and were overwritten.
var StreakCorrections = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "inkwell",
	Name:      "streak_corrections_total",
	Help:      "Cached writing streaks corrected against recomputation.",
})

// ReconcileSweepDuration tracks the nightly all-user reconciliation sweep.
var ReconcileSweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "inkwell",
	Name:      "reconcile_sweep_seconds",
	Help:      "Duration of the nightly streak reconciliation sweep.",
	Buckets:   prometheus.DefBuckets,
})

// ─── Health ─────────────────────────────────────────────────────────────────

// HealthCheckStatus tracks health check results (1=healthy, 0=unhealthy).
var HealthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "inkwell",
	Name:      "health_check_status",
	Help:      "Health check result per component (1=healthy, 0=unhealthy).",
}, []string{"check"})
