// Package metrics provides Prometheus metrics for the Ka Pai Putea daemon:
// counters and gauges for learning progress, XP, badges, trading, and the
// side-hustle simulator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Learning ───────────────────────────────────────────────────────────────

// LessonsCompleted tracks lesson completions by module.
var LessonsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "kapai",
	Name:      "lessons_completed_total",
	Help:      "Total completed lessons.",
}, []string{"module"})

// XPAwarded tracks XP granted by source.
var XPAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "kapai",
	Name:      "xp_awarded_total",
	Help:      "Total XP awarded.",
}, []string{"source"})

// CurrentLevel tracks the learner's level.
var CurrentLevel = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "kapai",
	Name:      "level_current",
	Help:      "Current learner level.",
})

// CurrentStreak tracks the active daily streak.
var CurrentStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "kapai",
	Name:      "streak_days_current",
	Help:      "Current daily streak in days.",
})

// BadgesUnlocked tracks badge unlocks.
var BadgesUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "kapai",
	Name:      "badges_unlocked_total",
	Help:      "Total badges unlocked.",
})

// ─── Virtual Economy ────────────────────────────────────────────────────────

// TradesExecuted tracks virtual trades by side.
var TradesExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "kapai",
	Name:      "trades_executed_total",
	Help:      "Total executed virtual trades.",
}, []string{"side"})

// BankBalance tracks the virtual-bank balance.
var BankBalance = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "kapai",
	Name:      "bank_balance_dollars",
	Help:      "Current virtual-bank balance.",
})

// HustleIncomeCollected tracks collected side-hustle income.
var HustleIncomeCollected = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "kapai",
	Name:      "hustle_income_collected_dollars_total",
	Help:      "Total side-hustle income collected.",
})

// ─── API ────────────────────────────────────────────────────────────────────

// APIRequests tracks HTTP API requests by route and status.
var APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "kapai",
	Name:      "api_requests_total",
	Help:      "Total API requests.",
}, []string{"route", "status"})

// APILatency tracks API request duration in seconds.
var APILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "kapai",
	Name:      "api_latency_seconds",
	Help:      "API request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route"})
