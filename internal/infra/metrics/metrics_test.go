package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func gatheredNames(t *testing.T) map[string]bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestLearningMetrics(t *testing.T) {
	LessonsCompleted.WithLabelValues("budgeting-101").Inc()
	XPAwarded.WithLabelValues("lesson").Add(75)
	CurrentLevel.Set(2)
	CurrentStreak.Set(3)
	BadgesUnlocked.Inc()

	names := gatheredNames(t)
	expected := []string{
		"kapai_lessons_completed_total",
		"kapai_xp_awarded_total",
		"kapai_level_current",
		"kapai_streak_days_current",
		"kapai_badges_unlocked_total",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

func TestEconomyMetrics(t *testing.T) {
	TradesExecuted.WithLabelValues("buy").Inc()
	BankBalance.Set(9875.50)
	HustleIncomeCollected.Add(200)

	names := gatheredNames(t)
	expected := []string{
		"kapai_trades_executed_total",
		"kapai_bank_balance_dollars",
		"kapai_hustle_income_collected_dollars_total",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

func TestAPIMetrics(t *testing.T) {
	APIRequests.WithLabelValues("/api/progress", "200").Inc()
	APILatency.WithLabelValues("/api/progress").Observe(0.012)

	names := gatheredNames(t)
	if !names["kapai_api_requests_total"] {
		t.Error("kapai_api_requests_total not found")
	}
	if !names["kapai_api_latency_seconds"] {
		t.Error("kapai_api_latency_seconds not found")
	}
}

func TestAllMetricsGatherable(t *testing.T) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	kapaiMetrics := 0
	for _, f := range families {
		if len(f.GetName()) > 6 && f.GetName()[:6] == "kapai_" {
			kapaiMetrics++
		}
	}

	if kapaiMetrics < 10 {
		t.Errorf("expected at least 10 kapai_ metric families, got %d", kapaiMetrics)
	}
}
