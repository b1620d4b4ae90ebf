package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	// Replace global default registry to allow test inspection.
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	if m.SettlementsCompleted == nil || m.EntriesGenerated == nil || m.DBQueries == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestSettlementObservations(t *testing.T) {
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	m.SettleCompleted("income", 3, 1, 3, decimal.NewFromInt(4200000))
	m.SettleCompleted("income", 2, 0, 2, decimal.NewFromInt(100000))
	m.RollbackCompleted("income", 3, decimal.NewFromInt(-4200000))
	m.ConflictObserved("expense")

	if got := testutil.ToFloat64(m.SettlementsCompleted.WithLabelValues("income")); got != 2 {
		t.Fatalf("expected 2 completed settlements, got %v", got)
	}
	if got := testutil.ToFloat64(m.EntriesGenerated.WithLabelValues("income")); got != 5 {
		t.Fatalf("expected 5 generated entries, got %v", got)
	}
	if got := testutil.ToFloat64(m.SettledAmount.WithLabelValues("income")); got != 4300000 {
		t.Fatalf("expected settled amount 4300000, got %v", got)
	}
	if got := testutil.ToFloat64(m.ReversedAmount.WithLabelValues("income")); got != 4200000 {
		t.Fatalf("expected reversed amount recorded as magnitude, got %v", got)
	}
	if got := testutil.ToFloat64(m.SettlementConflicts.WithLabelValues("expense")); got != 1 {
		t.Fatalf("expected 1 conflict, got %v", got)
	}
}
