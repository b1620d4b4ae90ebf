package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Settlement metrics
	SettlementsCompleted  *prometheus.CounterVec
	SettlementsRolledBack *prometheus.CounterVec
	SettlementConflicts   *prometheus.CounterVec
	EntriesGenerated      *prometheus.CounterVec
	EntriesSkipped        *prometheus.CounterVec
	EntriesReflected      *prometheus.CounterVec
	EntriesReversed       *prometheus.CounterVec
	SettledAmount         *prometheus.CounterVec
	ReversedAmount        *prometheus.CounterVec

	// Template metrics
	TemplatesCreated prometheus.Counter
	TemplatesDeleted prometheus.Counter

	// Outbox metrics
	OutboxPublished prometheus.Counter
	OutboxFailures  prometheus.Counter

	// Database metrics
	DBQueries  *prometheus.CounterVec
	DBDuration *prometheus.HistogramVec
	DBErrors   *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		SettlementsCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybook_settlements_completed_total",
				Help: "Total number of completed month settlements",
			},
			[]string{"ledger_type"},
		),
		SettlementsRolledBack: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybook_settlements_rolled_back_total",
				Help: "Total number of settlement rollbacks",
			},
			[]string{"ledger_type"},
		),
		SettlementConflicts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybook_settlement_conflicts_total",
				Help: "Total number of concurrent settlement conflicts",
			},
			[]string{"ledger_type"},
		),
		EntriesGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybook_entries_generated_total",
				Help: "Total ledger entries generated by settlement",
			},
			[]string{"ledger_type"},
		),
		EntriesSkipped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybook_entries_skipped_total",
				Help: "Total templates skipped as already materialized",
			},
			[]string{"ledger_type"},
		),
		EntriesReflected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybook_entries_reflected_total",
				Help: "Total ledger entries whose cash effect reached an asset",
			},
			[]string{"ledger_type"},
		),
		EntriesReversed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybook_entries_reversed_total",
				Help: "Total ledger entries removed by rollback",
			},
			[]string{"ledger_type"},
		),
		SettledAmount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybook_settled_amount_total",
				Help: "Total amount settled into liquid assets",
			},
			[]string{"ledger_type"},
		),
		ReversedAmount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybook_reversed_amount_total",
				Help: "Total amount reversed out of liquid assets",
			},
			[]string{"ledger_type"},
		),

		TemplatesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneybook_templates_created_total",
			Help: "Total number of recurring templates created",
		}),
		TemplatesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneybook_templates_deleted_total",
			Help: "Total number of recurring templates deleted",
		}),

		OutboxPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneybook_outbox_published_total",
			Help: "Total outbox events published",
		}),
		OutboxFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneybook_outbox_failures_total",
			Help: "Total outbox publish failures",
		}),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybook_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moneybook_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybook_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybook_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneybook_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),
	}
}

// SettleCompleted records the outcome of a successful settlement.
func (m *Metrics) SettleCompleted(ledgerType string, created, skipped, reflected int, settledAmount decimal.Decimal) {
	m.SettlementsCompleted.WithLabelValues(ledgerType).Inc()
	m.EntriesGenerated.WithLabelValues(ledgerType).Add(float64(created))
	m.EntriesSkipped.WithLabelValues(ledgerType).Add(float64(skipped))
	m.EntriesReflected.WithLabelValues(ledgerType).Add(float64(reflected))
	m.SettledAmount.WithLabelValues(ledgerType).Add(settledAmount.InexactFloat64())
}

// RollbackCompleted records the outcome of a successful rollback.
func (m *Metrics) RollbackCompleted(ledgerType string, deleted int, reversedAmount decimal.Decimal) {
	m.SettlementsRolledBack.WithLabelValues(ledgerType).Inc()
	m.EntriesReversed.WithLabelValues(ledgerType).Add(float64(deleted))
	m.ReversedAmount.WithLabelValues(ledgerType).Add(reversedAmount.Abs().InexactFloat64())
}

// ConflictObserved records a lost optimistic-concurrency race.
func (m *Metrics) ConflictObserved(ledgerType string) {
	m.SettlementConflicts.WithLabelValues(ledgerType).Inc()
}
