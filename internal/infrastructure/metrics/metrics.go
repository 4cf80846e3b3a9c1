package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsCreated  prometheus.Counter
	TransactionsReversed prometheus.Counter
	TransactionDuration  prometheus.Histogram
	TransactionAmount    prometheus.Histogram
	WriteConflicts       prometheus.Counter

	// Entry metrics
	EntriesCreated *prometheus.CounterVec
	ChainHeight    prometheus.Gauge

	// Verification metrics
	VerificationsRun     prometheus.Counter
	VerificationDuration prometheus.Histogram
	ChainViolationsFound *prometheus.CounterVec
	EntriesVerified      prometheus.Counter

	// Balance metrics
	BalanceQueries   prometheus.Counter
	BalanceCacheHits prometheus.Counter
	BalanceCacheMiss prometheus.Counter
	BalanceDuration  prometheus.Histogram

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transaction metrics
		TransactionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chainledger_transactions_created_total",
			Help: "Total number of double-entry transactions created",
		}),
		TransactionsReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chainledger_transactions_reversed_total",
			Help: "Total number of transactions reversed",
		}),
		TransactionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "chainledger_transaction_duration_seconds",
			Help:    "Duration of ledger write operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "chainledger_transaction_amount",
			Help:    "Transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		WriteConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chainledger_write_conflicts_total",
			Help: "Total serialization conflicts on ledger writes",
		}),

		// Entry metrics
		EntriesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainledger_entries_created_total",
				Help: "Total ledger entries created by type",
			},
			[]string{"type"},
		),
		ChainHeight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "chainledger_chain_height",
			Help: "Sequence number of the current chain head",
		}),

		// Verification metrics
		VerificationsRun: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chainledger_verifications_total",
			Help: "Total chain verification runs",
		}),
		VerificationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "chainledger_verification_duration_seconds",
			Help:    "Duration of full-chain verification runs",
			Buckets: prometheus.DefBuckets,
		}),
		ChainViolationsFound: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainledger_chain_violations_total",
				Help: "Total chain integrity violations found by kind",
			},
			[]string{"kind"},
		),
		EntriesVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chainledger_entries_verified_total",
			Help: "Total entries checked during verification runs",
		}),

		// Balance metrics
		BalanceQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chainledger_balance_queries_total",
			Help: "Total balance queries",
		}),
		BalanceCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chainledger_balance_cache_hits_total",
			Help: "Balance queries served from cache",
		}),
		BalanceCacheMiss: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chainledger_balance_cache_misses_total",
			Help: "Balance queries that fell through to the store",
		}),
		BalanceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "chainledger_balance_duration_seconds",
			Help:    "Duration of balance queries",
			Buckets: prometheus.DefBuckets,
		}),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainledger_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
