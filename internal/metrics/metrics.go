package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pack generation and validation Prometheus metrics.
var (
	GuardHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "packgen",
			Name:      "guard_hits_total",
			Help:      "Total guard rejections by category",
		},
		[]string{"category"},
	)

	RowsDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "packgen",
			Name:      "rows_dropped_total",
			Help:      "Total rows dropped by category",
		},
		[]string{"stage", "category"}, // stage: "generate" / "validate"
	)

	RowsEmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "packgen",
			Name:      "rows_emitted_total",
			Help:      "Total exercise rows emitted",
		},
		[]string{"type"},
	)

	BanksEmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "packgen",
			Name:      "banks_emitted_total",
			Help:      "Total option banks emitted by quality",
		},
		[]string{"quality"},
	)

	RelaxUsedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "packgen",
			Name:      "relax_used_total",
			Help:      "Total banks that needed a relax-stage filler",
		},
	)

	BankSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "packgen",
			Name:      "bank_size",
			Help:      "Distribution of emitted bank sizes, answer included",
			Buckets:   []float64{2, 3, 4, 5, 6, 7, 8, 10, 12},
		},
	)
)

var packMetricsRegistered bool

// RegisterPackMetrics registers pack Prometheus metrics. Must be called once from main.
func RegisterPackMetrics() {
	if packMetricsRegistered {
		return
	}
	prometheus.MustRegister(GuardHitsTotal)
	prometheus.MustRegister(RowsDroppedTotal)
	prometheus.MustRegister(RowsEmittedTotal)
	prometheus.MustRegister(BanksEmittedTotal)
	prometheus.MustRegister(RelaxUsedTotal)
	prometheus.MustRegister(BankSize)
	packMetricsRegistered = true
}
