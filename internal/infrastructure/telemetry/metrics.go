package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes used as the "outcome" label of rentflow_generation_rooms_total
const (
	OutcomeCreated = "created"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Generation run results used as the "result" label of rentflow_generation_runs_total
const (
	RunResultCompleted   = "completed"
	RunResultLockSkipped = "lock_skipped"
	RunResultFailed      = "failed"
)

// BillingMetrics holds the Prometheus collectors of the billing service.
type BillingMetrics struct {
	GenerationRuns     *prometheus.CounterVec // by result
	GenerationRooms    *prometheus.CounterVec // by outcome
	GenerationDuration prometheus.Histogram
	LockAcquire        *prometheus.CounterVec // by result: acquired/held/error
	PaymentsMarkedPaid *prometheus.CounterVec // by resulting status: paid/partial
}

// NewBillingMetrics registers the billing collectors with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewBillingMetrics(reg prometheus.Registerer) *BillingMetrics {
	factory := promauto.With(reg)
	return &BillingMetrics{
		GenerationRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentflow_generation_runs_total",
				Help: "Total number of payment generation runs",
			},
			[]string{"result"},
		),
		GenerationRooms: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentflow_generation_rooms_total",
				Help: "Rooms processed by payment generation, by outcome",
			},
			[]string{"outcome"},
		),
		GenerationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rentflow_generation_duration_seconds",
				Help:    "Duration of payment generation runs",
				Buckets: prometheus.DefBuckets,
			},
		),
		LockAcquire: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentflow_generation_lock_acquire_total",
				Help: "Total number of generation run lock acquisition attempts",
			},
			[]string{"result"},
		),
		PaymentsMarkedPaid: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentflow_payments_marked_paid_total",
				Help: "Total number of payments recorded, by resulting status",
			},
			[]string{"status"},
		),
	}
}

// ObserveGeneration records the outcome counts of one completed generation run.
func (m *BillingMetrics) ObserveGeneration(created, skipped, failed int, seconds float64) {
	if m == nil {
		return
	}
	m.GenerationRuns.WithLabelValues(RunResultCompleted).Inc()
	m.GenerationRooms.WithLabelValues(OutcomeCreated).Add(float64(created))
	m.GenerationRooms.WithLabelValues(OutcomeSkipped).Add(float64(skipped))
	m.GenerationRooms.WithLabelValues(OutcomeFailed).Add(float64(failed))
	m.GenerationDuration.Observe(seconds)
}

// ObserveRunResult counts a generation run that ended without processing rooms.
func (m *BillingMetrics) ObserveRunResult(result string) {
	if m == nil {
		return
	}
	m.GenerationRuns.WithLabelValues(result).Inc()
}

// ObserveLock counts a run lock acquisition attempt.
func (m *BillingMetrics) ObserveLock(result string) {
	if m == nil {
		return
	}
	m.LockAcquire.WithLabelValues(result).Inc()
}

// ObservePayment counts a recorded payment by its resulting status.
func (m *BillingMetrics) ObservePayment(status string) {
	if m == nil {
		return
	}
	m.PaymentsMarkedPaid.WithLabelValues(status).Inc()
}
