package telemetry_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rentflow/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
)

func TestBillingMetrics_ObserveGeneration(t *testing.T) {
	m := telemetry.NewBillingMetrics(prometheus.NewRegistry())

	m.ObserveGeneration(3, 1, 2, 0.25)
	m.ObserveGeneration(1, 0, 0, 0.1)
	m.ObserveRunResult(telemetry.RunResultLockSkipped)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GenerationRuns.WithLabelValues(telemetry.RunResultCompleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationRuns.WithLabelValues(telemetry.RunResultLockSkipped)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.GenerationRooms.WithLabelValues(telemetry.OutcomeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationRooms.WithLabelValues(telemetry.OutcomeSkipped)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.GenerationRooms.WithLabelValues(telemetry.OutcomeFailed)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.GenerationDuration))
}

func TestBillingMetrics_Counters(t *testing.T) {
	m := telemetry.NewBillingMetrics(prometheus.NewRegistry())

	m.ObserveLock("acquired")
	m.ObserveLock("held")
	m.ObservePayment("paid")
	m.ObservePayment("partial")
	m.ObservePayment("paid")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LockAcquire.WithLabelValues("held")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PaymentsMarkedPaid.WithLabelValues("paid")))
}

func TestBillingMetrics_NilSafe(t *testing.T) {
	var m *telemetry.BillingMetrics

	assert.NotPanics(t, func() {
		m.ObserveGeneration(1, 1, 1, 1)
		m.ObserveRunResult(telemetry.RunResultFailed)
		m.ObserveLock("acquired")
		m.ObservePayment("paid")
	})
}

func TestNewBillingMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	telemetry.NewBillingMetrics(reg)

	assert.Panics(t, func() { telemetry.NewBillingMetrics(reg) })
}
