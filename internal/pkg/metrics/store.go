// Package metrics provides Prometheus metrics recording for internal packages.
// This package exists to avoid import cycles between the repository and middleware packages.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// storeOpDuration tracks in-memory store operation duration in seconds
	storeOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "circuitlab_store_operation_duration_seconds",
			Help:    "In-memory store operation duration in seconds",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
		[]string{"store", "operation"},
	)

	// storeOpTotal tracks total store operations
	storeOpTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuitlab_store_operations_total",
			Help: "Total number of in-memory store operations",
		},
		[]string{"store", "operation"},
	)

	// storeOpErrors tracks store operations that returned an error
	storeOpErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuitlab_store_operation_errors_total",
			Help: "Total number of in-memory store operations that failed",
		},
		[]string{"store", "operation"},
	)

	// storeRecords tracks the number of records held per store
	storeRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuitlab_store_records",
			Help: "Number of records currently held by each store",
		},
		[]string{"store"},
	)
)

// RecordStoreOp records store operation metrics
func RecordStoreOp(store, operation string, duration time.Duration) {
	storeOpTotal.WithLabelValues(store, operation).Inc()
	storeOpDuration.WithLabelValues(store, operation).Observe(duration.Seconds())
}

// RecordStoreError records a failed store operation
func RecordStoreError(store, operation string) {
	storeOpErrors.WithLabelValues(store, operation).Inc()
}

// SetStoreRecords sets the record count gauge of a store
func SetStoreRecords(store string, n int) {
	storeRecords.WithLabelValues(store).Set(float64(n))
}

// breakerState exposes circuit breaker state (0 closed, 1 open, 2 half-open)
var breakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "circuitlab_circuit_breaker_state",
		Help: "Circuit breaker state per dependency (0 closed, 1 open, 2 half-open)",
	},
	[]string{"name"},
)

// SetBreakerState records the state of a named circuit breaker
func SetBreakerState(name string, state int) {
	breakerState.WithLabelValues(name).Set(float64(state))
}
