package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for batch orchestration.
var (
	batchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loader_batches_total",
		Help: "Total number of batches fetched",
	})

	batchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "loader_batch_duration_seconds",
		Help:    "Wall time of a batch from fan-out to gather in seconds",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
	})

	unitsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "loader_units_in_flight",
		Help: "Number of fetch units currently running",
	})

	executionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loader_execution_failures_total",
		Help: "Total number of fetch units that did not run to completion",
	})
)
