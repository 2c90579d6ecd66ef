// Package metrics documents the Prometheus metrics exported by the loader.
// Metrics are defined in the packages that record them (fetcher, batch,
// storage) so that no package depends on this one.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the Prometheus registry all loader metrics are registered in
// (via promauto).
var Registry = prometheus.DefaultRegisterer

// Gatherer reads back the metrics registered in Registry.
var Gatherer = prometheus.DefaultGatherer

// WriteTextfile writes the registered metrics to path in the text
// exposition format, for pickup by node_exporter's textfile collector.
// Short-lived runs such as the CLI have no endpoint to scrape.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Gatherer)
}

// Metrics Documentation
//
// Fetch Metrics (pkg/fetcher):
//   - loader_fetch_total{result} (Counter): Fetches by result (ok, not_found, invalid_identifier, read_failure)
//   - loader_fetch_duration_seconds{result} (Histogram): Fetch duration by result
//
// Batch Metrics (pkg/batch):
//   - loader_batches_total (Counter): Batches fetched
//   - loader_batch_duration_seconds (Histogram): Fan-out to gather wall time
//   - loader_units_in_flight (Gauge): Fetch units currently running
//   - loader_execution_failures_total (Counter): Units that panicked or exited
//
// Storage Metrics (pkg/storage):
//   - loader_storage_reads_total{backend, result} (Counter): Reads by backend and result
//   - loader_redis_hits_total (Counter): Redis entries found
//   - loader_redis_misses_total (Counter): Redis keys absent or expired
//   - loader_redis_errors_total{operation} (Counter): Redis operation errors
//
// Example Prometheus Queries:
//
//   # Share of resources that failed to load
//   sum(rate(loader_fetch_total{result!="ok"}[5m])) / sum(rate(loader_fetch_total[5m]))
//
//   # P95 fetch latency
//   histogram_quantile(0.95, sum by (le) (rate(loader_fetch_duration_seconds_bucket[5m])))
//
//   # Missing resources per backend
//   sum by (backend) (rate(loader_storage_reads_total{result="not_found"}[5m]))
