package storage

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StorageReads tracks backend reads by backend and result
	StorageReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loader_storage_reads_total",
			Help: "Total number of storage reads by backend and result",
		},
		[]string{"backend", "result"}, // result: "ok", "not_found", "invalid_key", "error"
	)

	// RedisHits tracks Redis entries found
	RedisHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loader_redis_hits_total",
			Help: "Total number of Redis reads that found an entry",
		},
	)

	// RedisMisses tracks Redis keys that were absent or expired
	RedisMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loader_redis_misses_total",
			Help: "Total number of Redis reads that found no entry",
		},
	)

	// RedisErrors tracks Redis operation errors
	RedisErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loader_redis_errors_total",
			Help: "Total number of Redis operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)

// readResult maps a read error to its metric label.
func readResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotExist):
		return "not_found"
	case errors.Is(err, ErrInvalidKey):
		return "invalid_key"
	default:
		return "error"
	}
}

func observeRead(backend string, err error) {
	StorageReads.WithLabelValues(backend, readResult(err)).Inc()
}
