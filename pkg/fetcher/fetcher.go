// Package fetcher loads a single resource from a storage backend and
// classifies the failure when it cannot.
package fetcher

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/resource-loader/pkg/resource"
	"github.com/Sternrassler/resource-loader/pkg/storage"
)

// Prometheus metrics for single-resource fetches.
var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loader_fetch_total",
		Help: "Total resource fetches by result",
	}, []string{"result"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loader_fetch_duration_seconds",
		Help:    "Resource fetch duration in seconds by result",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"result"})
)

// Fetcher reads one resource per call from a Store.
type Fetcher struct {
	store  storage.Store
	logger zerolog.Logger
}

// New creates a fetcher reading from store. The store carries the storage
// location (root directory, key prefix, base URL).
func New(store storage.Store, logger zerolog.Logger) *Fetcher {
	if store == nil {
		panic("storage store cannot be nil")
	}
	return &Fetcher{
		store:  store,
		logger: logger.With().Str("component", "fetcher").Logger(),
	}
}

// Fetch returns the content of id. Every error is a *resource.Error of kind
// KindNotFound, KindInvalidID or KindReadFailure. There are no retries.
func (f *Fetcher) Fetch(ctx context.Context, id resource.ID) (resource.Content, error) {
	start := time.Now()

	content, err := f.fetch(ctx, id)

	result := "ok"
	if err != nil {
		result = string(resource.KindOf(err))
	}
	fetchTotal.WithLabelValues(result).Inc()
	fetchDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	f.logger.Debug().
		Str("resource", id).
		Str("result", result).
		Int("bytes", len(content)).
		Dur("duration", time.Since(start)).
		Msg("Fetched resource")

	return content, err
}

func (f *Fetcher) fetch(ctx context.Context, id resource.ID) (resource.Content, error) {
	if err := resource.ValidateID(id); err != nil {
		return nil, err
	}

	data, err := f.store.Read(ctx, id)
	if err != nil {
		return nil, classify(id, err)
	}

	return resource.Content(data), nil
}

// classify turns a storage error into a resource error.
func classify(id resource.ID, err error) *resource.Error {
	kind := resource.KindReadFailure
	switch {
	case errors.Is(err, storage.ErrNotExist):
		kind = resource.KindNotFound
	case errors.Is(err, storage.ErrInvalidKey):
		kind = resource.KindInvalidID
	}
	return &resource.Error{Kind: kind, ID: id, Message: err.Error(), Err: err}
}
