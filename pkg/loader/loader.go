// Package loader is the entry point of the resource loader: it turns a list
// of names into a map of loaded contents plus a failure report.
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/resource-loader/pkg/aggregate"
	"github.com/Sternrassler/resource-loader/pkg/batch"
	"github.com/Sternrassler/resource-loader/pkg/fetcher"
	"github.com/Sternrassler/resource-loader/pkg/logging"
	"github.com/Sternrassler/resource-loader/pkg/resource"
	"github.com/Sternrassler/resource-loader/pkg/storage"
)

// Loader loads batches of named resources from one store.
type Loader struct {
	store        storage.Store
	orchestrator *batch.Orchestrator
	duplicates   aggregate.DuplicatePolicy
	logger       zerolog.Logger

	// closeRedis is set when the loader dialed its own Redis client
	closeRedis func() error
}

// New creates a loader from cfg, building the configured backend.
func New(cfg Config) (*Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var (
		store      storage.Store
		closeRedis func() error
	)

	switch cfg.Backend {
	case BackendFile:
		store = storage.NewFileStore(cfg.RootDir, cfg.Suffix)

	case BackendRedis:
		client := cfg.Redis
		if client == nil {
			client = redis.NewClient(&redis.Options{
				Addr: cfg.RedisAddr,
				DB:   cfg.RedisDB,
			})
			closeRedis = client.Close
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			if closeRedis != nil {
				closeRedis()
			}
			return nil, fmt.Errorf("connect to redis: %w", err)
		}

		store = storage.NewRedisStore(client, cfg.RedisPrefix)

	case BackendHTTP:
		httpStore, err := storage.NewHTTPStore(storage.HTTPConfig{
			BaseURL:   cfg.BaseURL,
			Suffix:    cfg.Suffix,
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.HTTPTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("create http store: %w", err)
		}
		store = httpStore

	case BackendMemory:
		store = storage.NewMemoryStore(cfg.Seed)
	}

	l, err := NewWithStore(store, cfg.Duplicates)
	if err != nil {
		if closeRedis != nil {
			closeRedis()
		}
		return nil, err
	}
	l.closeRedis = closeRedis

	l.logger.Debug().
		Str("backend", string(cfg.Backend)).
		Msg("Loader ready")

	return l, nil
}

// NewWithStore creates a loader reading from any store.
func NewWithStore(store storage.Store, duplicates aggregate.DuplicatePolicy) (*Loader, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}

	duplicates, err := aggregate.ParseDuplicatePolicy(string(duplicates))
	if err != nil {
		return nil, err
	}

	orchestrator, err := batch.New(fetcher.New(store, logging.NewLogger("fetcher")), logging.NewLogger("batch"))
	if err != nil {
		return nil, fmt.Errorf("create orchestrator: %w", err)
	}

	return &Loader{
		store:        store,
		orchestrator: orchestrator,
		duplicates:   duplicates,
		logger:       logging.NewLogger("loader"),
	}, nil
}

// Load fetches every name concurrently and aggregates the outcomes. The
// result holds all successes and one failure per name that did not load.
// The error is only set when the batch itself could not be completed.
func (l *Loader) Load(ctx context.Context, names []string) (*aggregate.Result, error) {
	ids := make([]resource.ID, len(names))
	copy(ids, names)

	outcomes, err := l.orchestrator.FetchAll(ctx, ids)
	if err != nil {
		l.logger.Error().Err(err).Int("resources", len(ids)).Msg("Batch failed")
		return nil, fmt.Errorf("fetch batch: %w", err)
	}

	result := aggregate.Aggregate(outcomes, aggregate.Options{
		Duplicates: l.duplicates,
		Logger:     l.logger,
	})

	l.logger.Info().
		Int("requested", len(names)).
		Int("loaded", result.Len()).
		Int("failed", len(result.Failures)).
		Msg("Batch loaded")

	return result, nil
}

// Store returns the backend the loader reads from.
func (l *Loader) Store() storage.Store {
	return l.store
}

// Close releases the Redis connection the loader opened, if any.
func (l *Loader) Close() error {
	if l.closeRedis == nil {
		return nil
	}
	err := l.closeRedis()
	l.closeRedis = nil
	return err
}
