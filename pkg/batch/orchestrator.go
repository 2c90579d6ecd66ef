package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/resource-loader/pkg/resource"
)

// ErrIncompleteBatch is returned when a unit finished without leaving an
// outcome behind. The outcome list cannot be trusted in that case.
var ErrIncompleteBatch = errors.New("batch incomplete: unit left no outcome")

// Fetcher is the interface a single-resource loader must implement.
type Fetcher interface {
	// Fetch loads one resource and returns its content or a failure
	Fetch(ctx context.Context, id resource.ID) (resource.Content, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, id resource.ID) (resource.Content, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, id resource.ID) (resource.Content, error) {
	return f(ctx, id)
}

// Orchestrator fetches many resources in parallel.
type Orchestrator struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

// New creates an orchestrator around fetcher.
func New(fetcher Fetcher, logger zerolog.Logger) (*Orchestrator, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	return &Orchestrator{
		fetcher: fetcher,
		logger:  logger.With().Str("component", "batch").Logger(),
	}, nil
}

// slot is the handle of one launched unit. Only that unit writes it, and
// it is read only after the barrier.
type slot struct {
	outcome resource.Outcome
	done    bool
}

// FetchAll fetches every id concurrently and returns one outcome per id, in
// input order. Duplicate ids are fetched once per occurrence. Fetch failures
// are reported as outcomes; the error is reserved for a batch whose outcome
// count cannot be guaranteed.
func (o *Orchestrator) FetchAll(ctx context.Context, ids []resource.ID) ([]resource.Outcome, error) {
	start := time.Now()
	batchesTotal.Inc()
	defer func() {
		batchDuration.Observe(time.Since(start).Seconds())
	}()

	if len(ids) == 0 {
		return []resource.Outcome{}, nil
	}

	o.logger.Info().
		Int("resources", len(ids)).
		Msg("Starting parallel fetch")

	slots := make([]slot, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go o.unit(ctx, id, &slots[i], &wg)
	}

	// Units finish in any order; nothing below runs until all have
	wg.Wait()

	outcomes, failed, err := o.collect(ids, slots)
	if err != nil {
		return nil, err
	}

	o.logger.Info().
		Int("resources", len(ids)).
		Int("succeeded", len(ids)-failed).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return outcomes, nil
}

// collect reads the slots in input order. unit marks its slot on every
// exit path, so an unmarked slot means the outcome list is corrupt.
func (o *Orchestrator) collect(ids []resource.ID, slots []slot) ([]resource.Outcome, int, error) {
	outcomes := make([]resource.Outcome, len(ids))
	failed := 0
	for i := range slots {
		if !slots[i].done {
			o.logger.Error().
				Int("index", i).
				Str("resource", ids[i]).
				Msg("Unit finished without an outcome")
			return nil, 0, fmt.Errorf("%w: index %d (%q)", ErrIncompleteBatch, i, ids[i])
		}
		outcomes[i] = slots[i].outcome
		if !outcomes[i].OK() {
			failed++
		}
	}
	return outcomes, failed, nil
}

// unit runs one fetch and records its outcome in s. A fetch that panics or
// calls runtime.Goexit is recorded as an execution failure.
func (o *Orchestrator) unit(ctx context.Context, id resource.ID, s *slot, wg *sync.WaitGroup) {
	defer wg.Done()

	unitsInFlight.Inc()
	defer unitsInFlight.Dec()

	completed := false
	defer func() {
		if completed {
			return
		}

		reason := "unit exited before returning"
		if r := recover(); r != nil {
			reason = fmt.Sprintf("unit panicked: %v", r)
		}

		executionFailures.Inc()
		o.logger.Warn().
			Str("resource", id).
			Str("reason", reason).
			Msg("Fetch unit did not complete")

		s.outcome = resource.Failure(id, &resource.Error{
			Kind:    resource.KindExecutionFailure,
			ID:      id,
			Message: reason,
		})
		s.done = true
	}()

	content, err := o.fetcher.Fetch(ctx, id)
	if err != nil {
		s.outcome = resource.Failure(id, err)
	} else {
		s.outcome = resource.Success(id, content)
	}
	s.done = true
	completed = true
}
