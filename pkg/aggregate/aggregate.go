// Package aggregate merges per-resource outcomes into a single result map
// and a failure report.
package aggregate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/resource-loader/pkg/resource"
)

// DuplicatePolicy decides which success is kept when an id occurs more
// than once in a batch.
type DuplicatePolicy string

const (
	// LastWins keeps the success that comes last in input order.
	LastWins DuplicatePolicy = "last"

	// FirstWins keeps the success that comes first in input order.
	FirstWins DuplicatePolicy = "first"
)

// ParseDuplicatePolicy converts a configuration string to a policy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", LastWins:
		return LastWins, nil
	case FirstWins:
		return FirstWins, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q (want %q or %q)", s, LastWins, FirstWins)
	}
}

// Options controls aggregation.
type Options struct {
	// Duplicates selects which duplicate success is kept (default: LastWins)
	Duplicates DuplicatePolicy

	// Logger receives one warn event per failure (default: no output)
	Logger zerolog.Logger
}

// Failure is one entry of the failure report.
type Failure struct {
	// Index is the position of the outcome in the batch
	Index int

	ID     resource.ID
	Kind   resource.Kind
	Reason string

	// Err is the original classified error
	Err error
}

// String formats the failure for human consumption.
func (f Failure) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.ID, f.Reason, f.Kind)
}

// Result is the aggregated outcome of a batch.
type Result struct {
	// Data maps each successfully loaded id to its content
	Data map[resource.ID]resource.Content

	// Failures lists every failed outcome in input order
	Failures []Failure
}

// Len returns the number of loaded resources.
func (r *Result) Len() int {
	return len(r.Data)
}

// Get returns the content loaded for id.
func (r *Result) Get(id resource.ID) (resource.Content, bool) {
	c, ok := r.Data[id]
	return c, ok
}

// Err joins all failure errors, or returns nil when there were none.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}

// Aggregate walks outcomes once, in order. Successes go into the map
// according to the duplicate policy; failures are reported and skipped.
// The returned result is complete; it is never observed half-built.
func Aggregate(outcomes []resource.Outcome, opts Options) *Result {
	if opts.Duplicates == "" {
		opts.Duplicates = LastWins
	}

	result := &Result{
		Data:     make(map[resource.ID]resource.Content, len(outcomes)),
		Failures: []Failure{},
	}

	for i, outcome := range outcomes {
		if !outcome.OK() {
			failure := Failure{
				Index:  i,
				ID:     outcome.ID,
				Kind:   outcome.Kind(),
				Reason: resource.Reason(outcome.Err),
				Err:    outcome.Err,
			}
			result.Failures = append(result.Failures, failure)

			opts.Logger.Warn().
				Str("resource", failure.ID).
				Str("kind", string(failure.Kind)).
				Str("reason", failure.Reason).
				Int("index", i).
				Msg("Resource failed to load")
			continue
		}

		if opts.Duplicates == FirstWins {
			if _, exists := result.Data[outcome.ID]; exists {
				continue
			}
		}
		result.Data[outcome.ID] = outcome.Content
	}

	return result
}
