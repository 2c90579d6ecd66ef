package testutil

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sternrassler/resource-loader/pkg/resource"
)

// Step scripts how ScriptedFetcher answers for one id.
type Step struct {
	Content string
	Err     error
	Delay   time.Duration

	// Panic, when non-nil, is raised instead of returning
	Panic any

	// Goexit terminates the calling goroutine instead of returning
	Goexit bool
}

// ScriptedFetcher answers fetches from a per-id script. Ids without a step
// fail with a not_found error. It records calls and peak concurrency.
type ScriptedFetcher struct {
	mu    sync.Mutex
	steps map[string]Step
	calls []string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

// NewScriptedFetcher creates a fetcher from the given script.
func NewScriptedFetcher(steps map[string]Step) *ScriptedFetcher {
	if steps == nil {
		steps = make(map[string]Step)
	}
	return &ScriptedFetcher{steps: steps}
}

// Set replaces the step for id.
func (f *ScriptedFetcher) Set(id string, step Step) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.steps[id] = step
}

// Fetch plays the step scripted for id.
func (f *ScriptedFetcher) Fetch(ctx context.Context, id resource.ID) (resource.Content, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.maxInFlight.Load()
		if n <= peak || f.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, id)
	step, ok := f.steps[id]
	f.mu.Unlock()

	if !ok {
		return nil, &resource.Error{Kind: resource.KindNotFound, ID: id, Message: "no such resource"}
	}

	if step.Delay > 0 {
		time.Sleep(step.Delay)
	}
	if step.Panic != nil {
		panic(step.Panic)
	}
	if step.Goexit {
		runtime.Goexit()
	}
	if step.Err != nil {
		return nil, step.Err
	}
	return resource.Content(step.Content), nil
}

// Calls returns the ids fetched so far, in call order.
func (f *ScriptedFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// MaxInFlight returns the highest number of concurrent Fetch calls seen.
func (f *ScriptedFetcher) MaxInFlight() int {
	return int(f.maxInFlight.Load())
}
