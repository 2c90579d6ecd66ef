// Package batch fans a list of resource identifiers out to one goroutine
// each and gathers every outcome back in input order.
//
// Example usage:
//
//	orchestrator, err := batch.New(fetcher.New(store, logger), logger)
//	outcomes, err := orchestrator.FetchAll(ctx, []resource.ID{"cat", "tokyo", "banana"})
//	// outcomes[i] always belongs to ids[i]
//
// The orchestrator:
//   - Launches one unit of work per identifier, with no upper bound
//   - Waits for every unit, whatever its result
//   - Turns a panicking or exiting unit into an execution_failure outcome
//   - Returns exactly len(ids) outcomes, ordered like the input
//
// Units are never cancelled by the orchestrator and there are no retries.
// The context is passed through to the fetcher unchanged.
package batch
