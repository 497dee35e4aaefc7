// Package concurrency implements the parallel-threads row fan-out of
// spec.md §5: "operations over a match set fan out across worker threads;
// within a worker, execution is sequential. The match set is the
// parallelism unit, not the graph." It is grounded on the teacher's
// executeConcurrent helper (internal/query/composite_queries.go):
// goroutines feeding a buffered result channel, gated by a WaitGroup, with
// the first error cancelling a shared context so remaining rows abandon
// early (spec.md §5's cancellation policy).
package concurrency

import (
	"context"
	"sync"

	"github.com/ritamzico/implica/internal/match"
)

type rowResult struct {
	index int
	err   error
}

// ForEachRow runs work for i in [0, n) concurrently, one goroutine per
// index, and waits for every call to return. The context passed to each
// call is cancelled the moment the first error is observed, so in-flight
// workers checking ctx.Err() can abandon early; calls that ignore the
// context run to completion. The first error encountered (by completion
// order, not index order) is returned.
func ForEachRow(ctx context.Context, n int, work func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan rowResult, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			results <- rowResult{index: i, err: work(ctx, i)}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for r := range results {
		if r.err != nil && firstErr == nil {
			firstErr = r.err
			cancel()
		}
	}
	return firstErr
}

// FanOutFrontier runs worker over every row in ms's current frontier in
// parallel, replacing the frontier with the concatenation of each row's
// successor matches (each registered against ms via Extend, preserving
// lineage). A row that produces zero successors simply drops out. An error
// from any row aborts the whole operation without changing ms's frontier
// (spec.md §5: "remaining rows are abandoned... subsequent operations" do
// not run).
func FanOutFrontier(ctx context.Context, ms *match.MatchSet, indexCorruption func(string) error, worker func(*match.Match) ([]*match.Match, error)) error {
	current := ms.Current()
	perRow := make([][]match.ID, len(current))

	err := ForEachRow(ctx, len(current), func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rowID := current[i]
		m, ok := ms.MatchFor(rowID)
		if !ok {
			return indexCorruption("match set frontier references an unknown row")
		}
		successors, err := worker(m)
		if err != nil {
			return err
		}
		ids := make([]match.ID, 0, len(successors))
		for _, s := range successors {
			ids = append(ids, ms.Extend(rowID, s))
		}
		perRow[i] = ids
		return nil
	})
	if err != nil {
		return err
	}

	var frontier []match.ID
	for _, ids := range perRow {
		frontier = append(frontier, ids...)
	}
	ms.Advance(frontier)
	return nil
}
