package query

import (
	"context"
	"sync"

	"github.com/ritamzico/implica/internal/refs"
)

// batchResult pairs an indexed Query's outcome so Batch can report results
// in caller order despite running them concurrently, the same indexed
// result-channel shape as the teacher's composite_queries.go resultWrapper.
type batchResult struct {
	index int
	rows  []RowRefs
	err   error
}

// RowRefs is one returned row.
type RowRefs = map[string]refs.Ref

// Batch runs several independent queries concurrently against the same
// store and returns each query's rows as its own slice, in the order of
// queries; rows of different queries are not merged (SPEC_FULL.md §11's supplemented
// MultiQuery-style fan-out, repurposing the teacher's MultiQuery/
// executeConcurrent composite-query pattern from probabilistic sub-queries
// to independent MATCH/CREATE pipelines). The first query to fail cancels
// the rest; Batch returns that error.
func Batch(ctx context.Context, queries []*Query, vars []string) ([][]RowRefs, error) {
	if len(queries) == 0 {
		return nil, invalidQuery("batch requires at least one query")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([][]RowRefs, len(queries))
	resCh := make(chan batchResult, len(queries))

	var wg sync.WaitGroup
	wg.Add(len(queries))
	for i, q := range queries {
		go func(i int, q *Query) {
			defer wg.Done()
			rows, err := q.Return(ctx, vars...)
			resCh <- batchResult{index: i, rows: rows, err: err}
		}(i, q)
	}

	go func() {
		wg.Wait()
		close(resCh)
	}()

	for br := range resCh {
		if br.err != nil {
			cancel()
			return nil, br.err
		}
		results[br.index] = br.rows
	}
	return results, nil
}
