package matcher

import (
	"context"

	"github.com/ritamzico/implica/internal/concurrency"
)

// forEachRow is matcher's entry point into the shared row fan-out primitive
// (internal/concurrency), grounded on the teacher's executeConcurrent
// helper (internal/query/composite_queries.go).
func forEachRow(ctx context.Context, n int, work func(ctx context.Context, i int) error) error {
	return concurrency.ForEachRow(ctx, n, work)
}
