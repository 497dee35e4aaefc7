package matcher

import (
	"context"

	"github.com/ritamzico/implica/internal/concurrency"
	"github.com/ritamzico/implica/internal/match"
)

// fanOutFrontier runs worker over every row in ms's current frontier in
// parallel, replacing the frontier with the concatenation of each row's
// successor matches (each registered against ms via Extend, preserving
// lineage). A row that produces zero successors simply drops out.
func fanOutFrontier(ctx context.Context, ms *match.MatchSet, worker func(*match.Match) ([]*match.Match, error)) error {
	return concurrency.FanOutFrontier(ctx, ms, func(msg string) error { return indexCorruption(msg) }, worker)
}
