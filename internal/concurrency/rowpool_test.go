package concurrency

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/ritamzico/implica/internal/match"
)

func TestForEachRowRunsAll(t *testing.T) {
	var count int64
	err := ForEachRow(context.Background(), 10, func(ctx context.Context, i int) error {
		atomic.AddInt64(&count, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEachRow failed: %v", err)
	}
	if count != 10 {
		t.Errorf("count = %d, want 10", count)
	}
}

func TestForEachRowZero(t *testing.T) {
	called := false
	err := ForEachRow(context.Background(), 0, func(ctx context.Context, i int) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("ForEachRow failed: %v", err)
	}
	if called {
		t.Error("ForEachRow should not invoke work for n == 0")
	}
}

func TestForEachRowPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := ForEachRow(context.Background(), 5, func(ctx context.Context, i int) error {
		if i == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("ForEachRow error = %v, want %v", err, boom)
	}
}

func TestForEachRowCancelsOnError(t *testing.T) {
	boom := errors.New("boom")
	err := ForEachRow(context.Background(), 20, func(ctx context.Context, i int) error {
		if i == 0 {
			return boom
		}
		<-ctx.Done()
		return ctx.Err()
	})
	if err == nil {
		t.Fatal("ForEachRow should return an error")
	}
}

func TestFanOutFrontierAdvancesAndPreservesLineage(t *testing.T) {
	ms := match.New()
	root := ms.Current()[0]

	err := FanOutFrontier(context.Background(), ms, nil, func(m *match.Match) ([]*match.Match, error) {
		return []*match.Match{m, m}, nil
	})
	if err != nil {
		t.Fatalf("FanOutFrontier failed: %v", err)
	}

	current := ms.Current()
	if len(current) != 2 {
		t.Fatalf("frontier = %v, want 2 rows (one row fanning out to two)", current)
	}
	for _, id := range current {
		prev, ok := ms.Prev(id)
		if !ok || prev != root {
			t.Errorf("Prev(%v) = (%v, %v), want (%v, true)", id, prev, ok, root)
		}
	}
}

func TestFanOutFrontierDropsEmptyRows(t *testing.T) {
	ms := match.New()

	err := FanOutFrontier(context.Background(), ms, nil, func(m *match.Match) ([]*match.Match, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("FanOutFrontier failed: %v", err)
	}
	if len(ms.Current()) != 0 {
		t.Error("a row producing zero successors should drop out of the frontier")
	}
}

func TestFanOutFrontierErrorLeavesFrontierUnchanged(t *testing.T) {
	ms := match.New()
	before := ms.Current()

	boom := errors.New("boom")
	err := FanOutFrontier(context.Background(), ms, nil, func(m *match.Match) ([]*match.Match, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("FanOutFrontier error = %v, want %v", err, boom)
	}
	after := ms.Current()
	if len(before) != len(after) || before[0] != after[0] {
		t.Errorf("frontier changed after an error: before=%v after=%v", before, after)
	}
}
