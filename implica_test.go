package implica

import (
	"context"
	"testing"

	"github.com/ritamzico/implica/internal/typing"
)

func TestGraphCreateAndMatch(t *testing.T) {
	g := New()
	q := g.Query()
	if _, err := q.Create("(a:A) -[:(A -> B)]-> (b:B)"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	typA, _ := typing.NewVariable("A")
	typB, _ := typing.NewVariable("B")
	arrow := typing.NewArrow(typA, typB)
	f, _ := typing.NewBasic("f", arrow)
	g.RegisterConstant(arrow, f)

	if err := q.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}

	matchQ := g.Query()
	if _, err := matchQ.Match("(x:A) -[:(A -> B)]-> (y:B)"); err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	rows, err := matchQ.Return(context.Background(), "x", "y")
	if err != nil {
		t.Fatalf("Return failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %v, want exactly one row", rows)
	}
}

func TestGraphAddNodeBypassIdempotent(t *testing.T) {
	g := New()
	typA, _ := typing.NewVariable("A")

	uid1, err := g.AddNode(typA, nil)
	if err != nil {
		t.Fatalf("AddNode failed: %v", err)
	}
	uid2, err := g.AddNode(typA, nil)
	if err != nil {
		t.Fatalf("second AddNode should not error: %v", err)
	}
	if uid1 != uid2 {
		t.Error("AddNode should be idempotent for the same type")
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestGraphAddEdgeRequiresExistingNodes(t *testing.T) {
	g := New()
	typA, _ := typing.NewVariable("A")
	typB, _ := typing.NewVariable("B")
	arrow := typing.NewArrow(typA, typB)
	f, _ := typing.NewBasic("f", arrow)

	if _, _, err := g.AddEdge(f); err == nil {
		t.Error("AddEdge should fail when its endpoints are not yet nodes")
	}
}

func TestRegisterAndUnregisterConstant(t *testing.T) {
	g := New()
	typA, _ := typing.NewVariable("A")
	zero, _ := typing.NewBasic("zero", typA)

	g.RegisterConstant(typA, zero)
	q := g.Query()
	if _, err := q.Create("(a:A)"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := q.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	g.UnregisterConstant(typA)

	// A second, independent graph with no registered constant still
	// succeeds since the node schema here carries no term requirement.
	other := New()
	q2 := other.Query()
	if _, err := q2.Create("(a:A)"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := q2.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
}

func TestBatchRunsIndependentQueries(t *testing.T) {
	g := New()
	q1 := g.Query()
	q1.Create("(a:A)")
	q2 := g.Query()
	q2.Create("(b:B)")

	results, err := Batch(context.Background(), []*Query{q1, q2}, nil)
	if err != nil {
		t.Fatalf("Batch failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %v, want 2 entries", results)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
}
