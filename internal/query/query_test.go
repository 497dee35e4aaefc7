package query

import (
	"context"
	"testing"

	"github.com/ritamzico/implica/internal/constants"
	"github.com/ritamzico/implica/internal/store"
	"github.com/ritamzico/implica/internal/typing"
)

func TestCreateThenMatchSingleNode(t *testing.T) {
	st := store.New()

	create := New(st, nil)
	if _, err := create.Create("(a:A)"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := create.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	match := New(st, nil)
	if _, err := match.Match("(x:A)"); err != nil {
		t.Fatalf("Match: %v", err)
	}
	rows, err := match.Return(context.Background(), "x")
	if err != nil {
		t.Fatalf("Return: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(rows))
	}
	if len(st.AllNodes()) != 1 {
		t.Fatalf("expected exactly one node in the store, got %d", len(st.AllNodes()))
	}
	if got := rows[0]["x"].Uid(); got != st.AllNodes()[0].Hex() {
		t.Fatalf("returned ref uid %q does not match the created node %q", got, st.AllNodes()[0].Hex())
	}
}

func TestCreatePathWithEdge(t *testing.T) {
	st := store.New()

	create := New(st, arrowRegistry(t, "A", "B", "f"))
	if _, err := create.Create("(x:A) -[:(A -> B)]-> (y:B)"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := create.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(st.AllNodes()) != 2 {
		t.Fatalf("expected two nodes, got %d", len(st.AllNodes()))
	}
	if len(st.AllEdges()) != 1 {
		t.Fatalf("expected one edge, got %d", len(st.AllEdges()))
	}

	match := New(st, nil)
	if _, err := match.Match("(x:A) -[e]-> (y:B)"); err != nil {
		t.Fatalf("Match: %v", err)
	}
	rows, err := match.Return(context.Background(), "x", "e", "y")
	if err != nil {
		t.Fatalf("Return: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(rows))
	}
}

func TestEdgeDirectionRoundTrip(t *testing.T) {
	st := store.New()

	create := New(st, arrowRegistry(t, "B", "A", "g"))
	if _, err := create.Create("(x:A)"); err != nil {
		t.Fatalf("Create x: %v", err)
	}
	if _, err := create.Create("(y:B)"); err != nil {
		t.Fatalf("Create y: %v", err)
	}
	if _, err := create.Create("(x)<-[:(B -> A)]-(y)"); err != nil {
		t.Fatalf("Create edge: %v", err)
	}
	if err := create.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	forward := New(st, nil)
	if _, err := forward.Match("(x:A)<-[e]-(y:B)"); err != nil {
		t.Fatalf("Match forward: %v", err)
	}
	forwardRows, err := forward.Return(context.Background(), "e")
	if err != nil {
		t.Fatalf("Return forward: %v", err)
	}

	backward := New(st, nil)
	if _, err := backward.Match("(y:B)-[e]->(x:A)"); err != nil {
		t.Fatalf("Match backward: %v", err)
	}
	backwardRows, err := backward.Return(context.Background(), "e")
	if err != nil {
		t.Fatalf("Return backward: %v", err)
	}

	if len(forwardRows) != 1 || len(backwardRows) != 1 {
		t.Fatalf("expected one row each, got %d and %d", len(forwardRows), len(backwardRows))
	}
	if forwardRows[0]["e"].Uid() != backwardRows[0]["e"].Uid() {
		t.Fatalf("forward and backward traversal did not resolve to the same edge")
	}
}

func TestRemoveNodeDropsIncidentEdges(t *testing.T) {
	st := store.New()

	create := New(st, arrowRegistry(t, "A", "B", "f"))
	if _, err := create.Create("(x:A) -[:(A -> B)]-> (y:B)"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := create.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	removeQ := New(st, nil)
	if _, err := removeQ.Match("(x:A)"); err != nil {
		t.Fatalf("Match: %v", err)
	}
	removeQ.Remove("x")
	if err := removeQ.Execute(context.Background()); err != nil {
		t.Fatalf("Execute remove: %v", err)
	}

	check := New(st, nil)
	if _, err := check.Match("(x:A)"); err != nil {
		t.Fatalf("Match after remove: %v", err)
	}
	rows, err := check.Return(context.Background(), "x")
	if err != nil {
		t.Fatalf("Return after remove: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows after removal, got %d", len(rows))
	}
	if len(st.AllEdges()) != 0 {
		t.Fatalf("expected no edges to remain after removing an endpoint, got %d", len(st.AllEdges()))
	}
}

func TestSetWithoutOverwriteRejectsExistingKey(t *testing.T) {
	st := store.New()

	create := New(st, nil)
	if _, err := create.Create("(a:A)"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := create.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	setOnce := New(st, nil)
	if _, err := setOnce.Match("(n:A)"); err != nil {
		t.Fatalf("Match: %v", err)
	}
	if _, err := setOnce.Set("n", "{k: 1}", false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := setOnce.Execute(context.Background()); err != nil {
		t.Fatalf("Execute first SET: %v", err)
	}

	setAgain := New(st, nil)
	if _, err := setAgain.Match("(n:A)"); err != nil {
		t.Fatalf("Match: %v", err)
	}
	if _, err := setAgain.Set("n", "{k: 2}", false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := setAgain.Execute(context.Background()); err == nil {
		t.Fatalf("expected SET without overwrite to fail on an existing key")
	}
}

func TestRemoveOfTypeBindingIsInvalidQuery(t *testing.T) {
	st := store.New()
	create := New(st, nil)
	if _, err := create.Create("(n:(A -> A))"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := create.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	q := New(st, nil)
	if _, err := q.Match("(n:(T: * -> *))"); err != nil {
		t.Fatalf("Match: %v", err)
	}
	q.Remove("T")
	if err := q.Execute(context.Background()); err == nil {
		t.Fatalf("expected REMOVE on a type capture to fail")
	}
}

func TestBatchRunsQueriesConcurrently(t *testing.T) {
	st := store.New()
	setup := New(st, nil)
	if _, err := setup.Create("(a:A)"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := setup.Create("(b:B)"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := setup.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	q1 := New(st, nil)
	if _, err := q1.Match("(x:A)"); err != nil {
		t.Fatalf("Match: %v", err)
	}
	q2 := New(st, nil)
	if _, err := q2.Match("(x:B)"); err != nil {
		t.Fatalf("Match: %v", err)
	}

	results, err := Batch(context.Background(), []*Query{q1, q2}, []string{"x"})
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(results) != 2 || len(results[0]) != 1 || len(results[1]) != 1 {
		t.Fatalf("expected one row per query, got %v", results)
	}
}

func TestConstantRegistryFallback(t *testing.T) {
	st := store.New()
	registry := constants.NewRegistry()

	typA, err := typing.NewVariable("A")
	if err != nil {
		t.Fatalf("NewVariable: %v", err)
	}
	basic, err := typing.NewBasic("unit", typA)
	if err != nil {
		t.Fatalf("NewBasic: %v", err)
	}
	registry.Register(typA.Uid(), basic)

	q := New(st, registry)
	if _, err := q.Create("(a:A)"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := q.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(st.AllNodes()) != 1 {
		t.Fatalf("expected one node, got %d", len(st.AllNodes()))
	}
	if !st.HasTerm(st.AllNodes()[0]) {
		t.Fatalf("expected the constant registry to realize a/:A with a term")
	}
}

// arrowRegistry returns a constants registry that realizes the arrow type
// from -> to with a basic term named name, so that CREATE can determine the
// term of an edge of that type.
func arrowRegistry(t *testing.T, from, to, name string) *constants.Registry {
	t.Helper()
	left, err := typing.NewVariable(from)
	if err != nil {
		t.Fatalf("NewVariable: %v", err)
	}
	right, err := typing.NewVariable(to)
	if err != nil {
		t.Fatalf("NewVariable: %v", err)
	}
	term, err := typing.NewBasic(name, typing.NewArrow(left, right))
	if err != nil {
		t.Fatalf("NewBasic: %v", err)
	}
	registry := constants.NewRegistry()
	registry.Register(term.Type().Uid(), term)
	return registry
}
