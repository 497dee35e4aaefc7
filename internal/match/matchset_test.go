package match

import (
	"testing"

	"github.com/ritamzico/implica/internal/ident"
)

func TestNewSeedsRootRow(t *testing.T) {
	ms := New()
	current := ms.Current()
	if len(current) != 1 {
		t.Fatalf("New() frontier = %v, want exactly one root row", current)
	}
	m, ok := ms.MatchFor(current[0])
	if !ok {
		t.Fatal("root row should have a Match")
	}
	if len(m.Names()) != 0 {
		t.Error("root row's Match should be empty")
	}
}

func TestExtendAndAdvance(t *testing.T) {
	ms := New()
	root := ms.Current()[0]

	child := Empty()
	child, _ = child.Insert("x", BindNode(ident.HashVariable("A")))
	id := ms.Extend(root, child)

	// Extend alone must not move the frontier.
	if got := ms.Current(); len(got) != 1 || got[0] != root {
		t.Errorf("Extend should not change the frontier before Advance, got %v", got)
	}

	ms.Advance([]ID{id})
	if got := ms.Current(); len(got) != 1 || got[0] != id {
		t.Errorf("Advance should move the frontier to %v, got %v", id, got)
	}
}

func TestPrevOfRootIsFalse(t *testing.T) {
	ms := New()
	root := ms.Current()[0]
	if _, ok := ms.Prev(root); ok {
		t.Error("root row should have no predecessor")
	}
}

func TestPrevChain(t *testing.T) {
	ms := New()
	root := ms.Current()[0]
	a := ms.Extend(root, Empty())
	b := ms.Extend(a, Empty())

	prev, ok := ms.Prev(b)
	if !ok || prev != a {
		t.Errorf("Prev(b) = (%v, %v), want (%v, true)", prev, ok, a)
	}
}

func TestLineage(t *testing.T) {
	ms := New()
	root := ms.Current()[0]
	a := ms.Extend(root, Empty())
	b := ms.Extend(a, Empty())

	chain := ms.Lineage(b)
	want := []ID{root, a, b}
	if len(chain) != len(want) {
		t.Fatalf("Lineage(b) = %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Errorf("Lineage(b)[%d] = %v, want %v", i, chain[i], want[i])
		}
	}
}

func TestReplace(t *testing.T) {
	ms := New()
	root := ms.Current()[0]
	updated := Empty()
	updated, _ = updated.Insert("x", BindNode(ident.HashVariable("A")))

	ms.Replace(root, updated)
	m, ok := ms.MatchFor(root)
	if !ok {
		t.Fatal("MatchFor should still find the row after Replace")
	}
	if _, ok := m.Get("x"); !ok {
		t.Error("Replace should overwrite the Match stored at id")
	}
	if _, ok := ms.Prev(root); ok {
		t.Error("Replace should not change lineage")
	}
}
