// Package refs implements the opaque reference handles of spec.md §6:
// stable, graph-backed handles projected from a row's bindings by
// internal/query's Return. Grounded on the teacher's internal/result.Result
// interface shape (a small tagged interface with a String() method), adapted
// here from "a query's output value" to "a single bound element".
package refs

import (
	"fmt"

	"github.com/ritamzico/implica/internal/ident"
	"github.com/ritamzico/implica/internal/match"
	"github.com/ritamzico/implica/internal/props"
	"github.com/ritamzico/implica/internal/store"
	"github.com/ritamzico/implica/internal/typing"
)

// Ref is an opaque handle to a bound element: a node, an edge, a type, or a
// term. Node and edge references carry a shared reference to the store they
// were produced from, so dereferencing stays valid as long as the underlying
// element exists; type and term references carry the bound value itself and
// hold no store reference.
type Ref interface {
	Uid() string
	Properties() (map[string]props.Value, bool)
	String() string
}

// FromBinding projects a match.Binding into the opaque reference spec.md §6
// names for its kind.
func FromBinding(st *store.Store, b match.Binding) (Ref, error) {
	switch b.Kind {
	case match.NodeBinding:
		return NodeRef{st: st, uid: b.Node}, nil
	case match.EdgeBinding:
		return EdgeRef{st: st, start: b.Edge.Start, end: b.Edge.End}, nil
	case match.TypeBinding:
		return TypeRef{typ: b.Type}, nil
	case match.TermBinding:
		return TermRef{term: b.Term}, nil
	default:
		return nil, fmt.Errorf("refs: unknown binding kind %v", b.Kind)
	}
}

// NodeRef is a handle to a node, identified by its type Uid (spec.md §3: a
// node's identity is its type's Uid).
type NodeRef struct {
	st  *store.Store
	uid ident.Uid
}

func (r NodeRef) Uid() string { return r.uid.Hex() }

func (r NodeRef) Properties() (map[string]props.Value, bool) {
	pm, ok := r.st.NodeProps(r.uid)
	if !ok {
		return nil, false
	}
	return pm.Snapshot(), true
}

func (r NodeRef) String() string {
	typ, err := r.st.TypeFromUid(r.uid)
	if err != nil {
		return fmt.Sprintf("Node(%s)", r.uid.Hex())
	}
	return fmt.Sprintf("Node(%s: %s)", r.uid.Hex(), typ.String())
}

// EdgeRef is a handle to an edge, identified by its endpoint node Uids.
type EdgeRef struct {
	st         *store.Store
	start, end ident.Uid
}

// Uid returns the concatenation of the endpoint hexes; an edge has no Uid of
// its own, only the (start, end) pair spec.md §4.4 keys it by.
func (r EdgeRef) Uid() string { return r.start.Hex() + ":" + r.end.Hex() }

func (r EdgeRef) Properties() (map[string]props.Value, bool) {
	pm, ok := r.st.EdgeProps(r.start, r.end)
	if !ok {
		return nil, false
	}
	return pm.Snapshot(), true
}

func (r EdgeRef) String() string {
	typeUid, ok := r.st.TypeForEdge(r.start, r.end)
	if !ok {
		return fmt.Sprintf("Edge(%s -> %s)", r.start.Hex(), r.end.Hex())
	}
	tm, err := r.st.TermFromUid(typeUid)
	if err != nil {
		return fmt.Sprintf("Edge(%s -> %s)", r.start.Hex(), r.end.Hex())
	}
	return fmt.Sprintf("Edge(%s -> %s: %s)", r.start.Hex(), r.end.Hex(), tm.String())
}

// TypeRef is a handle to a type value bound by a capture (e.g. `(n:(T: * ->
// *))` binds T to a TypeRef). It carries the type directly rather than a
// store lookup, since the bound value may not itself be a node's type.
type TypeRef struct {
	typ *typing.Type
}

func (r TypeRef) Uid() string { return r.typ.Uid().Hex() }
func (r TypeRef) Properties() (map[string]props.Value, bool) { return nil, false }
func (r TypeRef) String() string { return r.typ.String() }

// TermRef is TypeRef's counterpart for a bound term.
type TermRef struct {
	term *typing.Term
}

func (r TermRef) Uid() string { return r.term.Uid().Hex() }
func (r TermRef) Properties() (map[string]props.Value, bool) { return nil, false }
func (r TermRef) String() string { return r.term.String() }
