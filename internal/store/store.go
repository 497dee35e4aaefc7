// Package store implements the concurrent graph store of spec.md §4.4: the
// type/term intern tables and the node/edge membership and adjacency
// indices. It is grounded on the teacher's
// internal/graph/probabilistic_adjacency_list_graph.go, generalizing its
// single-mutex map-of-maps into lock-sharded containers (see shard.go) and
// replacing its probabilistic edge weights with typed realizing terms.
package store

import (
	"github.com/ritamzico/implica/internal/ident"
	"github.com/ritamzico/implica/internal/props"
	"github.com/ritamzico/implica/internal/typing"
)

// Store is the concurrent graph store. The zero value is not usable; use
// New.
type Store struct {
	typeIndex *uidMap[typeRep] // type_index
	termIndex *uidMap[termRep] // term_index, keyed by type Uid

	typeToEdge *uidMap[edgeKey] // type_to_edge_index
	edgeToType *edgeMap[ident.Uid]

	nodes *uidMap[struct{}]
	edges *edgeMap[struct{}]

	startToEdge *uidSetMap
	endToEdge   *uidSetMap

	nodeProps *uidMap[*props.PropertyMap]
	edgeProps *edgeMap[*props.PropertyMap]
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		typeIndex:   newUidMap[typeRep](),
		termIndex:   newUidMap[termRep](),
		typeToEdge:  newUidMap[edgeKey](),
		edgeToType:  newEdgeMap[ident.Uid](),
		nodes:       newUidMap[struct{}](),
		edges:       newEdgeMap[struct{}](),
		startToEdge: newUidSetMap(),
		endToEdge:   newUidSetMap(),
		nodeProps:   newUidMap[*props.PropertyMap](),
		edgeProps:   newEdgeMap[*props.PropertyMap](),
	}
}

// InsertType interns t and every subtype reachable from it, returning t's
// Uid. Re-interning a previously seen Uid is a no-op (hash-consing, I1).
func (s *Store) InsertType(t *typing.Type) ident.Uid {
	uid := t.Uid()
	if s.typeIndex.Has(uid) {
		return uid
	}
	switch t.Kind() {
	case typing.VariableKind:
		s.typeIndex.Set(uid, typeRep{kind: typing.VariableKind, name: t.Name()})
	case typing.ArrowKind:
		s.InsertType(t.Left())
		s.InsertType(t.Right())
		s.typeIndex.Set(uid, typeRep{
			kind:  typing.ArrowKind,
			left:  t.Left().Uid(),
			right: t.Right().Uid(),
		})
	}
	return uid
}

// InsertTerm interns tm's type and stores tm as the canonical realizer of
// that type in term_index, returning the type Uid. Re-inserting a term for
// an already-realized type overwrites with an identical record when tm is
// truly the same term (I4 guarantees the record would be identical); callers
// that care about a conflicting second realizer must check TermFromUid
// first.
func (s *Store) InsertTerm(tm *typing.Term) ident.Uid {
	typeUid := s.InsertType(tm.Type())
	var rep termRep
	switch tm.Kind() {
	case typing.BasicKind:
		rep = termRep{kind: typing.BasicKind, name: tm.Name()}
	case typing.ApplicationKind:
		functionTypeUid := s.InsertTerm(tm.Function())
		argumentTypeUid := s.InsertTerm(tm.Argument())
		rep = termRep{kind: typing.ApplicationKind, functionUid: functionTypeUid, argumentUid: argumentTypeUid}
	}
	s.termIndex.Set(typeUid, rep)
	return typeUid
}

// TypeFromUid recursively resolves uid back into a *typing.Type.
func (s *Store) TypeFromUid(uid ident.Uid) (*typing.Type, error) {
	rep, ok := s.typeIndex.Get(uid)
	if !ok {
		return nil, indexCorruption("no type registered for Uid " + uid.Hex())
	}
	switch rep.kind {
	case typing.VariableKind:
		return typing.NewVariable(rep.name)
	case typing.ArrowKind:
		left, err := s.TypeFromUid(rep.left)
		if err != nil {
			return nil, err
		}
		right, err := s.TypeFromUid(rep.right)
		if err != nil {
			return nil, err
		}
		return typing.NewArrow(left, right), nil
	default:
		return nil, indexCorruption("unrecognized type kind for Uid " + uid.Hex())
	}
}

// TermFromUid recursively resolves the canonical term realizing typeUid.
func (s *Store) TermFromUid(typeUid ident.Uid) (*typing.Term, error) {
	rep, ok := s.termIndex.Get(typeUid)
	if !ok {
		return nil, indexCorruption("no term registered for type Uid " + typeUid.Hex())
	}
	typ, err := s.TypeFromUid(typeUid)
	if err != nil {
		return nil, err
	}
	switch rep.kind {
	case typing.BasicKind:
		return typing.NewBasic(rep.name, typ)
	case typing.ApplicationKind:
		function, err := s.TermFromUid(rep.functionUid)
		if err != nil {
			return nil, err
		}
		argument, err := s.TermFromUid(rep.argumentUid)
		if err != nil {
			return nil, err
		}
		return typing.NewApplication(function, argument)
	default:
		return nil, indexCorruption("unrecognized term kind for type Uid " + typeUid.Hex())
	}
}

// HasTerm reports whether typeUid currently has a canonical realizing term.
func (s *Store) HasTerm(typeUid ident.Uid) bool {
	return s.termIndex.Has(typeUid)
}

// AddNode inserts a node of type typ, optionally realized by term (which
// must have type typ, I3). If a node with typ's Uid already exists this is
// idempotent: it returns the existing Uid wrapped in NodeAlreadyExists,
// without touching the existing node's term.
func (s *Store) AddNode(typ *typing.Type, term *typing.Term) (ident.Uid, error) {
	typeUid := s.InsertType(typ)
	if _, existed := s.nodes.SetIfAbsent(typeUid, struct{}{}); !existed {
		return typeUid, NodeAlreadyExists{Existing: typeUid}
	}
	if term != nil {
		if !typing.Equal(term.Type(), typ) {
			s.nodes.Delete(typeUid)
			return ident.Zero, invalidTerm("node term's type does not match node type")
		}
		s.InsertTerm(term)
	}
	s.nodeProps.Set(typeUid, props.NewPropertyMap(nil))
	return typeUid, nil
}

// AddEdge inserts an edge realized by term, whose type must be an arrow
// (I2: both endpoints must already be nodes). Duplicate edges collapse
// silently to the existing (start, end) pair.
func (s *Store) AddEdge(term *typing.Term) (ident.Uid, ident.Uid, error) {
	typ := term.Type()
	if typ.Kind() != typing.ArrowKind {
		return ident.Zero, ident.Zero, invalidTerm("edge term's type must be an arrow")
	}
	start, end := typ.Left().Uid(), typ.Right().Uid()
	if !s.nodes.Has(start) {
		return ident.Zero, ident.Zero, unknownNode(start)
	}
	if !s.nodes.Has(end) {
		return ident.Zero, ident.Zero, unknownNode(end)
	}
	key := edgeKey{Start: start, End: end}
	if s.edges.Has(key) {
		return start, end, nil
	}
	typeUid := s.InsertTerm(term)
	s.typeToEdge.Set(typeUid, key)
	s.edgeToType.Set(key, typeUid)
	s.edges.Set(key, struct{}{})
	s.startToEdge.Add(start, key)
	s.endToEdge.Add(end, key)
	s.edgeProps.Set(key, props.NewPropertyMap(nil))
	return start, end, nil
}

// RemoveEdge deletes the edge (start, end) and its adjacency bookkeeping.
// The realizing term and its type stay permanently interned (I1).
func (s *Store) RemoveEdge(start, end ident.Uid) error {
	key := edgeKey{Start: start, End: end}
	if !s.edges.Has(key) {
		return unknownEdge(start, end)
	}
	if typeUid, ok := s.edgeToType.Get(key); ok {
		s.typeToEdge.Delete(typeUid)
	}
	s.edgeToType.Delete(key)
	s.edges.Delete(key)
	s.startToEdge.Remove(start, key)
	s.endToEdge.Remove(end, key)
	s.edgeProps.Delete(key)
	return nil
}

// RemoveNode deletes node uid and every edge incident to it (I5: node
// removal is atomic with incident-edge removal from the caller's point of
// view — no partial state is ever observable through the public API, since
// Store's own callers never interleave another Store call mid-removal).
func (s *Store) RemoveNode(uid ident.Uid) error {
	if !s.nodes.Has(uid) {
		return unknownNode(uid)
	}
	for _, key := range s.startToEdge.Get(uid) {
		_ = s.RemoveEdge(key.Start, key.End)
	}
	for _, key := range s.endToEdge.Get(uid) {
		_ = s.RemoveEdge(key.Start, key.End)
	}
	s.nodes.Delete(uid)
	s.nodeProps.Delete(uid)
	return nil
}

// HasNode reports whether uid names a live node.
func (s *Store) HasNode(uid ident.Uid) bool { return s.nodes.Has(uid) }

// HasEdge reports whether (start, end) names a live edge.
func (s *Store) HasEdge(start, end ident.Uid) bool {
	return s.edges.Has(edgeKey{Start: start, End: end})
}

// EdgeForType returns the (start, end) pair currently realizing typeUid as
// an edge, if any.
func (s *Store) EdgeForType(typeUid ident.Uid) (start, end ident.Uid, ok bool) {
	key, ok := s.typeToEdge.Get(typeUid)
	return key.Start, key.End, ok
}

// TypeForEdge returns the arrow type Uid realized by the edge (start, end).
func (s *Store) TypeForEdge(start, end ident.Uid) (ident.Uid, bool) {
	return s.edgeToType.Get(edgeKey{Start: start, End: end})
}

// OutEdges returns every edge starting at uid.
func (s *Store) OutEdges(uid ident.Uid) []EdgeKeyPair {
	return toPairs(s.startToEdge.Get(uid))
}

// InEdges returns every edge ending at uid.
func (s *Store) InEdges(uid ident.Uid) []EdgeKeyPair {
	return toPairs(s.endToEdge.Get(uid))
}

// EdgeKeyPair is the exported form of a directed node pair identifying an
// edge.
type EdgeKeyPair struct {
	Start, End ident.Uid
}

func toPairs(keys []edgeKey) []EdgeKeyPair {
	out := make([]EdgeKeyPair, len(keys))
	for i, k := range keys {
		out[i] = EdgeKeyPair{Start: k.Start, End: k.End}
	}
	return out
}

// AllNodes returns every live node Uid.
func (s *Store) AllNodes() []ident.Uid { return s.nodes.Keys() }

// AllEdges returns every live edge.
func (s *Store) AllEdges() []EdgeKeyPair { return toPairs(s.edges.Keys()) }

// AllTypes returns every interned type Uid, including types never
// instantiated as a node (e.g. an edge's own arrow type).
func (s *Store) AllTypes() []ident.Uid { return s.typeIndex.Keys() }

// AllTermTypes returns every type Uid that currently has a canonical
// realizing term registered in term_index.
func (s *Store) AllTermTypes() []ident.Uid { return s.termIndex.Keys() }

// NodeProps returns the property map for node uid, if the node exists.
func (s *Store) NodeProps(uid ident.Uid) (*props.PropertyMap, bool) {
	return s.nodeProps.Get(uid)
}

// EdgeProps returns the property map for edge (start, end), if it exists.
func (s *Store) EdgeProps(start, end ident.Uid) (*props.PropertyMap, bool) {
	return s.edgeProps.Get(edgeKey{Start: start, End: end})
}
