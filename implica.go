// Package implica is the public facade of the typed graph database: an
// in-memory store whose nodes are types and whose edges are terms of a
// simply-typed lambda calculus. Grounded on the teacher's pgraph.go facade
// shape (a thin wrapper wiring the internal packages together and
// re-exporting the handful of types a caller needs), generalized from "load
// or build a probabilistic graph, run one DSL line against it" to "build a
// graph, build queries against it, run them".
package implica

import (
	"context"

	"github.com/ritamzico/implica/internal/constants"
	"github.com/ritamzico/implica/internal/query"
	"github.com/ritamzico/implica/internal/refs"
	"github.com/ritamzico/implica/internal/store"
	"github.com/ritamzico/implica/internal/typing"
)

// Query and Ref are re-exported so callers never need to import the
// internal packages directly.
type (
	Query = query.Query
	Ref   = refs.Ref
)

// Batch runs several independent queries concurrently against the same
// graph and returns their projected rows in caller order (SPEC_FULL.md
// §11's supplemented MultiQuery-style composition).
func Batch(ctx context.Context, queries []*Query, vars []string) ([][]map[string]Ref, error) {
	return query.Batch(ctx, queries, vars)
}

// Graph is a live typed graph database: a store plus the constants registry
// consulted by CREATE's constant-from-type fallback (spec.md §6).
type Graph struct {
	store    *store.Store
	registry *constants.Registry
}

// New constructs an empty Graph.
func New() *Graph {
	return &Graph{
		store:    store.New(),
		registry: constants.NewRegistry(),
	}
}

// Query returns a fresh, unexecuted Query over this Graph.
func (g *Graph) Query() *Query {
	return query.New(g.store, g.registry)
}

// RegisterConstant tells the constant-from-type fallback to realize typ
// with term whenever CREATE needs a term for typ and none is otherwise
// determined (spec.md §6's external infer_term collaborator).
func (g *Graph) RegisterConstant(typ *typing.Type, term *typing.Term) {
	g.registry.Register(typ.Uid(), term)
}

// UnregisterConstant removes typ's registered constant, if any.
func (g *Graph) UnregisterConstant(typ *typing.Type) {
	g.registry.Unregister(typ.Uid())
}

// AddNode inserts a node directly, bypassing the query pipeline. It is
// idempotent: inserting the same type twice returns the first call's Uid.
func (g *Graph) AddNode(typ *typing.Type, term *typing.Term) (string, error) {
	uid, err := g.store.AddNode(typ, term)
	if err != nil {
		if existing, ok := err.(store.NodeAlreadyExists); ok {
			return existing.Existing.Hex(), nil
		}
		return "", err
	}
	return uid.Hex(), nil
}

// AddEdge inserts an edge directly, bypassing the query pipeline. Both
// endpoint nodes must already exist (spec.md I2).
func (g *Graph) AddEdge(term *typing.Term) (start, end string, err error) {
	s, e, err := g.store.AddEdge(term)
	if err != nil {
		return "", "", err
	}
	return s.Hex(), e.Hex(), nil
}

// NodeCount and EdgeCount report the graph's current size.
func (g *Graph) NodeCount() int { return len(g.store.AllNodes()) }
func (g *Graph) EdgeCount() int { return len(g.store.AllEdges()) }
