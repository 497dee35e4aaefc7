// Package createpath implements the create-path engine of spec.md §4.7:
// given a path pattern that may leave types or terms unspecified on some
// nodes or edges, infer concrete types and terms from neighbors and the
// current match, then insert the missing nodes and edges. Grounded on the
// teacher's internal/inference/graph_traversals.go memoized-traversal style
// (explicit visited/queue state, recursive helper with early-return error),
// generalized here from a single DFS/BFS sweep to a fixed-point work queue.
package createpath

import (
	"context"

	"github.com/ritamzico/implica/internal/concurrency"
	"github.com/ritamzico/implica/internal/constants"
	"github.com/ritamzico/implica/internal/ident"
	"github.com/ritamzico/implica/internal/match"
	"github.com/ritamzico/implica/internal/schema"
	"github.com/ritamzico/implica/internal/store"
	"github.com/ritamzico/implica/internal/typing"
)

// CreatePath runs §4.7 over every row in ms's current frontier, in
// parallel, replacing the frontier with the resulting rows. registry may be
// nil, in which case the constant-from-type fallback never fires.
func CreatePath(ctx context.Context, st *store.Store, registry *constants.Registry, ms *match.MatchSet, path *schema.PathPattern) error {
	return concurrency.FanOutFrontier(ctx, ms, func(msg string) error { return indexCorruption(msg) }, func(m *match.Match) ([]*match.Match, error) {
		next, err := createRow(st, registry, m, path)
		if err != nil {
			return nil, err
		}
		return []*match.Match{next}, nil
	})
}

func createRow(st *store.Store, registry *constants.Registry, m *match.Match, path *schema.PathPattern) (*match.Match, error) {
	n := len(path.Nodes)
	if n == 0 {
		return m, nil
	}

	nodes := make([]*nodeState, n)
	for i, ns := range path.Nodes {
		nodes[i] = newNodeState(ns)
	}
	edges := make([]*edgeState, n-1)
	for i, es := range path.Edges {
		edges[i] = newEdgeState(es)
	}

	rc := &rowCtx{st: st, registry: registry, m: m, nodes: nodes, edges: edges, queue: newWorkQueue()}
	for i := 0; i < n; i++ {
		rc.queue.push(queueItem{i, true})
	}
	for i := range edges {
		rc.queue.push(queueItem{i, false})
	}

	for {
		item, ok := rc.queue.pop()
		if !ok {
			break
		}
		var err error
		if item.isNode {
			err = propagateNode(rc, item.index)
		} else {
			err = propagateEdge(rc, item.index)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := checkDetermined(nodes, edges); err != nil {
		return nil, err
	}

	return insertRow(st, m, nodes, edges)
}

func checkDetermined(nodes []*nodeState, edges []*edgeState) error {
	for _, nd := range nodes {
		if nd.typ == nil || !nd.typeMatched {
			return invalidType("a node's type could not be determined")
		}
		if nd.term != nil && !nd.termMatched {
			return invalidTerm("a node's term does not satisfy its term schema")
		}
	}
	for _, ed := range edges {
		if ed.term == nil {
			return invalidTerm("an edge's term could not be determined")
		}
		if ed.typ != nil && !typing.Equal(ed.typ, ed.term.Type()) {
			return invalidType("an edge's inferred type disagrees with its term's type")
		}
		if !ed.typeMatched || !ed.termMatched {
			return invalidType("an edge's schema could not be fully verified")
		}
	}
	return nil
}

func insertRow(st *store.Store, m *match.Match, nodes []*nodeState, edges []*edgeState) (*match.Match, error) {
	next := m

	for _, nd := range nodes {
		var uid ident.Uid
		alreadyBound := false
		if nd.variable != "" {
			if b, ok := m.Get(nd.variable); ok {
				uid = b.Node
				alreadyBound = true
			}
		}
		if !alreadyBound {
			got, err := st.AddNode(nd.typ, nd.term)
			if err != nil {
				if existing, ok := err.(store.NodeAlreadyExists); ok {
					got = existing.Existing
				} else {
					return nil, err
				}
			}
			uid = got
		}

		if nd.variable != "" && !alreadyBound {
			var bindErr error
			next, bindErr = next.Insert(nd.variable, match.BindNode(uid))
			if bindErr != nil {
				return nil, bindErr
			}
		}
	}

	for _, ed := range edges {
		_, alreadyBound := m.Get(ed.variable)
		alreadyBound = alreadyBound && ed.variable != ""

		start, end, err := st.AddEdge(ed.term)
		if err != nil {
			return nil, err
		}

		if ed.variable != "" && !alreadyBound {
			var bindErr error
			next, bindErr = next.Insert(ed.variable, match.BindEdge(start, end))
			if bindErr != nil {
				return nil, bindErr
			}
		}
	}

	return next, nil
}
