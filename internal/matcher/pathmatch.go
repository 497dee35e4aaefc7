package matcher

import (
	"context"
	"fmt"

	"github.com/ritamzico/implica/internal/match"
	"github.com/ritamzico/implica/internal/schema"
	"github.com/ritamzico/implica/internal/store"
)

// MatchPath implements §4.6.5: match N0, then for each i match E_i using the
// surrounding nodes' variables as endpoint hints, then match N_i, which now
// filters on the endpoint bindings just inserted. Anonymous nodes and edges
// receive a generated placeholder variable (prefixed with '$', which no
// identifier the schema compiler accepts can ever collide with) so later
// tokens have something to hint against; every placeholder is stripped from
// the resulting rows once matching completes.
func MatchPath(ctx context.Context, st *store.Store, ms *match.MatchSet, path *schema.PathPattern) error {
	if len(path.Nodes) == 0 {
		return nil
	}

	placeholders := make([]string, 0)
	nodeVar := func(i int, n *schema.NodeSchema) string {
		if n.Variable != "" {
			return n.Variable
		}
		v := fmt.Sprintf("$node%d", i)
		placeholders = append(placeholders, v)
		return v
	}
	edgeVar := func(i int, e *schema.EdgeSchema) string {
		if e.Variable != "" {
			return e.Variable
		}
		v := fmt.Sprintf("$edge%d", i)
		placeholders = append(placeholders, v)
		return v
	}

	n0 := withVariable(path.Nodes[0], nodeVar(0, path.Nodes[0]))
	if err := MatchNode(ctx, st, ms, n0); err != nil {
		return err
	}
	prevVar := n0.Variable

	for i, e := range path.Edges {
		curNode := path.Nodes[i+1]
		curVar := nodeVar(i+1, curNode)

		eWithVar := withEdgeVariable(e, edgeVar(i, e))
		if err := MatchEdge(ctx, st, ms, eWithVar, endpointHint{Start: prevVar, End: curVar}); err != nil {
			return err
		}

		nWithVar := withVariable(curNode, curVar)
		if err := MatchNode(ctx, st, ms, nWithVar); err != nil {
			return err
		}
		prevVar = curVar
	}

	if len(placeholders) > 0 {
		stripPlaceholders(ms, placeholders)
	}
	return nil
}

func withVariable(n *schema.NodeSchema, variable string) *schema.NodeSchema {
	if n.Variable == variable {
		return n
	}
	cp := *n
	cp.Variable = variable
	return &cp
}

func withEdgeVariable(e *schema.EdgeSchema, variable string) *schema.EdgeSchema {
	if e.Variable == variable {
		return e
	}
	cp := *e
	cp.Variable = variable
	return &cp
}

func stripPlaceholders(ms *match.MatchSet, placeholders []string) {
	for _, id := range ms.Current() {
		m, ok := ms.MatchFor(id)
		if !ok {
			continue
		}
		ms.Replace(id, m.Without(placeholders))
	}
}
