package matcher

import (
	"context"

	"github.com/ritamzico/implica/internal/ident"
	"github.com/ritamzico/implica/internal/match"
	"github.com/ritamzico/implica/internal/schema"
	"github.com/ritamzico/implica/internal/store"
)

// endpointHint names the already-bound node variables on either side of an
// edge token, supplied by path-pattern matching (§4.6.5). An empty string
// means "no hint for this side".
type endpointHint struct {
	Start, End string
}

// edgeCandidate pairs a successor match with the concrete edge it was
// produced from, so Direction == Any can dedup by edge identity after
// trying both orientations.
type edgeCandidate struct {
	pair  store.EdgeKeyPair
	match *match.Match
}

// MatchEdge implements §4.6.4 over ms's current frontier.
func MatchEdge(ctx context.Context, st *store.Store, ms *match.MatchSet, edge *schema.EdgeSchema, hint endpointHint) error {
	return fanOutFrontier(ctx, ms, func(m *match.Match) ([]*match.Match, error) {
		candidates, err := candidateEdgeMatches(st, m, edge, hint)
		if err != nil {
			return nil, err
		}
		out := make([]*match.Match, len(candidates))
		for i, c := range candidates {
			out[i] = c.match
		}
		return out, nil
	})
}

func candidateEdgeMatches(st *store.Store, m *match.Match, edge *schema.EdgeSchema, hint endpointHint) ([]edgeCandidate, error) {
	if edge.Direction == schema.Any {
		// §4.6.4 / O3: an undirected token matches either orientation, unioned
		// and deduplicated by the underlying (start, end) edge pair.
		forward, err := candidateEdgeMatchesDirected(st, m, edge, hint.Start, hint.End)
		if err != nil {
			return nil, err
		}
		backward, err := candidateEdgeMatchesDirected(st, m, edge, hint.End, hint.Start)
		if err != nil {
			return nil, err
		}
		return dedupEdgeCandidates(append(forward, backward...)), nil
	}

	startVar, endVar := hint.Start, hint.End
	if edge.Direction == schema.Backward {
		startVar, endVar = endVar, startVar
	}
	return candidateEdgeMatchesDirected(st, m, edge, startVar, endVar)
}

func candidateEdgeMatchesDirected(st *store.Store, m *match.Match, edge *schema.EdgeSchema, startVar, endVar string) ([]edgeCandidate, error) {
	if edge.Variable != "" {
		if b, ok := m.Get(edge.Variable); ok {
			if b.Kind != match.EdgeBinding {
				return nil, nil
			}
			typeUid, ok := st.TypeForEdge(b.Edge.Start, b.Edge.End)
			if !ok {
				return nil, nil
			}
			return filterEdgeCandidate(st, m, edge, startVar, endVar, typeUid, b.Edge.Start, b.Edge.End)
		}
	}

	pairs, err := candidateEdgePairs(st, m, edge, startVar, endVar)
	if err != nil {
		return nil, err
	}

	var out []edgeCandidate
	for _, pair := range pairs {
		typeUid, ok := st.TypeForEdge(pair.Start, pair.End)
		if !ok {
			continue
		}
		matches, err := filterEdgeCandidate(st, m, edge, startVar, endVar, typeUid, pair.Start, pair.End)
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	return out, nil
}

// dedupEdgeCandidates drops duplicate (pair, match-row-ancestor) entries
// produced when both orientations of an Any-direction token resolve to the
// same underlying edge.
func dedupEdgeCandidates(candidates []edgeCandidate) []edgeCandidate {
	if len(candidates) < 2 {
		return candidates
	}
	seen := make(map[store.EdgeKeyPair]bool, len(candidates))
	out := make([]edgeCandidate, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.pair] {
			continue
		}
		seen[c.pair] = true
		out = append(out, c)
	}
	return out
}

// candidateEdgePairs selects the smallest candidate set per §4.6.4: type
// schema first, then term schema, then resolved endpoints, then every edge.
func candidateEdgePairs(st *store.Store, m *match.Match, edge *schema.EdgeSchema, startVar, endVar string) ([]store.EdgeKeyPair, error) {
	switch {
	case edge.Type != nil:
		var out []store.EdgeKeyPair
		for _, typeUid := range st.AllTypes() {
			if start, end, ok := st.EdgeForType(typeUid); ok {
				out = append(out, store.EdgeKeyPair{Start: start, End: end})
			}
		}
		return out, nil
	case edge.Term != nil:
		var out []store.EdgeKeyPair
		for _, typeUid := range st.AllTermTypes() {
			if start, end, ok := st.EdgeForType(typeUid); ok {
				out = append(out, store.EdgeKeyPair{Start: start, End: end})
			}
		}
		return out, nil
	default:
		startUid, startBound := resolvedEndpoint(m, startVar)
		endUid, endBound := resolvedEndpoint(m, endVar)
		switch {
		case startBound && endBound:
			if st.HasEdge(startUid, endUid) {
				return []store.EdgeKeyPair{{Start: startUid, End: endUid}}, nil
			}
			return nil, nil
		case startBound:
			return st.OutEdges(startUid), nil
		case endBound:
			return st.InEdges(endUid), nil
		default:
			return st.AllEdges(), nil
		}
	}
}

func resolvedEndpoint(m *match.Match, variable string) (ident.Uid, bool) {
	if variable == "" {
		return ident.Zero, false
	}
	b, ok := m.Get(variable)
	if !ok || b.Kind != match.NodeBinding {
		return ident.Zero, false
	}
	return b.Node, true
}

// filterEdgeCandidate applies edge's type/term/property schemas and
// reconciles endpoint bindings, returning the (singleton, on success)
// extended candidate.
func filterEdgeCandidate(st *store.Store, m *match.Match, edge *schema.EdgeSchema, startVar, endVar string, typeUid, start, end ident.Uid) ([]edgeCandidate, error) {
	cur := m
	if edge.Type != nil {
		next, ok, err := unifyType(edge.Type, typeUid, st, cur)
		if err != nil || !ok {
			return nil, err
		}
		cur = next
	}
	if edge.Term != nil {
		next, ok, err := unifyTerm(edge.Term, typeUid, st, cur)
		if err != nil || !ok {
			return nil, err
		}
		cur = next
	}
	if edge.Props != nil {
		stored, _ := st.EdgeProps(start, end)
		if !matchesProps(edge.Props, stored) {
			return nil, nil
		}
	}

	var err error
	cur, err = reconcileEndpoint(cur, startVar, start)
	if err != nil || cur == nil {
		return nil, err
	}
	cur, err = reconcileEndpoint(cur, endVar, end)
	if err != nil || cur == nil {
		return nil, err
	}
	if edge.Variable != "" {
		cur, err = insertIfAbsent(cur, edge.Variable, match.BindEdge(start, end))
		if err != nil || cur == nil {
			return nil, err
		}
	}
	return []edgeCandidate{{pair: store.EdgeKeyPair{Start: start, End: end}, match: cur}}, nil
}

func reconcileEndpoint(m *match.Match, variable string, uid ident.Uid) (*match.Match, error) {
	if variable == "" {
		return m, nil
	}
	next, ok, err := bindCapture(m, variable, match.BindNode(uid))
	if err != nil || !ok {
		return nil, err
	}
	return next, nil
}
