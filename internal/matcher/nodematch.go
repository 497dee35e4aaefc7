package matcher

import (
	"context"

	"github.com/ritamzico/implica/internal/ident"
	"github.com/ritamzico/implica/internal/match"
	"github.com/ritamzico/implica/internal/schema"
	"github.com/ritamzico/implica/internal/store"
)

// MatchNode implements §4.6.3 over every row in ms's current frontier,
// advancing the frontier to the rows that survive. Rows run in parallel;
// each row may fan out into zero or more successor rows.
func MatchNode(ctx context.Context, st *store.Store, ms *match.MatchSet, node *schema.NodeSchema) error {
	return fanOutFrontier(ctx, ms, func(m *match.Match) ([]*match.Match, error) {
		return candidateNodeMatches(st, m, node)
	})
}

// candidateNodeMatches returns every extension of m that satisfies node.
func candidateNodeMatches(st *store.Store, m *match.Match, node *schema.NodeSchema) ([]*match.Match, error) {
	if node.Variable != "" {
		if b, ok := m.Get(node.Variable); ok {
			if b.Kind != match.NodeBinding {
				return nil, nil
			}
			extended, ok, err := filterNode(st, m, node, b.Node)
			if err != nil || !ok {
				return nil, err
			}
			return []*match.Match{extended}, nil
		}
	}

	candidates, err := candidateNodeUids(st, node)
	if err != nil {
		return nil, err
	}

	var out []*match.Match
	for _, uid := range candidates {
		extended, ok, err := filterNode(st, m, node, uid)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if node.Variable != "" {
			extended, err = insertIfAbsent(extended, node.Variable, match.BindNode(uid))
			if err != nil {
				return nil, err
			}
			if extended == nil {
				continue
			}
		}
		out = append(out, extended)
	}
	return out, nil
}

// candidateNodeUids enumerates the smallest candidate set the schema
// supports: type-schema candidates first, else term-schema candidates, else
// every live node.
func candidateNodeUids(st *store.Store, node *schema.NodeSchema) ([]ident.Uid, error) {
	switch {
	case node.Type != nil:
		var out []ident.Uid
		for _, uid := range st.AllTypes() {
			if st.HasNode(uid) {
				out = append(out, uid)
			}
		}
		return out, nil
	case node.Term != nil:
		var out []ident.Uid
		for _, uid := range st.AllTermTypes() {
			if st.HasNode(uid) {
				out = append(out, uid)
			}
		}
		return out, nil
	default:
		return st.AllNodes(), nil
	}
}

// filterNode applies node's type/term/property schemas to the concrete node
// uid, returning the extended match on success.
func filterNode(st *store.Store, m *match.Match, node *schema.NodeSchema, uid ident.Uid) (*match.Match, bool, error) {
	if node.Type != nil {
		next, ok, err := unifyType(node.Type, uid, st, m)
		if err != nil || !ok {
			return nil, false, err
		}
		m = next
	}
	if node.Term != nil {
		next, ok, err := unifyTerm(node.Term, uid, st, m)
		if err != nil || !ok {
			return nil, false, err
		}
		m = next
	}
	if node.Props != nil {
		stored, _ := st.NodeProps(uid)
		if !matchesProps(node.Props, stored) {
			return nil, false, nil
		}
	}
	return m, true, nil
}

// insertIfAbsent binds name to b unless name is already bound, in which case
// the existing binding must agree with b; disagreement rejects the
// candidate rather than erroring.
func insertIfAbsent(m *match.Match, name string, b match.Binding) (*match.Match, error) {
	next, ok, err := bindCapture(m, name, b)
	if err != nil || !ok {
		return nil, err
	}
	return next, nil
}
