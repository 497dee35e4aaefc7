// Package matcher implements the pattern matcher of spec.md §4.6: parallel
// enumeration of bindings for type, term, node, edge, and path patterns over
// a match.MatchSet.
package matcher

import (
	"github.com/ritamzico/implica/internal/ident"
	"github.com/ritamzico/implica/internal/match"
	"github.com/ritamzico/implica/internal/schema"
	"github.com/ritamzico/implica/internal/store"
	"github.com/ritamzico/implica/internal/typing"
)

// unifyType implements §4.6.1 against a single candidate type Uid. A false
// return with a nil error means "this candidate does not satisfy the
// pattern" — a normal filter outcome, not a failure of the whole match.
func unifyType(pattern *schema.TypeSchema, uid ident.Uid, st *store.Store, m *match.Match) (*match.Match, bool, error) {
	switch pattern.Kind {
	case schema.WildcardSchema:
		return m, true, nil

	case schema.VariableSchema:
		if b, ok := m.Get(pattern.Name); ok {
			if b.Kind != match.TypeBinding {
				return m, false, nil
			}
			return m, b.Type.Uid() == uid, nil
		}
		typ, err := st.TypeFromUid(uid)
		if err != nil {
			return nil, false, indexCorruption(err.Error())
		}
		return m, typ.Kind() == typing.VariableKind && typ.Name() == pattern.Name, nil

	case schema.ArrowSchema:
		typ, err := st.TypeFromUid(uid)
		if err != nil {
			return nil, false, indexCorruption(err.Error())
		}
		if typ.Kind() != typing.ArrowKind {
			return m, false, nil
		}
		leftMatch, ok, err := unifyType(pattern.Left, typ.Left().Uid(), st, m)
		if err != nil || !ok {
			return nil, false, err
		}
		return unifyType(pattern.Right, typ.Right().Uid(), st, leftMatch)

	case schema.CaptureSchema:
		innerMatch, ok, err := unifyType(pattern.Inner, uid, st, m)
		if err != nil || !ok {
			return nil, false, err
		}
		typ, err := st.TypeFromUid(uid)
		if err != nil {
			return nil, false, indexCorruption(err.Error())
		}
		return bindCapture(innerMatch, pattern.Name, match.BindType(typ))

	default:
		return m, false, nil
	}
}

// unifyTerm implements §4.6.2, symmetric to unifyType, keyed by the term's
// type Uid (term_index is keyed by type Uid, spec.md §4.4).
func unifyTerm(pattern *schema.TermSchema, typeUid ident.Uid, st *store.Store, m *match.Match) (*match.Match, bool, error) {
	if !st.HasTerm(typeUid) {
		return m, false, nil
	}

	switch pattern.Kind {
	case schema.WildcardTermSchema:
		return m, true, nil

	case schema.VariableTermSchema:
		if b, ok := m.Get(pattern.Name); ok {
			if b.Kind != match.TermBinding {
				return m, false, nil
			}
			return m, b.Term.Type().Uid() == typeUid, nil
		}
		tm, err := st.TermFromUid(typeUid)
		if err != nil {
			return nil, false, indexCorruption(err.Error())
		}
		return bindCapture(m, pattern.Name, match.BindTerm(tm))

	case schema.ApplicationTermSchema:
		tm, err := st.TermFromUid(typeUid)
		if err != nil {
			return nil, false, indexCorruption(err.Error())
		}
		if tm.Kind() != typing.ApplicationKind {
			return m, false, nil
		}
		funcMatch, ok, err := unifyTerm(pattern.Function, tm.Function().Type().Uid(), st, m)
		if err != nil || !ok {
			return nil, false, err
		}
		return unifyTerm(pattern.Argument, tm.Argument().Type().Uid(), st, funcMatch)

	case schema.ConstantTermSchema:
		// Constant references are resolved by the create-path engine against
		// the external registry (spec.md §6); the matcher only verifies a
		// term is present, since a stored term carries no record of which
		// named constant realized it.
		return m, true, nil

	default:
		return m, false, nil
	}
}

func bindCapture(m *match.Match, name string, b match.Binding) (*match.Match, bool, error) {
	if existing, ok := m.Get(name); ok {
		if existing.Kind != b.Kind {
			return nil, false, nil
		}
		switch b.Kind {
		case match.TypeBinding:
			return m, existing.Type.Uid() == b.Type.Uid(), nil
		case match.TermBinding:
			return m, existing.Term.Uid() == b.Term.Uid(), nil
		case match.NodeBinding:
			return m, existing.Node == b.Node, nil
		default:
			return m, existing.Edge == b.Edge, nil
		}
	}
	next, err := m.Insert(name, b)
	if err != nil {
		return nil, false, nil
	}
	return next, true, nil
}
