package createpath

import (
	"github.com/ritamzico/implica/internal/match"
	"github.com/ritamzico/implica/internal/schema"
	"github.com/ritamzico/implica/internal/typing"
)

// synthesizeType builds a concrete Type directly from a type schema under
// the current match, per §4.7 rule 2's "synthesize one from the schema"
// fallback. A Wildcard carries no information and a Variable whose name is
// bound to something other than a Type cannot be resolved; both report
// ok=false rather than an error, since the engine may determine the type
// some other way on a later queue pass.
func synthesizeType(pattern *schema.TypeSchema, m *match.Match) (*typing.Type, bool, error) {
	switch pattern.Kind {
	case schema.WildcardSchema:
		return nil, false, nil

	case schema.VariableSchema:
		if b, ok := m.Get(pattern.Name); ok {
			if b.Kind != match.TypeBinding {
				return nil, false, nil
			}
			return b.Type, true, nil
		}
		// Unbound: the name denotes a type-variable literal (spec.md §4.6.1).
		typ, err := typing.NewVariable(pattern.Name)
		if err != nil {
			return nil, false, err
		}
		return typ, true, nil

	case schema.ArrowSchema:
		left, ok, err := synthesizeType(pattern.Left, m)
		if err != nil || !ok {
			return nil, false, err
		}
		right, ok, err := synthesizeType(pattern.Right, m)
		if err != nil || !ok {
			return nil, false, err
		}
		return typing.NewArrow(left, right), true, nil

	case schema.CaptureSchema:
		if b, ok := m.Get(pattern.Name); ok {
			if b.Kind != match.TypeBinding {
				return nil, false, nil
			}
			return b.Type, true, nil
		}
		return synthesizeType(pattern.Inner, m)

	default:
		return nil, false, nil
	}
}

// synthesizeTerm builds a concrete Term directly from a term schema under
// the current match and, where available, the node/edge's already-known
// type. Constant references are deliberately left unresolved here: the
// constant-from-type fallback (§4.7 rules 6/4) handles them once a type is
// known, the same way the matcher treats ConstantTermSchema as "a term must
// be present" rather than resolving the name itself.
func synthesizeTerm(pattern *schema.TermSchema, knownType *typing.Type, m *match.Match) (*typing.Term, bool, error) {
	switch pattern.Kind {
	case schema.WildcardTermSchema:
		return nil, false, nil

	case schema.VariableTermSchema:
		if b, ok := m.Get(pattern.Name); ok {
			if b.Kind != match.TermBinding {
				return nil, false, nil
			}
			return b.Term, true, nil
		}
		if knownType == nil {
			return nil, false, nil
		}
		tm, err := typing.NewBasic(pattern.Name, knownType)
		if err != nil {
			return nil, false, err
		}
		return tm, true, nil

	case schema.ApplicationTermSchema:
		function, ok, err := synthesizeTerm(pattern.Function, nil, m)
		if err != nil || !ok {
			return nil, false, err
		}
		argument, ok, err := synthesizeTerm(pattern.Argument, nil, m)
		if err != nil || !ok {
			return nil, false, err
		}
		tm, err := typing.NewApplication(function, argument)
		if err != nil {
			// Mismatched sub-terms under this schema; not yet determined,
			// not a hard failure — a later queue pass may supply better
			// sub-term information.
			return nil, false, nil
		}
		return tm, true, nil

	case schema.ConstantTermSchema:
		return nil, false, nil

	default:
		return nil, false, nil
	}
}
