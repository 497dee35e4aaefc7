package createpath

import (
	"github.com/ritamzico/implica/internal/match"
	"github.com/ritamzico/implica/internal/schema"
	"github.com/ritamzico/implica/internal/typing"
)

// checkType verifies typ against pattern under the current match, the
// read-only counterpart of the matcher's unifyType (§4.6.1) used by the
// create-path engine's rule 2 when a concrete type is already known. It
// never extends the match — create-path only binds variables at the final
// insertion step (§4.7 "Insertion").
func checkType(pattern *schema.TypeSchema, typ *typing.Type, m *match.Match) bool {
	switch pattern.Kind {
	case schema.WildcardSchema:
		return true

	case schema.VariableSchema:
		if b, ok := m.Get(pattern.Name); ok {
			return b.Kind == match.TypeBinding && typing.Equal(b.Type, typ)
		}
		return typ.Kind() == typing.VariableKind && typ.Name() == pattern.Name

	case schema.ArrowSchema:
		if typ.Kind() != typing.ArrowKind {
			return false
		}
		return checkType(pattern.Left, typ.Left(), m) && checkType(pattern.Right, typ.Right(), m)

	case schema.CaptureSchema:
		if b, ok := m.Get(pattern.Name); ok {
			if b.Kind != match.TypeBinding || !typing.Equal(b.Type, typ) {
				return false
			}
		}
		return checkType(pattern.Inner, typ, m)

	default:
		return false
	}
}

// checkTerm is checkType's symmetric counterpart for term schemas (§4.6.2).
func checkTerm(pattern *schema.TermSchema, tm *typing.Term, m *match.Match) bool {
	switch pattern.Kind {
	case schema.WildcardTermSchema:
		return true

	case schema.VariableTermSchema:
		if b, ok := m.Get(pattern.Name); ok {
			return b.Kind == match.TermBinding && typing.TermEqual(b.Term, tm)
		}
		return true

	case schema.ApplicationTermSchema:
		if tm.Kind() != typing.ApplicationKind {
			return false
		}
		return checkTerm(pattern.Function, tm.Function(), m) && checkTerm(pattern.Argument, tm.Argument(), m)

	case schema.ConstantTermSchema:
		// The matcher treats a constant reference as "a term must be
		// present" since a stored term carries no record of which named
		// constant realized it; create-path mirrors that here.
		return true

	default:
		return false
	}
}
