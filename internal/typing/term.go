package typing

import (
	"fmt"

	"github.com/ritamzico/implica/internal/ident"
)

// TermKind tags which variant of the Term sum a value holds.
type TermKind int

const (
	BasicKind TermKind = iota
	ApplicationKind
)

// Term is a value inhabiting a Type: either a basic term (a name paired with
// a type) or the application of one term to another. Terms are immutable
// once constructed.
type Term struct {
	kind     TermKind
	uid      ident.Uid
	typ      *Type
	name     string // set when kind == BasicKind
	function *Term  // set when kind == ApplicationKind
	argument *Term  // set when kind == ApplicationKind
}

// Kind reports which variant tm holds.
func (tm *Term) Kind() TermKind { return tm.kind }

// Uid returns tm's content hash.
func (tm *Term) Uid() ident.Uid { return tm.uid }

// Type returns the type tm inhabits.
func (tm *Term) Type() *Type { return tm.typ }

// Name returns the basic term's name. Only meaningful when
// Kind() == BasicKind.
func (tm *Term) Name() string { return tm.name }

// Function returns the application's function term. Only meaningful when
// Kind() == ApplicationKind.
func (tm *Term) Function() *Term { return tm.function }

// Argument returns the application's argument term. Only meaningful when
// Kind() == ApplicationKind.
func (tm *Term) Argument() *Term { return tm.argument }

// NewBasic constructs a basic term named name inhabiting typ.
func NewBasic(name string, typ *Type) (*Term, error) {
	if err := validateIdentifier(name); err != nil {
		return nil, err
	}
	return &Term{
		kind: BasicKind,
		uid:  ident.HashBasicTerm(name, typ.Uid()),
		typ:  typ,
		name: name,
	}, nil
}

// NewApplication constructs the application of function to argument. The
// synthesized type is function's arrow-right type; construction fails with
// TypeMismatch if function's type is not an arrow, or if argument's type
// differs from the arrow's left.
func NewApplication(function, argument *Term) (*Term, error) {
	if function.Type().Kind() != ArrowKind {
		return nil, TypeMismatch{
			Expected: "arrow type",
			Got:      function.Type().String(),
		}
	}
	left := function.Type().Left()
	if !Equal(left, argument.Type()) {
		return nil, TypeMismatch{
			Expected: left.String(),
			Got:      argument.Type().String(),
		}
	}
	right := function.Type().Right()
	return &Term{
		kind:     ApplicationKind,
		uid:      ident.HashApplication(function.Uid(), argument.Uid(), right.Uid()),
		typ:      right,
		function: function,
		argument: argument,
	}, nil
}

// TermEqual reports whether a and b are structurally equal.
func TermEqual(a, b *Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Uid() == b.Uid()
}

// String renders the display form from spec.md §4.2: applications print
// "(F A)".
func (tm *Term) String() string {
	switch tm.kind {
	case BasicKind:
		return tm.name
	case ApplicationKind:
		return fmt.Sprintf("(%s %s)", tm.function.String(), tm.argument.String())
	default:
		return "<invalid term>"
	}
}
