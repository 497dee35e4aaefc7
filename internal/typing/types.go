package typing

import (
	"fmt"

	"github.com/ritamzico/implica/internal/ident"
)

// TypeKind tags which variant of the Type sum a value holds.
type TypeKind int

const (
	VariableKind TypeKind = iota
	ArrowKind
)

// Type is a simply-typed value: either a named variable or an arrow between
// two types. Equal Uids mean structurally equal types (I4). Types are
// immutable once constructed; a Uid is computed once at construction and
// never recomputed.
type Type struct {
	kind  TypeKind
	uid   ident.Uid
	name  string // set when kind == VariableKind
	left  *Type  // set when kind == ArrowKind
	right *Type  // set when kind == ArrowKind
}

// Kind reports which variant t holds.
func (t *Type) Kind() TypeKind { return t.kind }

// Uid returns t's content hash.
func (t *Type) Uid() ident.Uid { return t.uid }

// Name returns the variable name. Only meaningful when Kind() == VariableKind.
func (t *Type) Name() string { return t.name }

// Left returns the arrow's left-hand type. Only meaningful when
// Kind() == ArrowKind.
func (t *Type) Left() *Type { return t.left }

// Right returns the arrow's right-hand type. Only meaningful when
// Kind() == ArrowKind.
func (t *Type) Right() *Type { return t.right }

// NewVariable constructs a type variable named name.
func NewVariable(name string) (*Type, error) {
	if err := validateIdentifier(name); err != nil {
		return nil, err
	}
	return &Type{
		kind: VariableKind,
		uid:  ident.HashVariable(name),
		name: name,
	}, nil
}

// NewArrow constructs an arrow type left -> right. Each arrow exclusively
// owns its children (I-model ownership note in spec.md §3); callers should
// not mutate left/right afterward, which is safe since Type is immutable.
func NewArrow(left, right *Type) *Type {
	return &Type{
		kind:  ArrowKind,
		uid:   ident.HashArrow(left.Uid(), right.Uid()),
		left:  left,
		right: right,
	}
}

// Equal reports whether a and b are structurally equal (I4: identifier
// equality iff structural equality).
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Uid() == b.Uid()
}

// String renders the display form from spec.md §4.2: variables print their
// name, arrows print "(L -> R)".
func (t *Type) String() string {
	switch t.kind {
	case VariableKind:
		return t.name
	case ArrowKind:
		return fmt.Sprintf("(%s -> %s)", t.left.String(), t.right.String())
	default:
		return "<invalid type>"
	}
}
