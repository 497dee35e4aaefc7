package store

import (
	"github.com/ritamzico/implica/internal/ident"
	"github.com/ritamzico/implica/internal/typing"
)

// typeRep is the interned, Uid-addressed representation of a Type: a
// variable's name, or an arrow's child Uids. Children are stored by Uid
// rather than by pointer so the index never holds a live *typing.Type
// reference longer than the recursive resolve in TypeFromUid needs one.
type typeRep struct {
	kind  typing.TypeKind
	name  string // set when kind == typing.VariableKind
	left  ident.Uid
	right ident.Uid // set when kind == typing.ArrowKind
}

// termRep is the interned representation of the single canonical term
// realizing a type. It is keyed in term_index by the *type's* Uid, not the
// term's own Uid — spec.md §4.4 ("term_index: ... the key is the type-Uid"),
// reflecting the model invariant that at most one term realizes any given
// type. An application's children are themselves type Uids, resolved
// recursively through term_index.
type termRep struct {
	kind        typing.TermKind
	name        string // set when kind == typing.BasicKind
	functionUid ident.Uid
	argumentUid ident.Uid // set when kind == typing.ApplicationKind
}
