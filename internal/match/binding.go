package match

import (
	"fmt"

	"github.com/ritamzico/implica/internal/ident"
	"github.com/ritamzico/implica/internal/typing"
)

// BindingKind tags which variant of the Binding sum a capture holds.
type BindingKind int

const (
	NodeBinding BindingKind = iota
	EdgeBinding
	TypeBinding
	TermBinding
)

func (k BindingKind) String() string {
	switch k {
	case NodeBinding:
		return "node"
	case EdgeBinding:
		return "edge"
	case TypeBinding:
		return "type"
	case TermBinding:
		return "term"
	default:
		return fmt.Sprintf("BindingKind(%d)", int(k))
	}
}

// EdgeRef identifies an edge by its endpoint node Uids.
type EdgeRef struct {
	Start, End ident.Uid
}

// Binding is the value a capture name is bound to: a node, an edge, a type,
// or a term, per spec.md §4.5.
type Binding struct {
	Kind BindingKind
	Node ident.Uid
	Edge EdgeRef
	Type *typing.Type
	Term *typing.Term
}

func BindNode(uid ident.Uid) Binding   { return Binding{Kind: NodeBinding, Node: uid} }
func BindEdge(start, end ident.Uid) Binding {
	return Binding{Kind: EdgeBinding, Edge: EdgeRef{Start: start, End: end}}
}
func BindType(t *typing.Type) Binding { return Binding{Kind: TypeBinding, Type: t} }
func BindTerm(tm *typing.Term) Binding { return Binding{Kind: TermBinding, Term: tm} }
