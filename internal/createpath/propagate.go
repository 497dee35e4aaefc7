package createpath

import (
	"fmt"

	"github.com/ritamzico/implica/internal/constants"
	"github.com/ritamzico/implica/internal/match"
	"github.com/ritamzico/implica/internal/schema"
	"github.com/ritamzico/implica/internal/store"
	"github.com/ritamzico/implica/internal/typing"
)

// rowCtx bundles the per-row state §4.7's propagation rules read and write.
type rowCtx struct {
	st       *store.Store
	registry *constants.Registry
	m        *match.Match
	nodes    []*nodeState
	edges    []*edgeState
	queue    *workQueue
}

func (rc *rowCtx) requeueNeighbors(i int, isNode bool) {
	if isNode {
		if i > 0 {
			rc.queue.push(queueItem{i - 1, false})
		}
		if i < len(rc.nodes)-1 {
			rc.queue.push(queueItem{i, false})
		}
		rc.queue.push(queueItem{i, true})
		return
	}
	rc.queue.push(queueItem{i, true})
	rc.queue.push(queueItem{i + 1, true})
	rc.queue.push(queueItem{i, false})
}

// requeueAllUndetermined re-queues every element that has not yet fully
// settled, per §4.7 rule 2/3's "re-queue every not-yet-matched element"
// ripple when a schema check newly succeeds.
func (rc *rowCtx) requeueAllUndetermined() {
	for i, nd := range rc.nodes {
		nodeSettled := nd.typ != nil && nd.typeMatched && (nd.termSchema == nil || (nd.term != nil && nd.termMatched))
		if !nodeSettled {
			rc.queue.push(queueItem{i, true})
		}
	}
	for i, ed := range rc.edges {
		if !(ed.term != nil && ed.termMatched && ed.typeMatched) {
			rc.queue.push(queueItem{i, false})
		}
	}
}

// assignTypeFromEdge sets thisNode's type from edgeTyp (the edge's concrete
// arrow type), where thisIsStart tells which side of the arrow thisNode
// occupies under the edge's effective direction. Returns whether it set a
// previously-unknown type.
func assignTypeFromEdge(thisNode *nodeState, edgeTyp *typing.Type, thisIsStart bool) bool {
	if edgeTyp == nil || edgeTyp.Kind() != typing.ArrowKind || thisNode.typ != nil {
		return false
	}
	if thisIsStart {
		thisNode.typ = edgeTyp.Left()
	} else {
		thisNode.typ = edgeTyp.Right()
	}
	return true
}

// assignTermFromEdge mirrors assignTypeFromEdge for terms: the end-role
// node's term is edge_term applied to the start-role node's term; the
// start-role node's term is recovered by argument-extraction when the
// end-role node's term is an application of edge_term.
func assignTermFromEdge(thisNode, otherNode *nodeState, edgeTerm *typing.Term, thisIsStart bool) bool {
	if edgeTerm == nil || otherNode.term == nil || thisNode.term != nil {
		return false
	}
	if thisIsStart {
		if otherNode.term.Kind() == typing.ApplicationKind && typing.TermEqual(otherNode.term.Function(), edgeTerm) {
			thisNode.term = otherNode.term.Argument()
			return true
		}
		return false
	}
	tm, err := typing.NewApplication(edgeTerm, otherNode.term)
	if err != nil {
		return false
	}
	thisNode.term = tm
	return true
}

func propagateNode(rc *rowCtx, i int) error {
	nd := rc.nodes[i]
	changed := false

	// Rule 1: variable already bound in the match.
	if nd.variable != "" {
		if b, ok := rc.m.Get(nd.variable); ok {
			if b.Kind != match.NodeBinding {
				return CreatePathError{Kind: "ContextConflict", Message: fmt.Sprintf("variable %q is already bound to a %v, not a node", nd.variable, b.Kind)}
			}
			if nd.typ == nil {
				typ, err := rc.st.TypeFromUid(b.Node)
				if err != nil {
					return indexCorruption(err.Error())
				}
				nd.typ = typ
				changed = true
			}
			if nd.term == nil && rc.st.HasTerm(b.Node) {
				tm, err := rc.st.TermFromUid(b.Node)
				if err != nil {
					return indexCorruption(err.Error())
				}
				nd.term = tm
				changed = true
			}
		}
	}

	// Rule 2: type schema.
	if nd.typeSchema != nil {
		if !nd.typeMatched && nd.typ != nil {
			if !checkType(nd.typeSchema, nd.typ, rc.m) {
				return invalidType(fmt.Sprintf("node's inferred type does not satisfy its type schema (variable %q)", nd.variable))
			}
			nd.typeMatched = true
			changed = true
			rc.requeueAllUndetermined()
		} else if nd.typ == nil {
			typ, ok, err := synthesizeType(nd.typeSchema, rc.m)
			if err != nil {
				return err
			}
			if ok {
				nd.typ = typ
				nd.typeMatched = true
				changed = true
			}
		}
	} else if nd.typ != nil && !nd.typeMatched {
		nd.typeMatched = true
		changed = true
	}

	// Rule 3: term schema, symmetric.
	if nd.termSchema != nil {
		if !nd.termMatched && nd.term != nil {
			if !checkTerm(nd.termSchema, nd.term, rc.m) {
				return invalidTerm(fmt.Sprintf("node's inferred term does not satisfy its term schema (variable %q)", nd.variable))
			}
			nd.termMatched = true
			changed = true
			rc.requeueAllUndetermined()
		} else if nd.term == nil {
			tm, ok, err := synthesizeTerm(nd.termSchema, nd.typ, rc.m)
			if err != nil {
				return err
			}
			if ok {
				nd.term = tm
				nd.termMatched = true
				changed = true
			}
		}
	} else if nd.term != nil && !nd.termMatched {
		nd.termMatched = true
		changed = true
	}

	// Rule 4: left edge propagation.
	if i > 0 {
		left := rc.edges[i-1]
		thisIsStart := left.direction == schema.Backward
		if assignTypeFromEdge(nd, left.typ, thisIsStart) {
			changed = true
		}
		if assignTermFromEdge(nd, rc.nodes[i-1], left.term, thisIsStart) {
			changed = true
		}
	}

	// Rule 5: right edge propagation, dual.
	if i < len(rc.nodes)-1 {
		right := rc.edges[i]
		thisIsStart := right.direction != schema.Backward
		if assignTypeFromEdge(nd, right.typ, thisIsStart) {
			changed = true
		}
		if assignTermFromEdge(nd, rc.nodes[i+1], right.term, thisIsStart) {
			changed = true
		}
	}

	// Rule 6: constant-from-type fallback.
	if nd.term == nil && nd.typ != nil && rc.registry != nil {
		if tm, ok := rc.registry.InferTerm(nd.typ.Uid()); ok {
			nd.term = tm
			changed = true
		}
	}

	// Rule 7: type-from-term fallback.
	if nd.typ == nil && nd.term != nil {
		nd.typ = nd.term.Type()
		changed = true
	}

	if changed {
		rc.requeueNeighbors(i, true)
	}
	return nil
}

func propagateEdge(rc *rowCtx, i int) error {
	ed := rc.edges[i]
	changed := false

	// Rule 1: variable already bound in the match.
	if ed.variable != "" {
		if b, ok := rc.m.Get(ed.variable); ok {
			if b.Kind != match.EdgeBinding {
				return CreatePathError{Kind: "ContextConflict", Message: fmt.Sprintf("variable %q is already bound to a %v, not an edge", ed.variable, b.Kind)}
			}
			typeUid, ok := rc.st.TypeForEdge(b.Edge.Start, b.Edge.End)
			if ok {
				if ed.typ == nil {
					typ, err := rc.st.TypeFromUid(typeUid)
					if err != nil {
						return indexCorruption(err.Error())
					}
					ed.typ = typ
					changed = true
				}
				if ed.term == nil && rc.st.HasTerm(typeUid) {
					tm, err := rc.st.TermFromUid(typeUid)
					if err != nil {
						return indexCorruption(err.Error())
					}
					ed.term = tm
					changed = true
				}
			}
		}
	}

	// Rule 2: type schema.
	if ed.typeSchema != nil {
		if !ed.typeMatched && ed.typ != nil {
			if !checkType(ed.typeSchema, ed.typ, rc.m) {
				return invalidType(fmt.Sprintf("edge's inferred type does not satisfy its type schema (variable %q)", ed.variable))
			}
			ed.typeMatched = true
			changed = true
			rc.requeueAllUndetermined()
		} else if ed.typ == nil {
			typ, ok, err := synthesizeType(ed.typeSchema, rc.m)
			if err != nil {
				return err
			}
			if ok {
				ed.typ = typ
				ed.typeMatched = true
				changed = true
			}
		}
	} else if ed.typ != nil && !ed.typeMatched {
		ed.typeMatched = true
		changed = true
	}

	// Term schema.
	if ed.termSchema != nil {
		if !ed.termMatched && ed.term != nil {
			if !checkTerm(ed.termSchema, ed.term, rc.m) {
				return invalidTerm(fmt.Sprintf("edge's inferred term does not satisfy its term schema (variable %q)", ed.variable))
			}
			ed.termMatched = true
			changed = true
			rc.requeueAllUndetermined()
		} else if ed.term == nil {
			tm, ok, err := synthesizeTerm(ed.termSchema, ed.typ, rc.m)
			if err != nil {
				return err
			}
			if ok {
				ed.term = tm
				ed.termMatched = true
				changed = true
			}
		}
	} else if ed.term != nil && !ed.termMatched {
		ed.termMatched = true
		changed = true
	}

	// Rule 3: endpoint propagation.
	startNode, endNode := rc.nodes[i], rc.nodes[i+1]
	if ed.direction == schema.Backward {
		startNode, endNode = endNode, startNode
	}
	if startNode.typ != nil && endNode.typ != nil {
		want := typing.NewArrow(startNode.typ, endNode.typ)
		if ed.typ == nil {
			ed.typ = want
			changed = true
		} else if !typing.Equal(ed.typ, want) {
			return invalidType("edge's type disagrees with its endpoints' arrow type")
		}
	}
	if ed.term == nil && startNode.term != nil && endNode.term != nil {
		if endNode.term.Kind() == typing.ApplicationKind && typing.TermEqual(endNode.term.Argument(), startNode.term) {
			ed.term = endNode.term.Function()
			changed = true
		}
	}

	// Rule 4: constant-from-type fallback.
	if ed.term == nil && ed.typ != nil && rc.registry != nil {
		if tm, ok := rc.registry.InferTerm(ed.typ.Uid()); ok {
			ed.term = tm
			changed = true
		}
	}

	if changed {
		rc.requeueNeighbors(i, false)
	}
	return nil
}
