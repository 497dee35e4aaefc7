package createpath

import (
	"github.com/ritamzico/implica/internal/props"
	"github.com/ritamzico/implica/internal/schema"
	"github.com/ritamzico/implica/internal/typing"
)

// nodeState is the per-row inference state for one path-pattern node
// (spec.md §4.7, "nodes_data[i]").
type nodeState struct {
	variable    string
	typeSchema  *schema.TypeSchema
	termSchema  *schema.TermSchema
	props       map[string]props.Value
	typ         *typing.Type
	term        *typing.Term
	typeMatched bool
	termMatched bool
}

// edgeState is the per-row inference state for one path-pattern edge
// ("edges_data[i-1]").
type edgeState struct {
	variable    string
	typeSchema  *schema.TypeSchema
	termSchema  *schema.TermSchema
	direction   schema.Direction
	props       map[string]props.Value
	typ         *typing.Type
	term        *typing.Term
	typeMatched bool
	termMatched bool
}

func newNodeState(n *schema.NodeSchema) *nodeState {
	return &nodeState{
		variable:   n.Variable,
		typeSchema: n.Type,
		termSchema: n.Term,
		props:      n.Props,
	}
}

func newEdgeState(e *schema.EdgeSchema) *edgeState {
	return &edgeState{
		variable:   e.Variable,
		typeSchema: e.Type,
		termSchema: e.Term,
		direction:  e.Direction,
		props:      e.Props,
	}
}

// queueItem names one node or edge slot in the work queue.
type queueItem struct {
	index  int
	isNode bool
}

// workQueue is the set-valued stack of §4.7: push is a set-insert, duplicate
// pushes are suppressed, pop is LIFO.
type workQueue struct {
	items   []queueItem
	inQueue map[queueItem]bool
}

func newWorkQueue() *workQueue {
	return &workQueue{inQueue: make(map[queueItem]bool)}
}

func (q *workQueue) push(item queueItem) {
	if q.inQueue[item] {
		return
	}
	q.inQueue[item] = true
	q.items = append(q.items, item)
}

func (q *workQueue) pop() (queueItem, bool) {
	if len(q.items) == 0 {
		return queueItem{}, false
	}
	n := len(q.items) - 1
	item := q.items[n]
	q.items = q.items[:n]
	delete(q.inQueue, item)
	return item, true
}
