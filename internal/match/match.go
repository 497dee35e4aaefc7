// Package match implements the persistent binding environment of spec.md
// §4.5: a write-once capture chain (Match) and the per-query lineage of rows
// produced as a pattern match extends across stages (MatchSet).
package match

// Match is a persistent, parent-linked capture environment (spec.md §9:
// "Match is a persistent (copy-on-extend) structure linked to its parent").
// Extending never mutates an existing Match — a new frame is pushed in
// front, so parallel workers sharing a parent never race. This mirrors the
// teacher's Clone()-before-mutate discipline in
// internal/graph/probabilistic_adjacency_list_graph.go, generalized from
// "copy a graph" to "link a new binding frame".
type Match struct {
	parent  *Match
	name    string
	binding Binding
}

// Empty is the Match with no captures.
func Empty() *Match {
	return nil
}

// Insert returns a new Match extending m with name bound to b. It fails with
// VariableAlreadyExists if name is already visible anywhere in m's chain —
// captures are write-once across the whole lineage, not just the current
// frame.
func (m *Match) Insert(name string, b Binding) (*Match, error) {
	if _, ok := m.Get(name); ok {
		return nil, variableAlreadyExists(name)
	}
	return &Match{parent: m, name: name, binding: b}, nil
}

// Get searches the current frame then each parent in turn.
func (m *Match) Get(name string) (Binding, bool) {
	for cur := m; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.binding, true
		}
	}
	return Binding{}, false
}

// Names returns every bound capture name visible from m.
func (m *Match) Names() []string {
	var names []string
	seen := make(map[string]bool)
	for cur := m; cur != nil; cur = cur.parent {
		if !seen[cur.name] {
			seen[cur.name] = true
			names = append(names, cur.name)
		}
	}
	return names
}

// Without returns a Match with every name in excluded removed, preserving
// the relative order of the surviving bindings. Used to drop the
// placeholder variables path-pattern matching generates for anonymous nodes
// and edges (spec.md §4.6.5) once matching completes.
func (m *Match) Without(excluded []string) *Match {
	if len(excluded) == 0 {
		return m
	}
	drop := make(map[string]bool, len(excluded))
	for _, n := range excluded {
		drop[n] = true
	}
	var frames []*Match
	for cur := m; cur != nil; cur = cur.parent {
		if !drop[cur.name] {
			frames = append(frames, cur)
		}
	}
	var out *Match
	for i := len(frames) - 1; i >= 0; i-- {
		out = &Match{parent: out, name: frames[i].name, binding: frames[i].binding}
	}
	return out
}

func (m *Match) lookup(name string, want BindingKind) (Binding, error) {
	b, ok := m.Get(name)
	if !ok {
		return Binding{}, variableNotFound(name)
	}
	if b.Kind != want {
		return Binding{}, contextConflict(name, b.Kind, want)
	}
	return b, nil
}

// AsNode resolves name as a node capture.
func (m *Match) AsNode(name string) (Binding, error) { return m.lookup(name, NodeBinding) }

// AsEdge resolves name as an edge capture.
func (m *Match) AsEdge(name string) (Binding, error) { return m.lookup(name, EdgeBinding) }

// AsType resolves name as a type capture.
func (m *Match) AsType(name string) (Binding, error) { return m.lookup(name, TypeBinding) }

// AsTerm resolves name as a term capture.
func (m *Match) AsTerm(name string) (Binding, error) { return m.lookup(name, TermBinding) }
