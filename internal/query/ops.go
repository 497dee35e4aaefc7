package query

import (
	"context"
	"fmt"

	"github.com/ritamzico/implica/internal/constants"
	"github.com/ritamzico/implica/internal/createpath"
	"github.com/ritamzico/implica/internal/match"
	"github.com/ritamzico/implica/internal/matcher"
	"github.com/ritamzico/implica/internal/props"
	"github.com/ritamzico/implica/internal/schema"
	"github.com/ritamzico/implica/internal/store"
)

// op is one step of a Query's ordered operation list (spec.md §4.8). Each
// op threads the MatchSet's current frontier forward, or fails the whole
// execution.
type op interface {
	apply(ctx context.Context, st *store.Store, registry *constants.Registry, ms *match.MatchSet) error
}

type createOp struct {
	path *schema.PathPattern
}

func (o createOp) apply(ctx context.Context, st *store.Store, registry *constants.Registry, ms *match.MatchSet) error {
	return createpath.CreatePath(ctx, st, registry, ms, o.path)
}

type matchOp struct {
	path *schema.PathPattern
}

func (o matchOp) apply(ctx context.Context, st *store.Store, registry *constants.Registry, ms *match.MatchSet) error {
	return matcher.MatchPath(ctx, st, ms, o.path)
}

// removeOp implements spec.md §4.8's REMOVE(vars): for each row, for each
// listed variable, read its bound element and remove it. Type/Term
// bindings are not removable.
type removeOp struct {
	vars []string
}

func (o removeOp) apply(ctx context.Context, st *store.Store, registry *constants.Registry, ms *match.MatchSet) error {
	for _, id := range ms.Current() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		m, ok := ms.MatchFor(id)
		if !ok {
			return invalidQuery("row has no match")
		}
		for _, v := range o.vars {
			b, ok := m.Get(v)
			if !ok {
				return variableNotFound(v)
			}
			switch b.Kind {
			case match.NodeBinding:
				if err := st.RemoveNode(b.Node); err != nil {
					return err
				}
			case match.EdgeBinding:
				if err := st.RemoveEdge(b.Edge.Start, b.Edge.End); err != nil {
					return err
				}
			default:
				return invalidQuery(fmt.Sprintf("variable %q is bound to a %v, which REMOVE cannot remove", v, b.Kind))
			}
		}
	}
	return nil
}

// setOp implements spec.md §4.8's SET(var, props, overwrite): merge a
// property literal into the bound node's or edge's property map. Type/Term
// bindings are not settable.
type setOp struct {
	variable  string
	updates   map[string]props.Value
	overwrite bool
}

func (o setOp) apply(ctx context.Context, st *store.Store, registry *constants.Registry, ms *match.MatchSet) error {
	for _, id := range ms.Current() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		m, ok := ms.MatchFor(id)
		if !ok {
			return invalidQuery("row has no match")
		}
		b, ok := m.Get(o.variable)
		if !ok {
			return variableNotFound(o.variable)
		}
		var pm *props.PropertyMap
		switch b.Kind {
		case match.NodeBinding:
			pm, ok = st.NodeProps(b.Node)
		case match.EdgeBinding:
			pm, ok = st.EdgeProps(b.Edge.Start, b.Edge.End)
		default:
			return invalidQuery(fmt.Sprintf("variable %q is bound to a %v, which SET cannot modify", o.variable, b.Kind))
		}
		if !ok {
			return invalidQuery(fmt.Sprintf("variable %q is bound to an element that no longer exists", o.variable))
		}
		if err := pm.Merge(o.updates, o.overwrite); err != nil {
			return err
		}
	}
	return nil
}
