// Package query implements the query executor of spec.md §4.8: a Query owns
// an ordered list of operations over a shared graph store and, on Execute,
// threads a match.MatchSet through the pattern matcher and create-path
// engine in turn. Grounded on the teacher's internal/query/query.go Query
// interface and internal/query/composite_queries.go's executeConcurrent
// fan-out shape, generalized from "a tree of probabilistic sub-queries" to
// "an ordered CREATE/MATCH/REMOVE/SET op list producing rows".
package query

import (
	"context"
	"strings"

	"github.com/ritamzico/implica/internal/constants"
	"github.com/ritamzico/implica/internal/match"
	"github.com/ritamzico/implica/internal/props"
	"github.com/ritamzico/implica/internal/refs"
	"github.com/ritamzico/implica/internal/schema"
	"github.com/ritamzico/implica/internal/store"

	"github.com/google/uuid"
)

// Query is an ordered list of operations against a shared graph store. The
// zero value is not usable; use New.
type Query struct {
	id       uuid.UUID
	st       *store.Store
	registry *constants.Registry
	ops      []op
	ms       *match.MatchSet
	executed bool
}

// New constructs an empty Query over st. registry may be nil, in which case
// CREATE's constant-from-type fallback never fires.
func New(st *store.Store, registry *constants.Registry) *Query {
	return &Query{
		id:       uuid.New(),
		st:       st,
		registry: registry,
		ms:       match.New(),
	}
}

// ID returns this Query's execution id, a random UUID assigned by New. It
// is not stored in the graph data and is not included in error messages.
func (q *Query) ID() uuid.UUID { return q.id }

// Create appends a CREATE(path) op compiled from pattern text (spec.md
// §4.3's path-pattern grammar).
func (q *Query) Create(pattern string) (*Query, error) {
	path, err := schema.CompilePathPattern(pattern)
	if err != nil {
		return q, err
	}
	q.ops = append(q.ops, createOp{path: path})
	return q, nil
}

// Match appends a MATCH(path) op compiled from pattern text.
func (q *Query) Match(pattern string) (*Query, error) {
	path, err := schema.CompilePathPattern(pattern)
	if err != nil {
		return q, err
	}
	q.ops = append(q.ops, matchOp{path: path})
	return q, nil
}

// Remove appends a REMOVE(vars) op.
func (q *Query) Remove(vars ...string) *Query {
	q.ops = append(q.ops, removeOp{vars: vars})
	return q
}

// Set appends a SET(var, props, overwrite) op compiled from a property
// literal (spec.md §4.3's property-literal grammar). The literal may be
// given with its surrounding braces, "{k: 1}"; they are stripped before
// compiling.
func (q *Query) Set(variable string, propertyLiteral string, overwrite bool) (*Query, error) {
	text := strings.TrimSpace(propertyLiteral)
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		text = text[1 : len(text)-1]
	}
	updates, err := schema.CompilePropertyLiteral(text)
	if err != nil {
		return q, err
	}
	q.ops = append(q.ops, setOp{variable: variable, updates: updates, overwrite: overwrite})
	return q, nil
}

// SetValues is Set's non-text counterpart, for callers that already hold
// props.Value updates rather than literal source text.
func (q *Query) SetValues(variable string, updates map[string]props.Value, overwrite bool) *Query {
	q.ops = append(q.ops, setOp{variable: variable, updates: updates, overwrite: overwrite})
	return q
}

// Execute runs every op in order over this Query's MatchSet. A Query may be
// executed only once; re-running would replay CREATE ops against rows that
// already reflect their effects.
func (q *Query) Execute(ctx context.Context) error {
	if q.executed {
		return invalidQuery("query has already been executed")
	}
	q.executed = true
	for _, o := range q.ops {
		if err := o.apply(ctx, q.st, q.registry, q.ms); err != nil {
			return err
		}
	}
	return nil
}

// Return executes the query if it has not run yet, then projects each row
// of the final frontier into a map from variable name to opaque reference
// (spec.md §6). A variable missing from any row fails VariableNotFound.
func (q *Query) Return(ctx context.Context, vars ...string) ([]map[string]refs.Ref, error) {
	if !q.executed {
		if err := q.Execute(ctx); err != nil {
			return nil, err
		}
	}
	rows := make([]map[string]refs.Ref, 0, len(q.ms.Current()))
	for _, id := range q.ms.Current() {
		m, ok := q.ms.MatchFor(id)
		if !ok {
			return nil, invalidQuery("row has no match")
		}
		row := make(map[string]refs.Ref, len(vars))
		for _, v := range vars {
			b, ok := m.Get(v)
			if !ok {
				return nil, variableNotFound(v)
			}
			r, err := refs.FromBinding(q.st, b)
			if err != nil {
				return nil, err
			}
			row[v] = r
		}
		rows = append(rows, row)
	}
	return rows, nil
}
