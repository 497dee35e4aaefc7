// Package constants implements the external constants registry of spec.md
// §6: a pure lookup from a type's Uid to a canonical term realizing that
// type, consulted by the create-path engine's constant-from-type fallback
// (§4.7 rules 6/4).
package constants

import (
	"sync"

	"github.com/ritamzico/implica/internal/ident"
	"github.com/ritamzico/implica/internal/typing"
)

// Registry is a concurrency-safe map from type Uid to the term that
// realizes it, guarded by a sync.RWMutex. Entries are not write-once:
// Register replaces an existing entry and Unregister removes it.
type Registry struct {
	mu    sync.RWMutex
	terms map[ident.Uid]*typing.Term
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{terms: make(map[ident.Uid]*typing.Term)}
}

// Register associates typeUid with term. term must inhabit typeUid;
// callers are expected to have validated this via typing.Type.Uid().
// A second registration for the same type replaces the first.
func (r *Registry) Register(typeUid ident.Uid, term *typing.Term) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terms[typeUid] = term
}

// Unregister removes typeUid's canonical term, if any.
func (r *Registry) Unregister(typeUid ident.Uid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.terms, typeUid)
}

// InferTerm implements infer_term(type_uid) -> Option<Term>. A missing
// entry is reported via ok=false, never an error.
func (r *Registry) InferTerm(typeUid ident.Uid) (*typing.Term, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tm, ok := r.terms[typeUid]
	return tm, ok
}
