package store

import (
	"sync"

	"github.com/ritamzico/implica/internal/ident"
)

// shardCount is the number of lock stripes per index. Readers contending on
// different shards never block each other (spec.md §5: "lock-sharded
// concurrent associative containers").
const shardCount = 16

// uidMap is a lock-sharded map keyed by ident.Uid, generalizing the single
// sync.RWMutex the teacher wraps around its adjacency maps
// (internal/graph/probabilistic_adjacency_list_graph.go) into a striped
// container so unrelated keys never contend.
type uidMap[V any] struct {
	shards [shardCount]struct {
		mu sync.RWMutex
		m  map[ident.Uid]V
	}
}

func newUidMap[V any]() *uidMap[V] {
	um := &uidMap[V]{}
	for i := range um.shards {
		um.shards[i].m = make(map[ident.Uid]V)
	}
	return um
}

func (um *uidMap[V]) shardFor(key ident.Uid) *struct {
	mu sync.RWMutex
	m  map[ident.Uid]V
} {
	return &um.shards[key[0]%shardCount]
}

func (um *uidMap[V]) Get(key ident.Uid) (V, bool) {
	s := um.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

func (um *uidMap[V]) Set(key ident.Uid, value V) {
	s := um.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

// SetIfAbsent stores value under key only if key is unset, returning the
// value now stored (the new one on insert, the existing one on conflict) and
// whether it inserted.
func (um *uidMap[V]) SetIfAbsent(key ident.Uid, value V) (V, bool) {
	s := um.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.m[key]; ok {
		return existing, false
	}
	s.m[key] = value
	return value, true
}

func (um *uidMap[V]) Delete(key ident.Uid) {
	s := um.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

func (um *uidMap[V]) Has(key ident.Uid) bool {
	_, ok := um.Get(key)
	return ok
}

// Keys returns a snapshot of every key currently stored, across all shards.
func (um *uidMap[V]) Keys() []ident.Uid {
	var out []ident.Uid
	for i := range um.shards {
		s := &um.shards[i]
		s.mu.RLock()
		for k := range s.m {
			out = append(out, k)
		}
		s.mu.RUnlock()
	}
	return out
}

// edgeKey is the composite key for edge-indexed containers: a directed pair
// of node Uids. Arrays are comparable, so edgeKey is usable as a plain map
// key without a custom hash.
type edgeKey struct {
	Start, End ident.Uid
}

// edgeMap is a lock-sharded map keyed by edgeKey, striped on Start the same
// way uidMap stripes on the bare Uid.
type edgeMap[V any] struct {
	shards [shardCount]struct {
		mu sync.RWMutex
		m  map[edgeKey]V
	}
}

func newEdgeMap[V any]() *edgeMap[V] {
	em := &edgeMap[V]{}
	for i := range em.shards {
		em.shards[i].m = make(map[edgeKey]V)
	}
	return em
}

func (em *edgeMap[V]) shardFor(key edgeKey) *struct {
	mu sync.RWMutex
	m  map[edgeKey]V
} {
	return &em.shards[key.Start[0]%shardCount]
}

func (em *edgeMap[V]) Get(key edgeKey) (V, bool) {
	s := em.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

func (em *edgeMap[V]) Set(key edgeKey, value V) {
	s := em.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func (em *edgeMap[V]) Delete(key edgeKey) {
	s := em.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

func (em *edgeMap[V]) Has(key edgeKey) bool {
	_, ok := em.Get(key)
	return ok
}

func (em *edgeMap[V]) Keys() []edgeKey {
	var out []edgeKey
	for i := range em.shards {
		s := &em.shards[i]
		s.mu.RLock()
		for k := range s.m {
			out = append(out, k)
		}
		s.mu.RUnlock()
	}
	return out
}

// uidSetMap maps a Uid to a growable set of edgeKeys, used for start_to_edge
// and end_to_edge. Each bucket has its own mutex.
type uidSetMap struct {
	shards [shardCount]struct {
		mu sync.RWMutex
		m  map[ident.Uid]map[edgeKey]struct{}
	}
}

func newUidSetMap() *uidSetMap {
	sm := &uidSetMap{}
	for i := range sm.shards {
		sm.shards[i].m = make(map[ident.Uid]map[edgeKey]struct{})
	}
	return sm
}

func (sm *uidSetMap) shardFor(key ident.Uid) *struct {
	mu sync.RWMutex
	m  map[ident.Uid]map[edgeKey]struct{}
} {
	return &sm.shards[key[0]%shardCount]
}

func (sm *uidSetMap) Add(key ident.Uid, item edgeKey) {
	s := sm.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.m[key]
	if !ok {
		set = make(map[edgeKey]struct{})
		s.m[key] = set
	}
	set[item] = struct{}{}
}

func (sm *uidSetMap) Remove(key ident.Uid, item edgeKey) {
	s := sm.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if set, ok := s.m[key]; ok {
		delete(set, item)
		if len(set) == 0 {
			delete(s.m, key)
		}
	}
}

func (sm *uidSetMap) Get(key ident.Uid) []edgeKey {
	s := sm.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]edgeKey, 0, len(s.m[key]))
	for k := range s.m[key] {
		out = append(out, k)
	}
	return out
}
