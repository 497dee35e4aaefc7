package props

import (
	"maps"
	"sync"
)

// PropertyMap is a string-keyed map of Value, individually lock-protected
// per spec.md §5 ("Property maps are individually lock-protected"). Keys are
// unique; Set fails unless overwrite is true or the key is absent.
type PropertyMap struct {
	mu sync.RWMutex
	m  map[string]Value
}

// NewPropertyMap constructs an empty property map, optionally seeded from
// initial (which is defensively copied, mirroring the teacher's
// maps.Clone(props) in AddNode/AddEdge).
func NewPropertyMap(initial map[string]Value) *PropertyMap {
	return &PropertyMap{m: maps.Clone(initial)}
}

// Get returns the value stored under key.
func (p *PropertyMap) Get(key string) (Value, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.m[key]
	return v, ok
}

// Set inserts or replaces key. It fails with VariableAlreadyExists if key is
// already present and overwrite is false.
func (p *PropertyMap) Set(key string, value Value, overwrite bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.m == nil {
		p.m = make(map[string]Value)
	}
	if _, exists := p.m[key]; exists && !overwrite {
		return keyAlreadyExists(key)
	}
	p.m[key] = value
	return nil
}

// Merge applies every key in updates via Set, using the same overwrite rule
// for each key, aborting (with partial application already applied) on the
// first conflict.
func (p *PropertyMap) Merge(updates map[string]Value, overwrite bool) error {
	for k, v := range updates {
		if err := p.Set(k, v, overwrite); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns a defensive copy of the underlying map.
func (p *PropertyMap) Snapshot() map[string]Value {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return maps.Clone(p.m)
}

// Len reports the number of stored keys.
func (p *PropertyMap) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.m)
}
