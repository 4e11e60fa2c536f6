package service

import (
	"sync"

	"github.com/symphogen/mimer-admin/internal/domain"
)

// envCache is a per-environment entity list guarded by a single lock. The
// original tool mutated plain per-environment dictionaries and leaned on the
// low write contention of an internal admin console; here the discipline is
// explicit so concurrent Save/Delete calls stay safe.
type envCache[T any] struct {
	mu    sync.RWMutex
	items map[domain.Environment][]*T
}

func newEnvCache[T any]() *envCache[T] {
	return &envCache[T]{items: make(map[domain.Environment][]*T)}
}

// get returns a shallow copy of the environment's list and whether the cache
// held anything for it. An empty list counts as a miss, matching the
// read-through contract.
func (c *envCache[T]) get(env domain.Environment) ([]*T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items, ok := c.items[env]
	if !ok || len(items) == 0 {
		return nil, false
	}
	return append([]*T(nil), items...), true
}

// set replaces the environment's list.
func (c *envCache[T]) set(env domain.Environment, items []*T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[env] = items
}

// upsert removes any entry with the same ID and appends the new one, so the
// latest save always sits at the end of the list.
func (c *envCache[T]) upsert(env domain.Environment, item *T, id func(*T) string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.items[env]
	out := make([]*T, 0, len(items)+1)
	for _, existing := range items {
		if id(existing) != id(item) {
			out = append(out, existing)
		}
	}
	c.items[env] = append(out, item)
}

// remove deletes the entry with the given ID, reporting whether it was
// present.
func (c *envCache[T]) remove(env domain.Environment, target string, id func(*T) string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.items[env]
	for i, existing := range items {
		if id(existing) == target {
			c.items[env] = append(items[:i], items[i+1:]...)
			return true
		}
	}
	return false
}
