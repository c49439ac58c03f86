// Package fetch provides the scoped TTL cache the directory components
// share: staleness-window reuse, singleflight coalescing of concurrent
// loads, and a disabled state for absent scope ids.
package fetch

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the staleness window for directory fetches.
const DefaultTTL = 30 * time.Second

// keySep separates key parts. Unit separator; never appears in ids.
const keySep = "\x1f"

// Key builds a cache key from a scope id and extra parameters. An empty
// scope id yields the empty key, which Get treats as disabled: this is
// the single gate implementing "no scope, no fetch" for every directory.
func Key(scopeID string, extra ...string) string {
	if scopeID == "" {
		return ""
	}
	if len(extra) == 0 {
		return scopeID
	}
	return scopeID + keySep + strings.Join(extra, keySep)
}

// Cache is a keyed TTL cache. Values are replaced wholesale on refresh;
// entries for invalidated keys are never written by late loads.
type Cache[T any] struct {
	mu       sync.RWMutex
	ttl      time.Duration
	entries  map[string]*entry[T]
	gens     map[string]uint64
	inFlight map[string]int
	group    singleflight.Group
}

type entry[T any] struct {
	value     T
	fetchedAt time.Time
}

// New creates a cache with the given staleness window. Non-positive ttl
// falls back to DefaultTTL.
func New[T any](ttl time.Duration) *Cache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[T]{
		ttl:      ttl,
		entries:  make(map[string]*entry[T]),
		gens:     make(map[string]uint64),
		inFlight: make(map[string]int),
	}
}

// Get returns the cached value for key, calling load on a miss or after
// the staleness window. Concurrent callers for the same key share one
// load. The empty key is the disabled state: load is never called and
// the zero value is returned with no error.
func (c *Cache[T]) Get(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if key == "" {
		return zero, nil
	}

	// Fast path: fresh cached value.
	c.mu.RLock()
	if e, ok := c.entries[key]; ok && time.Since(e.fetchedAt) < c.ttl {
		v := e.value
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	// Slow path: load via singleflight to coalesce concurrent refreshes.
	v, err, _ := c.group.Do(key, func() (any, error) {
		// Double-check after winning the flight.
		c.mu.Lock()
		if e, ok := c.entries[key]; ok && time.Since(e.fetchedAt) < c.ttl {
			v := e.value
			c.mu.Unlock()
			return v, nil
		}
		start := c.gens[key]
		c.inFlight[key]++
		c.mu.Unlock()

		value, err := load(ctx)

		c.mu.Lock()
		c.inFlight[key]--
		if c.inFlight[key] == 0 {
			delete(c.inFlight, key)
		}
		// A key invalidated mid-flight keeps its bumped generation;
		// the stale result is returned to waiting callers but never
		// stored.
		if err == nil && c.gens[key] == start {
			c.entries[key] = &entry[T]{value: value, fetchedAt: time.Now()}
		}
		c.mu.Unlock()

		if err != nil {
			return nil, err
		}
		return value, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// Peek returns the cached value for key without loading, regardless of
// staleness.
func (c *Cache[T]) Peek(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[key]; ok {
		return e.value, true
	}
	var zero T
	return zero, false
}

// Loading reports whether a load is in flight for key with no fresh
// cached value to serve meanwhile.
func (c *Cache[T]) Loading(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.inFlight[key] == 0 {
		return false
	}
	e, ok := c.entries[key]
	return !ok || time.Since(e.fetchedAt) >= c.ttl
}

// Invalidate drops the entry for key and abandons any in-flight load:
// its result will not be stored, and later Gets start a fresh load.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	c.gens[key]++
	delete(c.entries, key)
	c.mu.Unlock()
	c.group.Forget(key)
}

// InvalidateAll drops every entry and abandons all in-flight loads.
func (c *Cache[T]) InvalidateAll() {
	c.mu.Lock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	for k := range c.inFlight {
		keys = append(keys, k)
	}
	for _, k := range keys {
		c.gens[k]++
	}
	c.entries = make(map[string]*entry[T])
	c.mu.Unlock()
	for _, k := range keys {
		c.group.Forget(k)
	}
}
