// Package memo provides a concurrency-safe memoizing cache with
// single-flight loading.
//
// The cache collapses concurrent loads for the same key into one
// computation, tracks recency for optional LRU eviction, and supports
// an optional expire-after-access window checked lazily on lookup. It
// never caches failed computations and runs no background goroutines.
package memo

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes values by string key.
//
// A zero capacity means the cache is unbounded; a zero ttl means
// entries never expire. All methods are safe for concurrent use.
type Cache[V any] struct {
	capacity int
	ttl      time.Duration

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front is most recently used

	group singleflight.Group

	hits      atomic.Int64
	misses    atomic.Int64
	loads     atomic.Int64
	failures  atomic.Int64
	evictions atomic.Int64
}

type entry[V any] struct {
	key        string
	value      V
	lastAccess time.Time
}

// New creates a cache with the given capacity and expire-after-access
// window. Pass zero for either to disable the corresponding limit.
func New[V any](capacity int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached value for key.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.lookup(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// GetOrLoad returns the cached value for key, computing it with load
// on a miss. Concurrent calls for the same missing key share a single
// load; every caller receives that one call's value or error.
//
// The boolean result reports whether this call executed the load
// function itself, as opposed to finding a cached value or sharing a
// computation started by another caller. Failed loads are never
// stored.
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error)) (V, bool, error) {
	if v, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return v, false, nil
	}
	c.misses.Add(1)

	executed := false
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another flight may have stored the value between this
		// caller's miss and the flight starting.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}

		executed = true
		c.loads.Add(1)
		value, err := load()
		if err != nil {
			c.failures.Add(1)
			return nil, err
		}
		c.store(key, value)
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, executed, err
	}
	return v.(V), executed, nil
}

// Invalidate removes the entry for key, if any, and forgets any
// in-flight computation for it so that subsequent calls start fresh.
// Callers already waiting on an in-flight computation still receive
// its result.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	if elem, ok := c.entries[key]; ok {
		c.remove(elem)
	}
	c.mu.Unlock()
	c.group.Forget(key)
}

// Contains reports whether key is cached and unexpired. It does not
// refresh recency and records no statistics.
func (c *Cache[V]) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[key]
	if !ok {
		return false
	}
	return !c.expired(elem.Value.(*entry[V]))
}

// Len returns the number of cached entries, including any that have
// expired but not yet been collected by a lookup.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// lookup fetches key without recording hit/miss statistics. Expired
// entries are removed and reported as absent.
func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	ent := elem.Value.(*entry[V])
	if c.expired(ent) {
		c.remove(elem)
		var zero V
		return zero, false
	}

	ent.lastAccess = time.Now()
	c.order.MoveToFront(elem)
	return ent.value, true
}

// store inserts or replaces the value for key, evicting the least
// recently used entry when the cache is over capacity.
func (c *Cache[V]) store(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry[V])
		ent.value = value
		ent.lastAccess = time.Now()
		c.order.MoveToFront(elem)
		return
	}

	c.entries[key] = c.order.PushFront(&entry[V]{
		key:        key,
		value:      value,
		lastAccess: time.Now(),
	})

	if c.capacity > 0 && c.order.Len() > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
			c.evictions.Add(1)
		}
	}
}

// remove deletes an element. Caller must hold c.mu.
func (c *Cache[V]) remove(elem *list.Element) {
	ent := elem.Value.(*entry[V])
	delete(c.entries, ent.key)
	c.order.Remove(elem)
}

func (c *Cache[V]) expired(ent *entry[V]) bool {
	return c.ttl > 0 && time.Since(ent.lastAccess) > c.ttl
}
