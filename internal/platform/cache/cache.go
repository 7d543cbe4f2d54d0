// Package cache holds computed query results in memory with LRU eviction and
// a TTL. Concurrent misses for the same key share one computation.
package cache

import (
	"container/list"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

// Cache is an LRU cache of V keyed by request fingerprint.
type Cache[V any] struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu         sync.Mutex
	entries    map[uint64]*entry[V]
	lru        *list.List
	generation uint64

	group singleflight.Group

	hits   uint64
	misses uint64
}

type entry[V any] struct {
	key     string
	hash    uint64
	value   V
	stored  time.Time
	element *list.Element
}

// Stats is a point-in-time view of cache usage.
type Stats struct {
	Size     int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// New creates a cache holding at most capacity entries for ttl each. A
// capacity below one disables storage; a zero ttl never expires entries.
func New[V any](capacity int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[uint64]*entry[V]),
		lru:      list.New(),
	}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(key)
}

func (c *Cache[V]) getLocked(key string) (V, bool) {
	var zero V
	h := xxhash.Sum64String(key)
	e, ok := c.entries[h]
	if !ok || e.key != key {
		return zero, false
	}
	if c.ttl > 0 && c.now().Sub(e.stored) > c.ttl {
		c.removeLocked(e)
		return zero, false
	}
	c.lru.MoveToFront(e.element)
	return e.value, true
}

func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putLocked(key, value)
}

func (c *Cache[V]) putLocked(key string, value V) {
	if c.capacity < 1 {
		return
	}
	h := xxhash.Sum64String(key)
	if e, ok := c.entries[h]; ok {
		// Same key refreshes; a hash collision replaces the older key.
		e.key = key
		e.value = value
		e.stored = c.now()
		c.lru.MoveToFront(e.element)
		return
	}

	e := &entry[V]{key: key, hash: h, value: value, stored: c.now()}
	e.element = c.lru.PushFront(e)
	c.entries[h] = e

	if c.lru.Len() > c.capacity {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeLocked(oldest.Value.(*entry[V]))
		}
	}
}

func (c *Cache[V]) removeLocked(e *entry[V]) {
	c.lru.Remove(e.element)
	delete(c.entries, e.hash)
}

// GetOrCompute returns the cached value for key or runs compute once for all
// concurrent callers of the same key. Errors are returned and not cached. A
// result computed across a Clear is returned but not stored.
func (c *Cache[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	c.mu.Lock()
	if v, ok := c.getLocked(key); ok {
		c.hits++
		c.mu.Unlock()
		return v, nil
	}
	c.misses++
	gen := c.generation
	c.mu.Unlock()

	flightKey := strconv.FormatUint(gen, 10) + ":" + key
	v, err, _ := c.group.Do(flightKey, func() (any, error) {
		v, err := compute()
		if err != nil {
			return v, err
		}
		c.mu.Lock()
		if c.generation == gen {
			c.putLocked(key, v)
		}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// Clear drops every entry. Computations already running will not store.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]*entry[V])
	c.lru = list.New()
	c.generation++
}

func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:     len(c.entries),
		Capacity: c.capacity,
		Hits:     c.hits,
		Misses:   c.misses,
	}
}
