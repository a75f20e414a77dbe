package cache

import (
	"container/list"
	"sync"
)

// evictionQuantum is the minimum amount the byte estimate drops per
// evicted entry. Entry sizes are caller-supplied estimates, so eviction
// must make progress even when they understate reality.
const evictionQuantum = 1024

// Stats is a point-in-time snapshot of one cache.
type Stats struct {
	// Entries is the number of cached values.
	Entries int `json:"entries"`

	// Bytes is the estimated memory held by cached values.
	Bytes int64 `json:"bytes"`

	// Hits and Misses count Get outcomes since construction. Clear
	// does not reset them.
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

type entry[K comparable, V any] struct {
	key  K
	val  V
	size int64
}

// Cache is a bounded LRU map. It holds at most a fixed number of
// entries and an approximate byte budget; inserting past either limit
// evicts least recently used entries until both hold again.
//
// Values may be nil pointers: a cached nil is a real entry, and Get
// reports it with ok=true. That lets callers remember "computed, no
// result" distinctly from "never computed".
//
// All methods are safe for concurrent use. Every operation is a leaf
// call under one mutex; nothing here calls back into user code.
type Cache[K comparable, V any] struct {
	mu         sync.Mutex
	maxEntries int
	maxBytes   int64
	ll         *list.List
	items      map[K]*list.Element
	bytes      int64
	hits       int64
	misses     int64
}

// New creates a cache bounded by maxEntries entries and maxMemoryMB
// megabytes. Bounds below 1 are raised to 1.
func New[K comparable, V any](maxEntries, maxMemoryMB int) *Cache[K, V] {
	if maxEntries < 1 {
		maxEntries = 1
	}
	if maxMemoryMB < 1 {
		maxMemoryMB = 1
	}
	return &Cache[K, V]{
		maxEntries: maxEntries,
		maxBytes:   int64(maxMemoryMB) * 1024 * 1024,
		ll:         list.New(),
		items:      make(map[K]*list.Element),
	}
}

// Get returns the cached value for key and marks it most recently
// used. ok is false only on a true miss.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		c.hits++
		return el.Value.(*entry[K, V]).val, true
	}
	c.misses++
	var zero V
	return zero, false
}

// Put inserts or replaces the value for key with the given size
// estimate in bytes, then evicts until the cache is within bounds.
// Replacing a key swaps its size contribution rather than adding to it.
func (c *Cache[K, V]) Put(key K, val V, size int64) {
	if size < 0 {
		size = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry[K, V])
		c.bytes -= e.size
		e.val = val
		e.size = size
		c.bytes += size
		c.ll.MoveToFront(el)
	} else {
		c.items[key] = c.ll.PushFront(&entry[K, V]{key: key, val: val, size: size})
		c.bytes += size
	}
	c.evict()
}

// evict removes least recently used entries while either bound is
// exceeded. The byte estimate drops by the average entry share, floored
// at the eviction quantum, per removal; sizes are estimates and this
// keeps the accounting moving in the right direction without trusting
// any single one of them.
func (c *Cache[K, V]) evict() {
	for c.ll.Len() > c.maxEntries || c.bytes > c.maxBytes {
		el := c.ll.Back()
		if el == nil {
			c.bytes = 0
			return
		}
		e := c.ll.Remove(el).(*entry[K, V])
		delete(c.items, e.key)

		reduction := int64(evictionQuantum)
		if n := int64(c.ll.Len()); n > 0 {
			if per := c.bytes / n; per > reduction {
				reduction = per
			}
		}
		c.bytes -= reduction
		if c.bytes < 0 {
			c.bytes = 0
		}
	}
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// MemoryUsage returns the estimated bytes held by the cache.
func (c *Cache[K, V]) MemoryUsage() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bytes
}

// Clear drops every entry. Hit and miss counters keep running.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[K]*list.Element)
	c.bytes = 0
}

// Snapshot returns current stats.
func (c *Cache[K, V]) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries: c.ll.Len(),
		Bytes:   c.bytes,
		Hits:    c.hits,
		Misses:  c.misses,
	}
}
