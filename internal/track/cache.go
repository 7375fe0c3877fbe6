// internal/track/cache.go
package track

import (
	"container/list"
	"sync"
)

// windowCache is a size-bounded map with O(1) hit/insert and LRU eviction.
// Safe for concurrent use: loads happen on pool workers while readiness is
// queried from the interactive thread.
type windowCache[V any] struct {
	mu  sync.Mutex
	cap int
	ll  *list.List
	m   map[string]*list.Element
}

type cacheNode[V any] struct {
	k string
	v V
}

func newWindowCache[V any](capacity int) *windowCache[V] {
	if capacity <= 0 {
		capacity = 32
	}
	return &windowCache[V]{cap: capacity, ll: list.New(), m: make(map[string]*list.Element, capacity)}
}

// Get returns the value for k and marks it recently used.
func (c *windowCache[V]) Get(k string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.m[k]; ok {
		c.ll.MoveToFront(e)
		return e.Value.(*cacheNode[V]).v, true
	}
	var zero V
	return zero, false
}

// Has reports presence without touching recency.
func (c *windowCache[V]) Has(k string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.m[k]
	return ok
}

// Put inserts or replaces k, evicting the least recently used entry when full.
func (c *windowCache[V]) Put(k string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.m[k]; ok {
		e.Value.(*cacheNode[V]).v = v
		c.ll.MoveToFront(e)
		return
	}
	c.m[k] = c.ll.PushFront(&cacheNode[V]{k: k, v: v})
	if c.ll.Len() > c.cap {
		if tail := c.ll.Back(); tail != nil {
			c.ll.Remove(tail)
			delete(c.m, tail.Value.(*cacheNode[V]).k)
		}
	}
}

func (c *windowCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
