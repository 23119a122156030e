package cache

import (
	"sync"
	"time"

	"github.com/laminkinte/business-development-dashboard-sub000/internal/clock"
)

// Cache is a read-through TTL store. Stale entries are bypassed on lookup,
// not evicted; a later Set for the same key overwrites in place.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Len() int
}

type entry[V any] struct {
	value    V
	storedAt time.Time
	ttl      time.Duration
}

type ttlCache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]
	clock   clock.Clock
}

// NewTTLCache returns an in-memory TTL cache. The mutex makes the
// check-then-set sequence safe across concurrent sessions.
func NewTTLCache[K comparable, V any](clk clock.Clock) Cache[K, V] {
	if clk == nil {
		clk = clock.NewSystemClock()
	}
	return &ttlCache[K, V]{
		entries: make(map[K]entry[V]),
		clock:   clk,
	}
}

func (c *ttlCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	item, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if item.ttl > 0 && c.clock.Now().Sub(item.storedAt) >= item.ttl {
		return zero, false
	}
	return item.value, true
}

func (c *ttlCache[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:    value,
		storedAt: c.clock.Now(),
		ttl:      ttl,
	}
}

func (c *ttlCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
