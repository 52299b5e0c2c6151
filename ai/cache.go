package ai

import (
	"strings"
	"sync"

	"github.com/poiesic/scout/core"
)

// DefaultIntentCacheSize is the high-water mark for NewIntentCache(0).
const DefaultIntentCacheSize = 1000

// IntentCache is a bounded cache of parsed intents keyed by a normalized
// hash of the raw query text. When the high-water mark is reached the
// oldest half of the entries is evicted. Safe for concurrent use across
// simultaneous searches.
type IntentCache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[uint64]core.Intent
	order    []uint64 // insertion order, oldest first
}

// NewIntentCache creates a cache with the given high-water mark.
// A capacity <= 0 uses DefaultIntentCacheSize.
func NewIntentCache(capacity int) *IntentCache {
	if capacity <= 0 {
		capacity = DefaultIntentCacheSize
	}
	return &IntentCache{
		capacity: capacity,
		entries:  make(map[uint64]core.Intent),
	}
}

func cacheKey(query string) uint64 {
	return core.HashText(strings.ToLower(strings.TrimSpace(query)))
}

// Get returns the cached intent for a query, if present.
func (c *IntentCache) Get(query string) (core.Intent, bool) {
	key := cacheKey(query)
	c.mu.RLock()
	defer c.mu.RUnlock()
	intent, ok := c.entries[key]
	return intent, ok
}

// Put stores a parsed intent, evicting the oldest half of the cache when
// the high-water mark is reached.
func (c *IntentCache) Put(query string, intent core.Intent) {
	key := cacheKey(query)
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		// Evict at least one entry so small capacities stay bounded.
		n := len(c.order) / 2
		if n == 0 {
			n = 1
		}
		for _, k := range c.order[:n] {
			delete(c.entries, k)
		}
		c.order = append([]uint64(nil), c.order[n:]...)
	}

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = intent
}

// Len returns the number of cached intents.
func (c *IntentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops all cached intents.
func (c *IntentCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]core.Intent)
	c.order = nil
}
