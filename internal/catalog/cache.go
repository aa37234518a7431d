package catalog

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a memoized response stays readable.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	data      any
	timestamp time.Time
}

// Cache memoizes successful catalog responses for a fixed window.
//
// An entry is readable while now-timestamp < ttl. Expired entries are evicted
// lazily when their key is looked up; nothing sweeps in the background. When
// maxEntries > 0 the oldest entry is dropped on insert past the bound.
// Concurrent misses for the same key share one fetch.
//
// Create one per process and hand it to NewClient. No teardown is needed.
type Cache struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
	flight  singleflight.Group
}

// NewCache creates a cache. ttl <= 0 selects DefaultCacheTTL; maxEntries <= 0 means unbounded.
func NewCache(ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &Cache{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		entries:    make(map[string]cacheEntry),
	}
}

// CacheKey builds a key from an operation name and its positional arguments,
// serialized as a JSON array (map keys are emitted sorted, so it is canonical).
func CacheKey(op string, args ...any) string {
	if args == nil {
		args = []any{}
	}
	b, err := json.Marshal(args)
	if err != nil {
		return op + "_" + fmt.Sprint(args...)
	}
	return op + "_" + string(b)
}

// Get returns live data for key. An expired entry is deleted and reported absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.timestamp) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.data, true
}

// Set stores data under key with the current timestamp.
func (c *Cache) Set(key string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{data: data, timestamp: c.now()}
	if c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		c.evictOldestLocked()
	}
}

// GetOrFetch returns live data for key, or runs fetch and stores its result.
// Errors are returned as-is and never stored.
func (c *Cache) GetOrFetch(key string, fetch func() (any, error)) (any, error) {
	if data, ok := c.Get(key); ok {
		return data, nil
	}

	data, err, _ := c.flight.Do(key, func() (any, error) {
		// Another caller may have filled the entry while we waited for the flight slot
		if data, ok := c.Get(key); ok {
			return data, nil
		}
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		c.Set(key, data)
		return data, nil
	})
	return data, err
}

// Len returns the number of stored entries, live or not yet evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	first := true
	for k, e := range c.entries {
		if first || e.timestamp.Before(oldest) {
			oldestKey, oldest, first = k, e.timestamp, false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
