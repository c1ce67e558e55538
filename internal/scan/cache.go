package scan

import (
	"sort"
	"sync"
	"time"
)

// Default cache bounds
const (
	DefaultCacheTTL        = 24 * time.Hour
	DefaultCacheMaxEntries = 1000
	cacheEvictBatch        = 100
)

// Cache memoizes scan summaries by raw URL string.
// Entries expire after the TTL and are evicted lazily on read. When the
// entry count grows past the capacity, the oldest entries are evicted in a
// fixed-size batch. Safe for concurrent use; concurrent scans for the same
// URL are not deduplicated here, both may run the full upstream sequence.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int

	now func() time.Time // test seam
}

// cacheEntry pairs a summary with the time it was stored
type cacheEntry struct {
	summary  *ScanSummary
	storedAt time.Time
}

// NewCache creates a Cache. Zero ttl or maxEntries fall back to the
// package defaults.
func NewCache(ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultCacheMaxEntries
	}
	return &Cache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached summary for a URL, or nil on a miss.
// An expired entry counts as a miss and is removed on the spot.
func (c *Cache) Get(rawURL string) *ScanSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[rawURL]
	if !ok {
		return nil
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, rawURL)
		return nil
	}
	return entry.summary
}

// Put stores a summary under its URL. If the store pushes the cache past
// its capacity, the oldest entries by stored-at time are evicted as one
// batch.
func (c *Cache) Put(rawURL string, summary *ScanSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[rawURL] = cacheEntry{
		summary:  summary,
		storedAt: c.now(),
	}

	if len(c.entries) > c.maxEntries {
		c.evictOldest(cacheEvictBatch)
	}
}

// Len reports the current number of entries, expired or not
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest removes the n entries with the earliest stored-at times.
// Caller must hold the mutex.
func (c *Cache) evictOldest(n int) {
	type aged struct {
		url      string
		storedAt time.Time
	}

	all := make([]aged, 0, len(c.entries))
	for u, entry := range c.entries {
		all = append(all, aged{url: u, storedAt: entry.storedAt})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].storedAt.Before(all[j].storedAt)
	})

	if n > len(all) {
		n = len(all)
	}
	for _, victim := range all[:n] {
		delete(c.entries, victim.url)
	}
}
