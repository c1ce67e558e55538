package scan

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCache builds a cache with a controllable clock
func newTestCache(ttl time.Duration, maxEntries int) (*Cache, *time.Time) {
	c := NewCache(ttl, maxEntries)
	current := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return current }
	return c, &current
}

func TestCacheHitAndMiss(t *testing.T) {
	c, _ := newTestCache(24*time.Hour, 1000)

	assert.Nil(t, c.Get("https://example.com"))

	summary := &ScanSummary{URL: "https://example.com", Safe: true}
	c.Put("https://example.com", summary)

	got := c.Get("https://example.com")
	require.NotNil(t, got)
	assert.Same(t, summary, got, "the cache replays the stored summary")

	// The key is the raw URL string, no normalization
	assert.Nil(t, c.Get("https://example.com/"))
}

func TestCacheExpiryIsLazy(t *testing.T) {
	c, clock := newTestCache(24*time.Hour, 1000)

	c.Put("https://example.com", &ScanSummary{URL: "https://example.com"})

	// Just inside the TTL
	*clock = clock.Add(24*time.Hour - time.Second)
	assert.NotNil(t, c.Get("https://example.com"))

	// Past the TTL the entry is evicted on read
	*clock = clock.Add(2 * time.Second)
	assert.Nil(t, c.Get("https://example.com"))
	assert.Equal(t, 0, c.Len())
}

func TestCacheCapacityEvictsOldestBatch(t *testing.T) {
	c, clock := newTestCache(24*time.Hour, 1000)

	// Fill to capacity with strictly increasing timestamps
	for i := 0; i < 1000; i++ {
		c.Put(fmt.Sprintf("https://example.com/%d", i), &ScanSummary{})
		*clock = clock.Add(time.Millisecond)
	}
	assert.Equal(t, 1000, c.Len())

	// The 1001st entry triggers eviction of exactly the 100 oldest
	c.Put("https://example.com/overflow", &ScanSummary{})
	assert.Equal(t, 901, c.Len())

	for i := 0; i < 100; i++ {
		assert.Nil(t, c.Get(fmt.Sprintf("https://example.com/%d", i)), "entry %d should have been evicted", i)
	}
	assert.NotNil(t, c.Get("https://example.com/100"))
	assert.NotNil(t, c.Get("https://example.com/overflow"))
}

func TestCacheOverwriteRefreshesTimestamp(t *testing.T) {
	c, clock := newTestCache(24*time.Hour, 1000)

	c.Put("https://example.com", &ScanSummary{URL: "old"})
	*clock = clock.Add(23 * time.Hour)
	c.Put("https://example.com", &ScanSummary{URL: "new"})

	// The refreshed entry survives past the original TTL window
	*clock = clock.Add(2 * time.Hour)
	got := c.Get("https://example.com")
	require.NotNil(t, got)
	assert.Equal(t, "new", got.URL)
}
