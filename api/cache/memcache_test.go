package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemCacheGetSet(t *testing.T) {
	clock := newFakeClock()
	mc := NewMemCache(10, WithClock(clock.Now))

	_, ok := mc.Get("missing")
	assert.False(t, ok)

	mc.Set("key", "value", time.Minute)

	value, ok := mc.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", value)
}

func TestMemCacheExpiry(t *testing.T) {
	clock := newFakeClock()
	mc := NewMemCache(10, WithClock(clock.Now))

	mc.Set("short", 1, time.Minute)
	mc.Set("long", 2, 15*time.Minute)

	clock.Advance(59 * time.Second)
	_, ok := mc.Get("short")
	assert.True(t, ok)

	// Expiry is inclusive.
	clock.Advance(time.Second)
	_, ok = mc.Get("short")
	assert.False(t, ok)
	assert.Equal(t, 1, mc.Len())

	value, ok := mc.Get("long")
	assert.True(t, ok)
	assert.Equal(t, 2, value)
}

func TestMemCacheOverwrite(t *testing.T) {
	clock := newFakeClock()
	mc := NewMemCache(10, WithClock(clock.Now))

	mc.Set("key", "old", time.Minute)
	clock.Advance(50 * time.Second)
	mc.Set("key", "new", time.Minute)
	clock.Advance(50 * time.Second)

	value, ok := mc.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "new", value)
	assert.Equal(t, 1, mc.Len())
}

func TestMemCacheEvictsLeastRecentlyUsed(t *testing.T) {
	evicted := 0
	mc := NewMemCache(2, WithEvictionHook(func() { evicted++ }))

	mc.Set("a", 1, time.Hour)
	mc.Set("b", 2, time.Hour)

	// Touch a, so b becomes the least recently used.
	_, ok := mc.Get("a")
	assert.True(t, ok)

	mc.Set("c", 3, time.Hour)

	_, ok = mc.Get("b")
	assert.False(t, ok)
	_, ok = mc.Get("a")
	assert.True(t, ok)
	_, ok = mc.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, mc.Len())
	assert.Equal(t, 1, evicted)
}

func TestMemCacheEvictsExpiredFirst(t *testing.T) {
	clock := newFakeClock()
	evicted := 0
	mc := NewMemCache(3, WithClock(clock.Now), WithEvictionHook(func() { evicted++ }))

	mc.Set("old", 1, time.Hour)
	mc.Set("expiring", 2, time.Minute)
	mc.Set("recent", 3, time.Hour)

	clock.Advance(2 * time.Minute)
	mc.Set("new", 4, time.Hour)

	// The expired entry made room, the least recently used one stays.
	_, ok := mc.Get("old")
	assert.True(t, ok)
	_, ok = mc.Get("expiring")
	assert.False(t, ok)
	assert.Equal(t, 3, mc.Len())
	assert.Equal(t, 0, evicted)
}

// Many distinct keys never grow the cache past its bound.
func TestMemCacheBounded(t *testing.T) {
	mc := NewMemCache(16)

	for i := range 10_000 {
		mc.Set(fmt.Sprintf("days_%d", i), i, time.Hour)
	}

	assert.Equal(t, 16, mc.Len())
	value, ok := mc.Get("days_9999")
	assert.True(t, ok)
	assert.Equal(t, 9999, value)
}

func TestMemCacheDelete(t *testing.T) {
	mc := NewMemCache(0)
	assert.Equal(t, DefaultMaxEntries, mc.maxEntries)

	mc.Set("key", 1, time.Hour)
	mc.Delete("key")
	mc.Delete("missing")

	_, ok := mc.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, mc.Len())
}

func TestMemCacheConcurrentAccess(t *testing.T) {
	mc := NewMemCache(8)

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("key_%d", i%12)
			for range 100 {
				mc.Set(key, i, time.Minute)
				mc.Get(key)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, mc.Len(), 8)
}
