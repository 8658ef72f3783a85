package cache

import (
	"container/list"
	"sync"
	"time"
)

// Default maximum number of entries kept in memory.
const DefaultMaxEntries = 1024

// In-memory cache with a TTL per key.
// Holds at most maxEntries items: expired items go first, then the least recently used.
// Expiry is lazy, nothing runs in the background.
type MemCache struct {
	mu         sync.Mutex
	items      map[string]*list.Element
	lru        *list.List
	maxEntries int
	now        func() time.Time
	onEvict    func()
}

// Simple cache item.
type MemCacheItem struct {
	key   string
	value any
	ttl   time.Time
}

type MemCacheOption func(*MemCache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) MemCacheOption {
	return func(mc *MemCache) {
		mc.now = now
	}
}

// WithEvictionHook is called every time a live entry is evicted to make room.
func WithEvictionHook(fn func()) MemCacheOption {
	return func(mc *MemCache) {
		mc.onEvict = fn
	}
}

// NewMemCache creates a new memory cache.
func NewMemCache(maxEntries int, opts ...MemCacheOption) *MemCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	mc := &MemCache{
		items:      make(map[string]*list.Element),
		lru:        list.New(),
		maxEntries: maxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(mc)
	}

	return mc
}

// Get returns a key value, if present and not expired.
func (mc *MemCache) Get(key string) (any, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	elem, exists := mc.items[key]
	if !exists {
		return nil, false
	}

	item := elem.Value.(*MemCacheItem)

	// If the reset time was reached, remove the cache.
	if !mc.now().Before(item.ttl) {
		mc.removeElement(elem)
		return nil, false
	}

	mc.lru.MoveToFront(elem)
	return item.value, true
}

// Set a given key on the cache.
// An existing entry is replaced as a whole, value and expiry.
func (mc *MemCache) Set(key string, value any, ttl time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	expiry := mc.now().Add(ttl)

	if elem, exists := mc.items[key]; exists {
		elem.Value = &MemCacheItem{key: key, value: value, ttl: expiry}
		mc.lru.MoveToFront(elem)
		return
	}

	if mc.lru.Len() >= mc.maxEntries {
		mc.makeRoom()
	}

	mc.items[key] = mc.lru.PushFront(&MemCacheItem{key: key, value: value, ttl: expiry})
}

// Delete a key from the cache.
func (mc *MemCache) Delete(key string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if elem, exists := mc.items[key]; exists {
		mc.removeElement(elem)
	}
}

// Len returns the number of stored entries, expired ones included until they're dropped.
func (mc *MemCache) Len() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	return mc.lru.Len()
}

// makeRoom drops every expired entry, or the least recently used one if none expired.
// Must be called with the lock held.
func (mc *MemCache) makeRoom() {
	now := mc.now()
	removed := false

	for elem := mc.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if !now.Before(elem.Value.(*MemCacheItem).ttl) {
			mc.removeElement(elem)
			removed = true
		}
		elem = prev
	}

	if removed {
		return
	}

	if oldest := mc.lru.Back(); oldest != nil {
		mc.removeElement(oldest)
		if mc.onEvict != nil {
			mc.onEvict()
		}
	}
}

func (mc *MemCache) removeElement(elem *list.Element) {
	mc.lru.Remove(elem)
	delete(mc.items, elem.Value.(*MemCacheItem).key)
}
