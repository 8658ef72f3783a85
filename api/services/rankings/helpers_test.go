package rankingsservice

import (
	"io"
	"log/slog"
	"statsdb/api/cache"
	servicetestutil "statsdb/api/services/testutil"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Fixed "now" of the service tests, 2023-11-14T22:13:20Z.
var testNow = time.Unix(1_700_000_000, 0)

const testDays = 7

// Unix time of the start of the test window.
var testSince = testNow.Add(-testDays * 24 * time.Hour).Unix()

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Helper to initialize the service over a mocked repository and a fresh cache.
func setupTestService() (*RankingsService, *servicetestutil.MockRankingsRepository, *testClock) {
	clock := &testClock{now: testNow}
	mockRepository := new(servicetestutil.MockRankingsRepository)

	service := &RankingsService{
		cache: cache.NewResultCache(&cache.ResultCacheDeps{
			MemCache: cache.NewMemCache(64, cache.WithClock(clock.Now)),
			Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		}),
		now:                clock.Now,
		RankingsRepository: mockRepository,
	}

	return service, mockRepository, clock
}

// Assert that a ranking is sorted by a metric, without duplicated names.
func assertSortedUnique[T any](t *testing.T, entries []T, metric func(T) float64, name func(T) string) {
	t.Helper()

	seen := make(map[string]bool, len(entries))
	for i, entry := range entries {
		assert.False(t, seen[name(entry)], "%s appears twice", name(entry))
		seen[name(entry)] = true

		if i > 0 {
			assert.GreaterOrEqual(t, metric(entries[i-1]), metric(entry))
		}
	}
}
