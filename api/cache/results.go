package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"statsdb/pkg/metrics"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Timeout of a single redis round trip, the cache must never slow down a request much.
const redisTimeout = 200 * time.Millisecond

// Prefix of every key written to redis.
const keyPrefix = "statsdb"

// Second tier of the result cache, shared between every API instance.
type RedisClient interface {
	GetWithTTL(ctx context.Context, key string) (string, time.Duration, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Key identifies a memoized call: the name of the computation and its arguments.
type Key struct {
	Name string
	Args string
}

// NewKey builds the key of a computation called with the given arguments.
func NewKey(name string, args ...any) Key {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	return Key{Name: name, Args: strings.Join(parts, ":")}
}

func (k Key) String() string {
	return keyPrefix + ":" + k.Name + ":" + k.Args
}

// ResultCache memoizes computations for a TTL chosen per call.
// Lookups go memory first, then redis when configured, and the computation runs last.
// Concurrent misses on the same key share a single computation.
type ResultCache struct {
	mem     *MemCache
	redis   RedisClient
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// ResultCacheDeps is the dependency list for the result cache.
// Redis and Metrics are optional.
type ResultCacheDeps struct {
	MemCache *MemCache
	Redis    RedisClient
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// NewResultCache creates the result cache.
func NewResultCache(deps *ResultCacheDeps) *ResultCache {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mem := deps.MemCache
	if mem == nil {
		mem = NewMemCache(DefaultMaxEntries)
	}

	return &ResultCache{
		mem:     mem,
		redis:   deps.Redis,
		metrics: deps.Metrics,
		logger:  logger,
	}
}

// GetOrCompute returns the cached value for key or computes and stores it for ttl.
// Errors from compute are returned to every waiting caller and never cached.
func GetOrCompute[T any](ctx context.Context, rc *ResultCache, key Key, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	k := key.String()

	if value, ok := getFromMemCache[T](rc, k); ok {
		rc.metrics.CacheHit(key.Name, metrics.TierMemory)
		return value, nil
	}

	// The computation is shared by every waiter, it must outlive the first caller.
	sharedCtx := context.WithoutCancel(ctx)

	result, err, _ := rc.group.Do(k, func() (any, error) {
		// Another flight may have just finished.
		if value, ok := getFromMemCache[T](rc, k); ok {
			rc.metrics.CacheHit(key.Name, metrics.TierMemory)
			return value, nil
		}

		if value, remaining, ok := getFromRedis[T](sharedCtx, rc, k); ok {
			rc.metrics.CacheHit(key.Name, metrics.TierRedis)
			// The entry expires in memory when it expires on redis.
			rc.mem.Set(k, value, min(ttl, remaining))
			return value, nil
		}

		rc.metrics.CacheMiss(key.Name)
		value, err := compute(sharedCtx)
		if err != nil {
			return nil, err
		}

		rc.populateCaches(sharedCtx, k, value, ttl)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result.(T), nil
}

// getFromMemCache retrieves the data from the memory and returns it.
func getFromMemCache[T any](rc *ResultCache, key string) (T, bool) {
	var zero T

	cached, ok := rc.mem.Get(key)
	if !ok {
		return zero, false
	}

	value, ok := cached.(T)
	if !ok {
		// Same key stored with another type, treat it as a miss.
		rc.mem.Delete(key)
		return zero, false
	}

	return value, true
}

// getFromRedis retrieves the data from the redis, with the time it has left.
// Any failure is a miss, redis being down must not fail the request.
// Entries without an expiry or about to expire are misses too.
func getFromRedis[T any](ctx context.Context, rc *ResultCache, key string) (T, time.Duration, bool) {
	var zero T
	if rc.redis == nil {
		return zero, 0, false
	}

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	redisCached, remaining, err := rc.redis.GetWithTTL(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			rc.metrics.CacheError(metrics.TierRedis)
			rc.logger.Warn("redis get failed, computing directly", "key", key, "error", err)
		}
		return zero, 0, false
	}
	if remaining <= 0 {
		return zero, 0, false
	}

	var value T
	if err := json.Unmarshal([]byte(redisCached), &value); err != nil {
		rc.metrics.CacheError(metrics.TierRedis)
		rc.logger.Warn("invalid cached payload on redis", "key", key, "error", err)
		return zero, 0, false
	}

	return value, remaining, true
}

// populateCaches will set the mem cache and redis cache.
func (rc *ResultCache) populateCaches(ctx context.Context, key string, value any, ttl time.Duration) {
	rc.mem.Set(key, value, ttl)

	if rc.redis == nil {
		return
	}

	j, err := json.Marshal(value)
	if err != nil {
		rc.logger.Warn("couldn't encode the result for redis", "key", key, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	if err := rc.redis.Set(ctx, key, string(j), ttl); err != nil {
		rc.metrics.CacheError(metrics.TierRedis)
		rc.logger.Warn("redis set failed", "key", key, "error", err)
	}
}
