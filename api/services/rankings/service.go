package rankingsservice

import (
	"context"
	"errors"
	"statsdb/api/cache"
	rankingsrepo "statsdb/api/repositories/rankings"
	"statsdb/pkg/metrics"
	"time"

	"gorm.io/gorm"
)

// How long each result stays cached, chosen by how fast it changes and how heavy it is.
const (
	FirstGameCacheDuration        = time.Minute
	WeaponSumsCacheDuration       = 15 * time.Minute
	WeaponsByWieldedCacheDuration = 15 * time.Minute
	GamesCacheDuration            = time.Minute
	PlayersByDPMCacheDuration     = 5 * time.Minute
	PlayerWeaponsCacheDuration    = 10 * time.Minute
)

// Returned when a window is asked with a negative number of days.
var ErrInvalidDays = errors.New("days must not be negative")

// Rankings service, computes the leaderboards of a day window and memoizes them.
type RankingsService struct {
	cache   *cache.ResultCache
	metrics *metrics.Metrics
	now     func() time.Time

	RankingsRepository rankingsrepo.RankingsRepository
}

// RankingsServiceDeps is the dependency list for the rankings service.
type RankingsServiceDeps struct {
	DB      *gorm.DB
	Cache   *cache.ResultCache
	Metrics *metrics.Metrics
}

// NewRankingsService creates a rankings service.
// A private result cache is created when none is given.
func NewRankingsService(deps *RankingsServiceDeps) *RankingsService {
	resultCache := deps.Cache
	if resultCache == nil {
		resultCache = cache.NewResultCache(&cache.ResultCacheDeps{Metrics: deps.Metrics})
	}

	return &RankingsService{
		cache:              resultCache,
		metrics:            deps.Metrics,
		now:                time.Now,
		RankingsRepository: rankingsrepo.NewRankingsRepository(deps.DB),
	}
}

// cached memoizes a computation of the window under its name.
func cached[T any](ctx context.Context, rs *RankingsService, name string, days int, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	if days < 0 {
		var zero T
		return zero, ErrInvalidDays
	}

	return cache.GetOrCompute(ctx, rs.cache, cache.NewKey(name, days), ttl, func(ctx context.Context) (T, error) {
		start := time.Now()
		value, err := compute(ctx)
		rs.metrics.ObserveCompute(name, time.Since(start), err)
		return value, err
	})
}

// perMinute divides a counter by a time in seconds, counted as at least one second.
func perMinute(value, seconds int64) float64 {
	return float64(value) / (float64(max(seconds, 1)) / 60)
}
