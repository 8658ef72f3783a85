package modules

import (
	"errors"
	"log/slog"
	"statsdb/api/cache"
	"statsdb/api/handlers"
	"statsdb/api/middleware"
	"statsdb/pkg/config"
	"statsdb/pkg/metrics"
	"statsdb/pkg/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Everything the handlers are built from.
// Redis is nil when the second cache tier is disabled.
type ModuleDependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.RedisClient
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	cache *cache.ResultCache
}

// Module containing the necessary handlers.
type Module struct {
	Router          *gin.Engine
	Cache           *cache.ResultCache
	Metrics         *metrics.Metrics
	HealthHandler   *handlers.HealthHandler
	RankingsHandler *handlers.RankingsHandler
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) (*Module, error) {
	if deps.Config == nil || deps.DB == nil {
		return nil, errors.New("the module needs a config and a database")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(deps.Logger), gin.Recovery())

	// One result cache for the whole process.
	deps.cache = newResultCache(deps)

	healthHandler, err := initializeHealthHandler(deps)
	if err != nil {
		return nil, err
	}

	return &Module{
		Router:          router,
		Cache:           deps.cache,
		Metrics:         deps.Metrics,
		HealthHandler:   healthHandler,
		RankingsHandler: initializeRankingsHandler(deps),
	}, nil
}

func newResultCache(deps *ModuleDependencies) *cache.ResultCache {
	memCache := cache.NewMemCache(deps.Config.Cache.MaxEntries, cache.WithEvictionHook(deps.Metrics.CacheEviction))

	cacheDeps := &cache.ResultCacheDeps{
		MemCache: memCache,
		Metrics:  deps.Metrics,
		Logger:   deps.Logger,
	}
	// Keep the interface nil when redis is off.
	if deps.Redis != nil {
		cacheDeps.Redis = deps.Redis
	}

	return cache.NewResultCache(cacheDeps)
}
