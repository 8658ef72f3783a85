package modules

import (
	"statsdb/api/handlers"
	rankingsservice "statsdb/api/services/rankings"
)

func initializeRankingsHandler(deps *ModuleDependencies) *handlers.RankingsHandler {
	// Initialize the rankings service and handler.
	rankingsDeps := &rankingsservice.RankingsServiceDeps{
		DB:      deps.DB,
		Cache:   deps.cache,
		Metrics: deps.Metrics,
	}

	rankingsService := rankingsservice.NewRankingsService(rankingsDeps)

	rankingsHandlerDeps := &handlers.RankingsHandlerDependencies{
		Limits:          deps.Config.Rankings,
		RankingsService: rankingsService,
	}

	return handlers.NewRankingsHandler(rankingsHandlerDeps)
}
