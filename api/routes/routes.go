package routes

import (
	"statsdb/api/handlers"
	"statsdb/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type Router struct {
	engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.RankingsHandler:
			r.registerRankingsHandler(handler)
		case *handlers.HealthHandler:
			r.engine.GET("/healthz", handler.GetHealth)
		case *metrics.Metrics:
			r.engine.GET("/metrics", gin.WrapH(handler.Handler()))
		}
	}
}

// Register the rankings handler.
func (r *Router) registerRankingsHandler(handler *handlers.RankingsHandler) {
	rankings := r.api.Group("/rankings")
	{
		rankings.GET("", handler.GetRankings)
		rankings.GET("/weapons", handler.GetWeapons)
		rankings.GET("/weapon-sums", handler.GetWeaponSums)
		rankings.GET("/maps", handler.GetMaps)
		rankings.GET("/players", handler.GetPlayers)
		rankings.GET("/servers", handler.GetServers)
		rankings.GET("/dpm", handler.GetDPM)
		rankings.GET("/player-weapons", handler.GetPlayerWeapons)
	}
}

// Engine returns the gin engine, to be served by an http.Server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
