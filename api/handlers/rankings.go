package handlers

import (
	"context"
	"net/http"
	"statsdb/api/dto"
	"statsdb/api/filters"
	"statsdb/pkg/config"

	"github.com/gin-gonic/gin"
)

// Leaderboards served by the rankings handler.
type RankingsService interface {
	WeaponSums(ctx context.Context, days int) (*dto.WeaponSums, error)
	WeaponsByWielded(ctx context.Context, days int) ([]*dto.WeaponUsage, error)
	MapsByGames(ctx context.Context, days int) ([]*dto.MapGames, error)
	PlayersByGames(ctx context.Context, days int) ([]*dto.HandleGames, error)
	ServersByGames(ctx context.Context, days int) ([]*dto.HandleGames, error)
	PlayersByDPM(ctx context.Context, days int) ([]*dto.PlayerDPM, error)
	PlayerWeapons(ctx context.Context, days int) ([]*dto.WeaponBestPlayer, error)
	GetAll(ctx context.Context, days int) (*dto.Rankings, error)
}

// Rankings handler.
type RankingsHandler struct {
	limits          config.RankingsConfiguration
	rankingsService RankingsService
}

type RankingsHandlerDependencies struct {
	Limits          config.RankingsConfiguration
	RankingsService RankingsService
}

// Create a new instance of the rankings handler.
func NewRankingsHandler(deps *RankingsHandlerDependencies) *RankingsHandler {
	return &RankingsHandler{
		limits:          deps.Limits,
		rankingsService: deps.RankingsService,
	}
}

// serveRanking binds the day window and answers with the ranking of it.
func serveRanking[T any](c *gin.Context, h *RankingsHandler, get func(ctx context.Context, days int) (T, error)) {
	var qp filters.RankingsQueryParams

	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter, err := filters.NewRankingsFilter(&qp, &h.limits)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := get(c.Request.Context(), filter.Days)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// Handler for getting every ranking at once.
func (h *RankingsHandler) GetRankings(c *gin.Context) {
	serveRanking(c, h, h.rankingsService.GetAll)
}

// Handler for getting the weapons by wielded time.
func (h *RankingsHandler) GetWeapons(c *gin.Context) {
	serveRanking(c, h, h.rankingsService.WeaponsByWielded)
}

// Handler for getting the weapon totals.
func (h *RankingsHandler) GetWeaponSums(c *gin.Context) {
	serveRanking(c, h, h.rankingsService.WeaponSums)
}

// Handler for getting the maps by games.
func (h *RankingsHandler) GetMaps(c *gin.Context) {
	serveRanking(c, h, h.rankingsService.MapsByGames)
}

// Handler for getting the players by games.
func (h *RankingsHandler) GetPlayers(c *gin.Context) {
	serveRanking(c, h, h.rankingsService.PlayersByGames)
}

// Handler for getting the servers by games.
func (h *RankingsHandler) GetServers(c *gin.Context) {
	serveRanking(c, h, h.rankingsService.ServersByGames)
}

// Handler for getting the players by damage per minute.
func (h *RankingsHandler) GetDPM(c *gin.Context) {
	serveRanking(c, h, h.rankingsService.PlayersByDPM)
}

// Handler for getting the best player of each weapon.
func (h *RankingsHandler) GetPlayerWeapons(c *gin.Context) {
	serveRanking(c, h, h.rankingsService.PlayerWeapons)
}
