package rankingsservice

import (
	"context"
	"fmt"
)

const secondsPerDay = 24 * 60 * 60

// Boundary is the first game of a day window.
// Game ids grow with time, so every game of the window has an id >= FirstGame.
type Boundary struct {
	FirstGame uint `json:"first_game"`
	Found     bool `json:"found"`
}

// daysAgo returns the unix time of now minus the given days.
func (rs *RankingsService) daysAgo(days int) int64 {
	return rs.now().Unix() - int64(days)*secondsPerDay
}

// FirstGameInDays resolves the boundary of the last days.
// Found is false when no game was played in the window.
func (rs *RankingsService) FirstGameInDays(ctx context.Context, days int) (Boundary, error) {
	return cached(ctx, rs, "first_game_in_days", days, FirstGameCacheDuration, func(ctx context.Context) (Boundary, error) {
		id, found, err := rs.RankingsRepository.FirstGameSince(ctx, rs.daysAgo(days))
		if err != nil {
			return Boundary{}, fmt.Errorf("couldn't resolve the first game of the last %d days: %w", days, err)
		}
		return Boundary{FirstGame: id, Found: found}, nil
	})
}
