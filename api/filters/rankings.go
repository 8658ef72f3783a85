package filters

import (
	"errors"
	"fmt"
	"statsdb/pkg/config"
)

// Returned when the day window is out of the configured limits.
var ErrInvalidDays = errors.New("invalid days")

// Query parameters of the ranking endpoints.
type RankingsQueryParams struct {
	Days *int `form:"days" binding:"omitempty,min=0"`
}

// Filter of a ranking request.
type RankingsFilter struct {
	Days int
}

// NewRankingsFilter resolves the day window, using the default when it's not given.
func NewRankingsFilter(qp *RankingsQueryParams, limits *config.RankingsConfiguration) (*RankingsFilter, error) {
	days := limits.DefaultDays
	if qp.Days != nil {
		days = *qp.Days
	}

	if days < 0 || days > limits.MaxDays {
		return nil, fmt.Errorf("%w: must be between 0 and %d", ErrInvalidDays, limits.MaxDays)
	}

	return &RankingsFilter{Days: days}, nil
}
