package modules

import (
	"fmt"
	"statsdb/api/handlers"
)

func initializeHealthHandler(deps *ModuleDependencies) (*handlers.HealthHandler, error) {
	sqlDB, err := deps.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("couldn't get the sql connection: %w", err)
	}

	return handlers.NewHealthHandler(sqlDB), nil
}
