package testutil

import (
	"statsdb/pkg/database/models"
	"testing"

	"gorm.io/gorm"
)

// Fixture is a set of stats rows inserted by Seed.
type Fixture struct {
	Games   []models.Game
	Players []models.GamePlayer
	Weapons []models.GameWeapon
	Servers []models.GameServer
}

// Seed inserts every row of the fixture.
func Seed(t *testing.T, db *gorm.DB, f *Fixture) {
	t.Helper()

	create := func(name string, rows any, n int) {
		if n == 0 {
			return
		}
		if err := db.Create(rows).Error; err != nil {
			t.Fatalf("Failed to seed %s: %v", name, err)
		}
	}

	create("games", &f.Games, len(f.Games))
	create("players", &f.Players, len(f.Players))
	create("weapons", &f.Weapons, len(f.Weapons))
	create("servers", &f.Servers, len(f.Servers))
}
