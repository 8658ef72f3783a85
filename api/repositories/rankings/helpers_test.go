package repositories

import (
	"statsdb/internal/testutil"
	"statsdb/pkg/database/models"
	mutatorvalues "statsdb/pkg/redeclipse/mutators"
	"testing"

	"gorm.io/gorm"
)

// Create a repository over a seeded in-memory database.
func setupTestRepository(t *testing.T) (RankingsRepository, *gorm.DB) {
	t.Helper()

	db, cleanup := testutil.NewTestConnection(t)
	t.Cleanup(cleanup)

	testutil.Seed(t, db, getTestFixture())

	return NewRankingsRepository(db), db
}

// Four games, the third one played with instagib.
func getTestFixture() *testutil.Fixture {
	return &testutil.Fixture{
		Games: []models.Game{
			{ID: 1, Time: 1000, Map: "ares", Mutators: 0},
			{ID: 2, Time: 2000, Map: "bloodlust", Mutators: mutatorvalues.FFA},
			{ID: 3, Time: 3000, Map: "ares", Mutators: mutatorvalues.Instagib},
			{ID: 4, Time: 4000, Map: "dutility", Mutators: 0},
		},
		Players: []models.GamePlayer{
			{GameID: 1, Handle: "alice"},
			{GameID: 1, Handle: "bob"},
			{GameID: 1, Handle: "", Name: "unnamed"},
			{GameID: 2, Handle: "alice"},
			{GameID: 2, Handle: "carol"},
			{GameID: 3, Handle: "alice"},
			{GameID: 3, Handle: "bob"},
			{GameID: 4, Handle: "bob"},
			{GameID: 4, Handle: "", Name: "unnamed"},
		},
		Servers: []models.GameServer{
			{GameID: 1, Handle: "eu"},
			{GameID: 2, Handle: "eu"},
			{GameID: 3, Handle: "us"},
			{GameID: 4, Handle: ""},
		},
		Weapons: []models.GameWeapon{
			{GameID: 1, PlayerHandle: "alice", Weapon: "rifle", TimeWielded: 60, TimeLoadout: 100, Damage1: 100, Damage2: 20, Frags1: 2},
			{GameID: 1, PlayerHandle: "bob", Weapon: "pistol", TimeWielded: 30, TimeLoadout: 100, Damage1: 50, Frags1: 1},
			{GameID: 1, PlayerHandle: "", Weapon: "rifle", TimeWielded: 10, TimeLoadout: 10, Damage1: 5},
			{GameID: 2, PlayerHandle: "alice", Weapon: "grenade", TimeWielded: 5, TimeLoadout: 120, Damage1: 80, Frags1: 3, Frags2: 1},
			{GameID: 2, PlayerHandle: "carol", Weapon: "rifle", TimeWielded: 120, TimeLoadout: 200, Damage1: 300, Frags1: 4, Frags2: 1},
			{GameID: 3, PlayerHandle: "alice", Weapon: "rifle", TimeWielded: 60, TimeLoadout: 60, Damage1: 1000, Frags1: 20},
			{GameID: 3, PlayerHandle: "bob", Weapon: "pistol", TimeWielded: 60, TimeLoadout: 60, Damage1: 500, Frags1: 10},
			{GameID: 4, PlayerHandle: "bob", Weapon: "rifle", TimeWielded: 90, TimeLoadout: 90, Damage1: 90, Damage2: 90, Frags1: 3, Frags2: 3},
			{GameID: 4, PlayerHandle: "bob", Weapon: "claw", TimeWielded: 30, TimeLoadout: 30, Damage1: 10, Frags1: 1},
		},
	}
}

// Close the pool so every following query fails.
func closeDatabase(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get SQL DB: %v", err)
	}
	sqlDB.Close()
}
