package repositories

import (
	"context"
	weaponvalues "statsdb/pkg/redeclipse/weapons"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewRankingsRepository(t *testing.T) {
	repository := NewRankingsRepository(&gorm.DB{})
	assert.NotNil(t, repository)
}

func TestFirstGameSince(t *testing.T) {
	repository, _ := setupTestRepository(t)

	tests := []struct {
		name      string
		since     int64
		wantID    uint
		wantFound bool
	}{
		{name: "all", since: 0, wantID: 1, wantFound: true},
		{name: "exact", since: 2000, wantID: 2, wantFound: true},
		{name: "between", since: 2500, wantID: 3, wantFound: true},
		{name: "none", since: 5000, wantID: 0, wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, found, err := repository.FirstGameSince(context.Background(), tt.since)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestMapsSince(t *testing.T) {
	repository, _ := setupTestRepository(t)

	result, err := repository.MapsSince(context.Background(), 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []*MapCount{
		{Name: "ares", Games: 2},
		{Name: "bloodlust", Games: 1},
		{Name: "dutility", Games: 1},
	}, result)

	result, err = repository.MapsSince(context.Background(), 2500)
	require.NoError(t, err)
	assert.ElementsMatch(t, []*MapCount{
		{Name: "ares", Games: 1},
		{Name: "dutility", Games: 1},
	}, result)

	result, err = repository.MapsSince(context.Background(), 5000)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestPlayerGamesSince(t *testing.T) {
	repository, _ := setupTestRepository(t)

	result, err := repository.PlayerGamesSince(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []*HandleCount{
		{Handle: "alice", Games: 3},
		{Handle: "bob", Games: 3},
		{Handle: "carol", Games: 1},
	}, result)

	result, err = repository.PlayerGamesSince(context.Background(), 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []*HandleCount{
		{Handle: "alice", Games: 2},
		{Handle: "bob", Games: 2},
		{Handle: "carol", Games: 1},
	}, result)
}

func TestServerGamesSince(t *testing.T) {
	repository, _ := setupTestRepository(t)

	result, err := repository.ServerGamesSince(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []*HandleCount{
		{Handle: "eu", Games: 2},
		{Handle: "us", Games: 1},
	}, result)

	// Only the unnamed server is left.
	result, err = repository.ServerGamesSince(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestPlayerHandlesSince(t *testing.T) {
	repository, _ := setupTestRepository(t)

	result, err := repository.PlayerHandlesSince(context.Background(), 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob", "carol"}, result)

	result, err = repository.PlayerHandlesSince(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, result)
}

func TestTotalWielded(t *testing.T) {
	repository, _ := setupTestRepository(t)

	total, err := repository.TotalWielded(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(465), total)

	total, err = repository.TotalWielded(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(120), total)

	// No rows, no null.
	total, err = repository.TotalWielded(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestWeaponTotals(t *testing.T) {
	repository, _ := setupTestRepository(t)

	result, err := repository.WeaponTotals(context.Background(), 4)
	require.NoError(t, err)
	assert.ElementsMatch(t, []*WeaponTotal{
		{Name: "rifle", TimeWielded: 90, TimeLoadout: 90, Damage1: 90, Damage2: 90, Frags1: 3, Frags2: 3},
		{Name: "claw", TimeWielded: 30, TimeLoadout: 30, Damage1: 10, Frags1: 1},
	}, result)

	result, err = repository.WeaponTotals(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, result, 4)

	// Summed across players, anonymous included.
	for _, weapon := range result {
		if weapon.Name == "rifle" {
			assert.Equal(t, int64(60+10+120+60+90), weapon.TimeWielded)
		}
	}
}

func TestPlayerDamage(t *testing.T) {
	repository, _ := setupTestRepository(t)

	// The instagib game and the grenade usage are left out.
	result, err := repository.PlayerDamage(context.Background(), 1, weaponvalues.NotWielded)
	require.NoError(t, err)
	assert.ElementsMatch(t, []*PlayerDamage{
		{Handle: "alice", Damage1: 100, Damage2: 20, TimeWielded: 60},
		{Handle: "bob", Damage1: 150, Damage2: 90, TimeWielded: 150},
		{Handle: "carol", Damage1: 300, Damage2: 0, TimeWielded: 120},
	}, result)

	result, err = repository.PlayerDamage(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Contains(t, result, &PlayerDamage{Handle: "alice", Damage1: 180, Damage2: 20, TimeWielded: 65})

	result, err = repository.PlayerDamage(context.Background(), 5, weaponvalues.NotWielded)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestPlayerWeaponUsage(t *testing.T) {
	repository, _ := setupTestRepository(t)

	result, err := repository.PlayerWeaponUsage(context.Background(), 1, weaponvalues.StandardWeapons)
	require.NoError(t, err)
	assert.ElementsMatch(t, []*PlayerWeaponUsage{
		{Weapon: "rifle", Handle: "alice", Frags1: 2, TimeWielded: 60, TimeLoadout: 100},
		{Weapon: "pistol", Handle: "bob", Frags1: 1, TimeWielded: 30, TimeLoadout: 100},
		{Weapon: "grenade", Handle: "alice", Frags1: 3, Frags2: 1, TimeWielded: 5, TimeLoadout: 120},
		{Weapon: "rifle", Handle: "carol", Frags1: 4, Frags2: 1, TimeWielded: 120, TimeLoadout: 200},
		{Weapon: "rifle", Handle: "bob", Frags1: 3, Frags2: 3, TimeWielded: 90, TimeLoadout: 90},
	}, result)

	result, err = repository.PlayerWeaponUsage(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestRepositoryDatabaseClosed(t *testing.T) {
	repository, db := setupTestRepository(t)
	closeDatabase(t, db)
	ctx := context.Background()

	_, _, err := repository.FirstGameSince(ctx, 0)
	assert.ErrorContains(t, err, "database is closed")

	maps, err := repository.MapsSince(ctx, 0)
	assert.ErrorContains(t, err, "database is closed")
	assert.Nil(t, maps)

	players, err := repository.PlayerGamesSince(ctx, 1)
	assert.ErrorContains(t, err, "database is closed")
	assert.Nil(t, players)

	handles, err := repository.PlayerHandlesSince(ctx, 1)
	assert.ErrorContains(t, err, "database is closed")
	assert.Nil(t, handles)

	_, err = repository.TotalWielded(ctx, 1)
	assert.ErrorContains(t, err, "database is closed")

	damage, err := repository.PlayerDamage(ctx, 1, weaponvalues.NotWielded)
	assert.ErrorContains(t, err, "database is closed")
	assert.Nil(t, damage)

	usage, err := repository.PlayerWeaponUsage(ctx, 1, weaponvalues.StandardWeapons)
	assert.ErrorContains(t, err, "database is closed")
	assert.Nil(t, usage)
}
