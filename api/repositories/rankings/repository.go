package repositories

import (
	"context"
	"database/sql"
	"statsdb/pkg/database/models"
	mutatorvalues "statsdb/pkg/redeclipse/mutators"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Public Interface.
// Every query is read only. The firstGame arguments are window boundaries resolved by FirstGameSince.
type RankingsRepository interface {
	FirstGameSince(ctx context.Context, since int64) (uint, bool, error)
	MapsSince(ctx context.Context, since int64) ([]*MapCount, error)
	PlayerGamesSince(ctx context.Context, firstGame uint) ([]*HandleCount, error)
	ServerGamesSince(ctx context.Context, firstGame uint) ([]*HandleCount, error)
	PlayerHandlesSince(ctx context.Context, firstGame uint) ([]string, error)
	TotalWielded(ctx context.Context, firstGame uint) (int64, error)
	WeaponTotals(ctx context.Context, firstGame uint) ([]*WeaponTotal, error)
	PlayerDamage(ctx context.Context, firstGame uint, excludedWeapons []string) ([]*PlayerDamage, error)
	PlayerWeaponUsage(ctx context.Context, firstGame uint, weapons []string) ([]*PlayerWeaponUsage, error)
}

// Rankings repository structure.
type rankingsRepository struct {
	db *gorm.DB
}

// Create a rankings repository.
func NewRankingsRepository(db *gorm.DB) RankingsRepository {
	return &rankingsRepository{db: db}
}

// Number of games played on a map.
type MapCount struct {
	Name  string
	Games int64
}

// Number of games of a player or server handle.
type HandleCount struct {
	Handle string
	Games  int64
}

// Counters of a weapon summed over every player.
type WeaponTotal struct {
	Name        string
	TimeWielded int64
	TimeLoadout int64
	Damage1     int64
	Damage2     int64
	Frags1      int64
	Frags2      int64
}

// Damage and wielded time of a player summed over every weapon.
type PlayerDamage struct {
	Handle      string
	Damage1     int64
	Damage2     int64
	TimeWielded int64
}

// Usage of a weapon by a player summed over every game.
type PlayerWeaponUsage struct {
	Weapon      string
	Handle      string
	Frags1      int64
	Frags2      int64
	TimeWielded int64
	TimeLoadout int64
}

// normalWeapons keeps the rows of games played with the standard weapon rules.
func (r *rankingsRepository) normalWeapons(db *gorm.DB) *gorm.DB {
	games := r.db.Model(&models.Game{}).
		Select("id").
		Where("(mutators & ?) = 0", mutatorvalues.SpecialWeapons)
	return db.Where("game_id IN (?)", games)
}

// gameTimeSince filters the games played at or after the unix time.
// The column is quoted, time is a keyword on postgres.
func gameTimeSince(since int64) clause.Expression {
	return clause.Gte{Column: clause.Column{Name: "time"}, Value: since}
}

// FirstGameSince returns the lowest game id played at or after the unix time.
// The bool is false when there is no such game.
func (r *rankingsRepository) FirstGameSince(ctx context.Context, since int64) (uint, bool, error) {
	var minID sql.NullInt64

	row := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Select("MIN(id)").
		Where(gameTimeSince(since)).
		Row()
	if err := row.Scan(&minID); err != nil {
		return 0, false, err
	}

	if !minID.Valid {
		return 0, false, nil
	}
	return uint(minID.Int64), true, nil
}

// MapsSince counts the games per map played at or after the unix time.
func (r *rankingsRepository) MapsSince(ctx context.Context, since int64) ([]*MapCount, error) {
	var results []*MapCount

	err := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Select("map AS name, COUNT(*) AS games").
		Where(gameTimeSince(since)).
		Group("map").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// PlayerGamesSince counts the games per player handle, anonymous players excluded.
func (r *rankingsRepository) PlayerGamesSince(ctx context.Context, firstGame uint) ([]*HandleCount, error) {
	return r.handleGamesSince(ctx, &models.GamePlayer{}, firstGame)
}

// ServerGamesSince counts the games per server handle, unnamed servers excluded.
func (r *rankingsRepository) ServerGamesSince(ctx context.Context, firstGame uint) ([]*HandleCount, error) {
	return r.handleGamesSince(ctx, &models.GameServer{}, firstGame)
}

func (r *rankingsRepository) handleGamesSince(ctx context.Context, model any, firstGame uint) ([]*HandleCount, error) {
	var results []*HandleCount

	err := r.db.WithContext(ctx).
		Model(model).
		Select("handle, COUNT(*) AS games").
		Where("game_id >= ?", firstGame).
		Where("handle != ?", "").
		Group("handle").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// PlayerHandlesSince returns every distinct non empty player handle.
func (r *rankingsRepository) PlayerHandlesSince(ctx context.Context, firstGame uint) ([]string, error) {
	var handles []string

	err := r.db.WithContext(ctx).
		Model(&models.GamePlayer{}).
		Where("game_id >= ?", firstGame).
		Where("handle != ?", "").
		Distinct().
		Pluck("handle", &handles).Error
	if err != nil {
		return nil, err
	}
	return handles, nil
}

// TotalWielded sums the wielded time of every weapon row, zero when there are none.
func (r *rankingsRepository) TotalWielded(ctx context.Context, firstGame uint) (int64, error) {
	var total int64

	row := r.db.WithContext(ctx).
		Model(&models.GameWeapon{}).
		Select("CAST(COALESCE(SUM(time_wielded), 0) AS BIGINT)").
		Where("game_id >= ?", firstGame).
		Row()
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// WeaponTotals sums every counter per weapon.
func (r *rankingsRepository) WeaponTotals(ctx context.Context, firstGame uint) ([]*WeaponTotal, error) {
	var results []*WeaponTotal

	err := r.db.WithContext(ctx).
		Model(&models.GameWeapon{}).
		Select(`weapon AS name,
			CAST(SUM(time_wielded) AS BIGINT) AS time_wielded,
			CAST(SUM(time_loadout) AS BIGINT) AS time_loadout,
			CAST(SUM(damage1) AS BIGINT) AS damage1,
			CAST(SUM(damage2) AS BIGINT) AS damage2,
			CAST(SUM(frags1) AS BIGINT) AS frags1,
			CAST(SUM(frags2) AS BIGINT) AS frags2`).
		Where("game_id >= ?", firstGame).
		Group("weapon").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// PlayerDamage sums the damage and wielded time per player on normal weapon games.
// Players with no matching row are left out.
func (r *rankingsRepository) PlayerDamage(ctx context.Context, firstGame uint, excludedWeapons []string) ([]*PlayerDamage, error) {
	var results []*PlayerDamage

	query := r.db.WithContext(ctx).
		Model(&models.GameWeapon{}).
		Select(`player_handle AS handle,
			CAST(SUM(damage1) AS BIGINT) AS damage1,
			CAST(SUM(damage2) AS BIGINT) AS damage2,
			CAST(SUM(time_wielded) AS BIGINT) AS time_wielded`).
		Where("game_id >= ?", firstGame).
		Where("player_handle != ?", "").
		Scopes(r.normalWeapons)

	// NOT IN with an empty list would match nothing.
	if len(excludedWeapons) > 0 {
		query = query.Where("weapon NOT IN ?", excludedWeapons)
	}

	if err := query.Group("player_handle").Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// PlayerWeaponUsage sums the frags and times per weapon and player on normal weapon games.
func (r *rankingsRepository) PlayerWeaponUsage(ctx context.Context, firstGame uint, weapons []string) ([]*PlayerWeaponUsage, error) {
	var results []*PlayerWeaponUsage

	if len(weapons) == 0 {
		return results, nil
	}

	err := r.db.WithContext(ctx).
		Model(&models.GameWeapon{}).
		Select(`weapon,
			player_handle AS handle,
			CAST(SUM(frags1) AS BIGINT) AS frags1,
			CAST(SUM(frags2) AS BIGINT) AS frags2,
			CAST(SUM(time_wielded) AS BIGINT) AS time_wielded,
			CAST(SUM(time_loadout) AS BIGINT) AS time_loadout`).
		Where("game_id >= ?", firstGame).
		Where("player_handle != ?", "").
		Where("weapon IN ?", weapons).
		Scopes(r.normalWeapons).
		Group("weapon, player_handle").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
