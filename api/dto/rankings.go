package dto

import (
	rankingsrepo "statsdb/api/repositories/rankings"
)

// Share of the total wielded time held by a weapon.
type WeaponUsage struct {
	Name        string  `json:"name"`
	TimeWielded float64 `json:"timewielded"`
}

// Number of games played on a map.
type MapGames struct {
	Name  string `json:"name"`
	Games int64  `json:"games"`
}

// Number of games of a player or a server.
type HandleGames struct {
	Handle string `json:"handle"`
	Games  int64  `json:"games"`
}

// Damage per minute of a player.
type PlayerDPM struct {
	Handle string  `json:"handle"`
	DPM    float64 `json:"dpm"`
}

// Best player of a weapon by frags per minute.
type WeaponBestPlayer struct {
	Weapon string  `json:"weapon"`
	Handle string  `json:"handle"`
	FPM    float64 `json:"fpm"`
}

// Counters of a weapon summed over the window.
type WeaponTotal struct {
	Name        string `json:"name"`
	TimeWielded int64  `json:"timewielded"`
	TimeLoadout int64  `json:"timeloadout"`
	Damage1     int64  `json:"damage1"`
	Damage2     int64  `json:"damage2"`
	Frags1      int64  `json:"frags1"`
	Frags2      int64  `json:"frags2"`
}

// Every weapon of the window and their total wielded time.
type WeaponSums struct {
	Weapons      []*WeaponTotal `json:"weapons"`
	TotalWielded int64          `json:"totalwielded"`
}

// Rankings is the overview of a window, every leaderboard at once.
type Rankings struct {
	Days          int                 `json:"days"`
	Weapons       []*WeaponUsage      `json:"weapons"`
	Maps          []*MapGames         `json:"maps"`
	Players       []*HandleGames      `json:"players"`
	Servers       []*HandleGames      `json:"servers"`
	DPM           []*PlayerDPM        `json:"dpm"`
	PlayerWeapons []*WeaponBestPlayer `json:"playerweapons"`
}

// Convert the repository weapon rows.
func (w *WeaponTotal) FromRepositorySlice(rows []*rankingsrepo.WeaponTotal) []*WeaponTotal {
	results := make([]*WeaponTotal, 0, len(rows))
	for _, row := range rows {
		results = append(results, &WeaponTotal{
			Name:        row.Name,
			TimeWielded: row.TimeWielded,
			TimeLoadout: row.TimeLoadout,
			Damage1:     row.Damage1,
			Damage2:     row.Damage2,
			Frags1:      row.Frags1,
			Frags2:      row.Frags2,
		})
	}
	return results
}

// Convert the repository map counts.
func (m *MapGames) FromRepositorySlice(rows []*rankingsrepo.MapCount) []*MapGames {
	results := make([]*MapGames, 0, len(rows))
	for _, row := range rows {
		results = append(results, &MapGames{Name: row.Name, Games: row.Games})
	}
	return results
}

// Convert the repository handle counts.
func (h *HandleGames) FromRepositorySlice(rows []*rankingsrepo.HandleCount) []*HandleGames {
	results := make([]*HandleGames, 0, len(rows))
	for _, row := range rows {
		results = append(results, &HandleGames{Handle: row.Handle, Games: row.Games})
	}
	return results
}
