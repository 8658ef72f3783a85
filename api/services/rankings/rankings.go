package rankingsservice

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"statsdb/api/dto"
	rankingsrepo "statsdb/api/repositories/rankings"
	weaponvalues "statsdb/pkg/redeclipse/weapons"

	"golang.org/x/sync/errgroup"
)

// WeaponSums returns the counters of every weapon used in the window and the total wielded time.
func (rs *RankingsService) WeaponSums(ctx context.Context, days int) (*dto.WeaponSums, error) {
	return cached(ctx, rs, "weapon_sums", days, WeaponSumsCacheDuration, func(ctx context.Context) (*dto.WeaponSums, error) {
		boundary, err := rs.FirstGameInDays(ctx, days)
		if err != nil {
			return nil, err
		}
		if !boundary.Found {
			return &dto.WeaponSums{Weapons: []*dto.WeaponTotal{}}, nil
		}

		total, err := rs.RankingsRepository.TotalWielded(ctx, boundary.FirstGame)
		if err != nil {
			return nil, fmt.Errorf("couldn't sum the wielded time: %w", err)
		}

		weapons, err := rs.RankingsRepository.WeaponTotals(ctx, boundary.FirstGame)
		if err != nil {
			return nil, fmt.Errorf("couldn't sum the weapons: %w", err)
		}

		var dtoHelper dto.WeaponTotal
		return &dto.WeaponSums{
			Weapons:      dtoHelper.FromRepositorySlice(weapons),
			TotalWielded: total,
		}, nil
	})
}

// WeaponsByWielded returns the weapons sorted by their share of the wielded time.
func (rs *RankingsService) WeaponsByWielded(ctx context.Context, days int) ([]*dto.WeaponUsage, error) {
	return cached(ctx, rs, "weapons_by_wielded", days, WeaponsByWieldedCacheDuration, func(ctx context.Context) ([]*dto.WeaponUsage, error) {
		sums, err := rs.WeaponSums(ctx, days)
		if err != nil {
			return nil, err
		}

		weapons := slices.Clone(sums.Weapons)
		slices.SortFunc(weapons, func(a, b *dto.WeaponTotal) int {
			if c := cmp.Compare(b.TimeWielded, a.TimeWielded); c != 0 {
				return c
			}
			return cmp.Compare(a.Name, b.Name)
		})

		total := float64(max(sums.TotalWielded, 1))
		results := make([]*dto.WeaponUsage, 0, len(weapons))
		for _, weapon := range weapons {
			results = append(results, &dto.WeaponUsage{
				Name:        weapon.Name,
				TimeWielded: float64(weapon.TimeWielded) / total,
			})
		}
		return results, nil
	})
}

// MapsByGames returns the maps sorted by the number of games played on them.
func (rs *RankingsService) MapsByGames(ctx context.Context, days int) ([]*dto.MapGames, error) {
	return cached(ctx, rs, "maps_by_games", days, GamesCacheDuration, func(ctx context.Context) ([]*dto.MapGames, error) {
		maps, err := rs.RankingsRepository.MapsSince(ctx, rs.daysAgo(days))
		if err != nil {
			return nil, fmt.Errorf("couldn't count the games per map: %w", err)
		}

		var dtoHelper dto.MapGames
		results := dtoHelper.FromRepositorySlice(maps)
		slices.SortFunc(results, func(a, b *dto.MapGames) int {
			if c := cmp.Compare(b.Games, a.Games); c != 0 {
				return c
			}
			return cmp.Compare(a.Name, b.Name)
		})
		return results, nil
	})
}

// PlayersByGames returns the named players sorted by their number of games.
func (rs *RankingsService) PlayersByGames(ctx context.Context, days int) ([]*dto.HandleGames, error) {
	return cached(ctx, rs, "players_by_games", days, GamesCacheDuration, func(ctx context.Context) ([]*dto.HandleGames, error) {
		boundary, err := rs.FirstGameInDays(ctx, days)
		if err != nil {
			return nil, err
		}
		if !boundary.Found {
			return []*dto.HandleGames{}, nil
		}

		players, err := rs.RankingsRepository.PlayerGamesSince(ctx, boundary.FirstGame)
		if err != nil {
			return nil, fmt.Errorf("couldn't count the games per player: %w", err)
		}
		return sortByGames(players), nil
	})
}

// ServersByGames returns the named servers sorted by their number of games.
func (rs *RankingsService) ServersByGames(ctx context.Context, days int) ([]*dto.HandleGames, error) {
	return cached(ctx, rs, "servers_by_games", days, GamesCacheDuration, func(ctx context.Context) ([]*dto.HandleGames, error) {
		boundary, err := rs.FirstGameInDays(ctx, days)
		if err != nil {
			return nil, err
		}
		if !boundary.Found {
			return []*dto.HandleGames{}, nil
		}

		servers, err := rs.RankingsRepository.ServerGamesSince(ctx, boundary.FirstGame)
		if err != nil {
			return nil, fmt.Errorf("couldn't count the games per server: %w", err)
		}
		return sortByGames(servers), nil
	})
}

// PlayersByDPM returns the named players of the window sorted by damage per minute.
// Only normal weapon games count, and thrown or passive weapons are left out.
func (rs *RankingsService) PlayersByDPM(ctx context.Context, days int) ([]*dto.PlayerDPM, error) {
	return cached(ctx, rs, "players_by_dpm", days, PlayersByDPMCacheDuration, func(ctx context.Context) ([]*dto.PlayerDPM, error) {
		boundary, err := rs.FirstGameInDays(ctx, days)
		if err != nil {
			return nil, err
		}
		if !boundary.Found {
			return []*dto.PlayerDPM{}, nil
		}

		handles, err := rs.RankingsRepository.PlayerHandlesSince(ctx, boundary.FirstGame)
		if err != nil {
			return nil, fmt.Errorf("couldn't list the players: %w", err)
		}

		damage, err := rs.RankingsRepository.PlayerDamage(ctx, boundary.FirstGame, weaponvalues.NotWielded)
		if err != nil {
			return nil, fmt.Errorf("couldn't sum the damage per player: %w", err)
		}

		dpm := make(map[string]float64, len(damage))
		for _, d := range damage {
			dpm[d.Handle] = perMinute(d.Damage1+d.Damage2, d.TimeWielded)
		}

		// Players without a qualifying weapon row are ranked with 0.
		results := make([]*dto.PlayerDPM, 0, len(handles))
		for _, handle := range handles {
			results = append(results, &dto.PlayerDPM{Handle: handle, DPM: dpm[handle]})
		}

		slices.SortFunc(results, func(a, b *dto.PlayerDPM) int {
			if c := cmp.Compare(b.DPM, a.DPM); c != 0 {
				return c
			}
			return cmp.Compare(a.Handle, b.Handle)
		})
		return results, nil
	})
}

// PlayerWeapons returns the best player of each standard weapon by frags per minute.
// Each weapon appears once and the list is sorted by frags per minute across weapons.
// Weapons nobody used are left out.
func (rs *RankingsService) PlayerWeapons(ctx context.Context, days int) ([]*dto.WeaponBestPlayer, error) {
	return cached(ctx, rs, "player_weapons", days, PlayerWeaponsCacheDuration, func(ctx context.Context) ([]*dto.WeaponBestPlayer, error) {
		boundary, err := rs.FirstGameInDays(ctx, days)
		if err != nil {
			return nil, err
		}
		if !boundary.Found {
			return []*dto.WeaponBestPlayer{}, nil
		}

		usage, err := rs.RankingsRepository.PlayerWeaponUsage(ctx, boundary.FirstGame, weaponvalues.StandardWeapons)
		if err != nil {
			return nil, fmt.Errorf("couldn't sum the weapon usage per player: %w", err)
		}

		candidates := make([]*dto.WeaponBestPlayer, 0, len(usage))
		for _, u := range usage {
			seconds := u.TimeWielded
			if weaponvalues.IsNotWielded(u.Weapon) {
				seconds = u.TimeLoadout
			}

			candidates = append(candidates, &dto.WeaponBestPlayer{
				Weapon: u.Weapon,
				Handle: u.Handle,
				FPM:    perMinute(u.Frags1+u.Frags2, seconds),
			})
		}

		// Sorted globally, the first candidate of a weapon is its best player.
		slices.SortFunc(candidates, func(a, b *dto.WeaponBestPlayer) int {
			if c := cmp.Compare(b.FPM, a.FPM); c != 0 {
				return c
			}
			if c := cmp.Compare(weaponvalues.StandardIndex(a.Weapon), weaponvalues.StandardIndex(b.Weapon)); c != 0 {
				return c
			}
			return cmp.Compare(a.Handle, b.Handle)
		})

		seen := make(map[string]struct{}, len(weaponvalues.StandardWeapons))
		results := make([]*dto.WeaponBestPlayer, 0, len(weaponvalues.StandardWeapons))
		for _, candidate := range candidates {
			if _, ok := seen[candidate.Weapon]; ok {
				continue
			}
			seen[candidate.Weapon] = struct{}{}
			results = append(results, candidate)
		}
		return results, nil
	})
}

// GetAll computes every leaderboard of the window concurrently.
func (rs *RankingsService) GetAll(ctx context.Context, days int) (*dto.Rankings, error) {
	rankings := &dto.Rankings{Days: days}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		rankings.Weapons, err = rs.WeaponsByWielded(ctx, days)
		return err
	})
	g.Go(func() (err error) {
		rankings.Maps, err = rs.MapsByGames(ctx, days)
		return err
	})
	g.Go(func() (err error) {
		rankings.Players, err = rs.PlayersByGames(ctx, days)
		return err
	})
	g.Go(func() (err error) {
		rankings.Servers, err = rs.ServersByGames(ctx, days)
		return err
	})
	g.Go(func() (err error) {
		rankings.DPM, err = rs.PlayersByDPM(ctx, days)
		return err
	})
	g.Go(func() (err error) {
		rankings.PlayerWeapons, err = rs.PlayerWeapons(ctx, days)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rankings, nil
}

// sortByGames converts the counts and sorts them by games, then handle.
func sortByGames(rows []*rankingsrepo.HandleCount) []*dto.HandleGames {
	var dtoHelper dto.HandleGames
	results := dtoHelper.FromRepositorySlice(rows)
	slices.SortFunc(results, func(a, b *dto.HandleGames) int {
		if c := cmp.Compare(b.Games, a.Games); c != 0 {
			return c
		}
		return cmp.Compare(a.Handle, b.Handle)
	})
	return results
}
