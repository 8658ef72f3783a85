package weaponvalues

import "slices"

// Weapons that can be spawned with or picked up on a standard map.
// The order is the one shown on the weapon pages.
var StandardWeapons = []string{"pistol", "sword", "shotgun", "smg", "flamer", "plasma", "zapper", "rifle", "grenade", "mine"}

// Weapons that are thrown or passive.
// Their usage is measured by the time spent in the loadout, not the time wielded.
var NotWielded = []string{"melee", "grenade", "mine"}

// IsNotWielded reports whether the weapon usage is tracked by loadout time.
func IsNotWielded(weapon string) bool {
	return slices.Contains(NotWielded, weapon)
}

// StandardIndex returns the weapon position on the standard list, or -1.
func StandardIndex(weapon string) int {
	return slices.Index(StandardWeapons, weapon)
}
