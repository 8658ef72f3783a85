package mutatorvalues

// Game mutator flags, as stored on the game mutators bitmask.
const (
	Multi = 1 << iota
	FFA
	Coop
	Instagib
	Medieval
	Kaboom
	Duel
	Survivor
	Classic
	Onslaught
	Freestyle
	Vampire
	Resize
	Hard
	Basic
)

// Mutators that replace or alter the weapon set.
// Games played with any of them are left out of per-weapon player stats.
const SpecialWeapons = Instagib | Medieval | Kaboom
