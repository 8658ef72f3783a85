package models

// Database model for a recorded game.
// Ids are assigned in recording order, so a higher id is always a newer game.
type Game struct {
	ID       uint   `gorm:"primaryKey"`
	Time     int64  `gorm:"not null;index"` // Unix seconds.
	Map      string `gorm:"type:varchar(64)"`
	Mode     int
	Mutators int // Bitmask, see pkg/redeclipse/mutators.
}

// A player that took part in a game.
// Anonymous players have an empty handle.
type GamePlayer struct {
	ID     uint   `gorm:"primaryKey"`
	GameID uint   `gorm:"not null;index"`
	Handle string `gorm:"type:varchar(64);index"`
	Name   string `gorm:"type:varchar(64)"`
}

// Usage of a single weapon by a player in a game.
type GameWeapon struct {
	ID           uint   `gorm:"primaryKey"`
	GameID       uint   `gorm:"not null;index"`
	PlayerHandle string `gorm:"type:varchar(64);index"`
	Weapon       string `gorm:"type:varchar(32);index"`
	TimeWielded  int64
	TimeLoadout  int64
	Damage1      int64
	Damage2      int64
	Frags1       int64
	Frags2       int64
}

// The server that hosted a game.
type GameServer struct {
	ID     uint   `gorm:"primaryKey"`
	GameID uint   `gorm:"not null;index"`
	Handle string `gorm:"type:varchar(64);index"`
}

// All returns every model, in creation order.
func All() []any {
	return []any{&Game{}, &GamePlayer{}, &GameWeapon{}, &GameServer{}}
}
