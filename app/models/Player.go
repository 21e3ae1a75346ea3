package models

// SeatPlayer is the live in-game entity for one seat. It is created when a
// room starts playing and mutated only by the engine. IsConnected is
// advisory for presentation; no rule may read it.
type SeatPlayer struct {
	Slot      int    `json:"slot"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Character string `json:"character"`

	Position   int            `json:"position"`
	Cash       int            `json:"cash"`
	Properties []int          `json:"properties"`
	Houses     map[int]int    `json:"houses"`
	Hotels     map[int]bool   `json:"hotels"`
	HeldCards  map[string]int `json:"held_cards"`

	ImmunityNextRent    bool `json:"immunity_next_rent"`
	DoubleRentTurns     int  `json:"double_rent_turns"`
	SkipNextTurn        bool `json:"skip_next_turn"`
	IslandTurns         int  `json:"island_turns"`
	ShieldTurns         int  `json:"shield_turns"`
	AbilityCooldown     int  `json:"ability_cooldown"`
	AbilityUsedThisTurn bool `json:"ability_used_this_turn"`

	IsBankrupt  bool `json:"is_bankrupt"`
	IsConnected bool `json:"is_connected"`
}

// Owns reports whether the player currently owns the given cell.
func (p *SeatPlayer) Owns(cell int) bool {
	for _, c := range p.Properties {
		if c == cell {
			return true
		}
	}
	return false
}

// HouseCount returns the number of houses built on a cell (0 if none).
func (p *SeatPlayer) HouseCount(cell int) int {
	if p.Houses == nil {
		return 0
	}
	return p.Houses[cell]
}

// HasHotel reports whether the cell carries a hotel.
func (p *SeatPlayer) HasHotel(cell int) bool {
	if p.Hotels == nil {
		return false
	}
	return p.Hotels[cell]
}

// Player is the persisted lobby membership row (Postgres), one per user per
// room, kept from joining until room teardown.
type Player struct {
	UserID   string `pg:"user_id"`
	GameID   string `pg:"game_id"`
	Username string `pg:"username"`
	Slot     int    `pg:"slot"`
}
