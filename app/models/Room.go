package models

// RoomStatus is the lifecycle of a room as the engine sees it.
type RoomStatus string

const (
	RoomLobby   RoomStatus = "lobby"
	RoomPlaying RoomStatus = "playing"
	RoomOver    RoomStatus = "over"
)

// TurnPhase is the state machine discriminant. END_TURN is internal: the
// machine passes through it without waiting for input, so it never rests in
// that state between actions.
type TurnPhase string

const (
	PhaseRollDice         TurnPhase = "ROLL_DICE"
	PhaseAwaitingAction   TurnPhase = "AWAITING_ACTION"
	PhaseAwaitingTravel   TurnPhase = "AWAITING_TRAVEL"
	PhaseAwaitingFestival TurnPhase = "AWAITING_FESTIVAL"
	PhaseAwaitingCardDest TurnPhase = "AWAITING_CARD_DESTINATION"
	PhaseAwaitingBuild    TurnPhase = "AWAITING_BUILD"
	PhaseIslandTurn       TurnPhase = "ISLAND_TURN"
	PhaseGameOver         TurnPhase = "GAME_OVER"
)

// GameMode selects the terminal condition.
type GameMode string

const (
	ModeClassic GameMode = "classic"
	ModeRounds  GameMode = "rounds"
)

// Settings are fixed at game start.
type Settings struct {
	MaxPlayers          int      `json:"max_players"`
	StartingCash        int      `json:"starting_cash"`
	TurnDurationSeconds int      `json:"turn_duration_seconds"`
	GameMode            GameMode `json:"game_mode"`
	MaxRounds           int      `json:"max_rounds"`
	AbilitiesEnabled    bool     `json:"abilities_enabled"`
	ExtraTurnOnDouble   bool     `json:"extra_turn_on_double"`
}

// Festival marks the one cell whose rent is multiplied until ExpiresRound.
type Festival struct {
	Cell         int `json:"cell"`
	Multiplier   int `json:"multiplier"`
	ExpiresRound int `json:"expires_round"`
}

// FrozenProperty suppresses rent on a cell until ExpiresRound.
type FrozenProperty struct {
	Cell         int `json:"cell"`
	ExpiresRound int `json:"expires_round"`
}

// PromptKind discriminates the pending prompt union.
type PromptKind string

const (
	PromptBuy          PromptKind = "buy"
	PromptBuyback      PromptKind = "buyback"
	PromptBuild        PromptKind = "build"
	PromptTravel       PromptKind = "travel"
	PromptFestival     PromptKind = "festival"
	PromptDestination  PromptKind = "destination"
	PromptAttackTarget PromptKind = "attack_target"
	PromptIslandEscape PromptKind = "island_escape"
)

// Prompt is the pending question the current phase waits on. Candidates
// lists the only legal answers: cell indices for destination/property
// prompts, seat slots for seat-targeted attacks.
type Prompt struct {
	Kind       PromptKind `json:"kind"`
	Seat       int        `json:"seat"`
	Cell       int        `json:"cell,omitempty"`
	Price      int        `json:"price,omitempty"`
	Candidates []int      `json:"candidates,omitempty"`
	CardID     string     `json:"card_id,omitempty"`
	Effect     CardEffect `json:"effect,omitempty"`
}

// HasCandidate reports whether v is a legal answer to the prompt.
func (p *Prompt) HasCandidate(v int) bool {
	for _, c := range p.Candidates {
		if c == v {
			return true
		}
	}
	return false
}

// Room is the full authoritative state of one game. The engine is its only
// writer once Status is RoomPlaying.
type Room struct {
	ID       string        `json:"id"`
	Code     string        `json:"code"`
	Status   RoomStatus    `json:"status"`
	Settings Settings      `json:"settings"`
	Players  []*SeatPlayer `json:"players"`

	CurrentPlayerSlot int       `json:"current_player_slot"`
	Round             int       `json:"round"`
	TurnPhase         TurnPhase `json:"turn_phase"`
	Prompt            *Prompt   `json:"prompt,omitempty"`

	// Turn-scoped context, reset when the turn ends.
	HasRolled  bool   `json:"has_rolled"`
	DoubleRoll bool   `json:"double_roll"`
	LastDice   [2]int `json:"last_dice"`

	Festival Festival         `json:"festival"`
	Frozen   []FrozenProperty `json:"frozen"`

	DeckA    []string `json:"-"`
	DeckB    []string `json:"-"`
	DiscardA []string `json:"-"`
	DiscardB []string `json:"-"`

	WinnerSlot int `json:"winner_slot"`
}

// PlayerBySlot returns the seat entity, or nil for an unknown slot.
func (r *Room) PlayerBySlot(slot int) *SeatPlayer {
	for _, p := range r.Players {
		if p.Slot == slot {
			return p
		}
	}
	return nil
}

// OwnerOf returns the non-bankrupt owner of a cell, or nil if the cell is
// bank-owned. Bankrupt seats release their cells, so this never reports one.
func (r *Room) OwnerOf(cell int) *SeatPlayer {
	for _, p := range r.Players {
		if p.IsBankrupt {
			continue
		}
		if p.Owns(cell) {
			return p
		}
	}
	return nil
}

// IsFrozen reports whether rent on a cell is currently suppressed.
func (r *Room) IsFrozen(cell int) bool {
	for _, f := range r.Frozen {
		if f.Cell == cell && r.Round < f.ExpiresRound {
			return true
		}
	}
	return false
}

// FestivalOn reports whether the festival multiplier applies to the cell.
func (r *Room) FestivalOn(cell int) bool {
	return r.Festival.Multiplier > 0 && r.Festival.Cell == cell && r.Round < r.Festival.ExpiresRound
}

// ActiveSeats returns the non-bankrupt slots in rotation order.
func (r *Room) ActiveSeats() []int {
	var out []int
	for _, p := range r.Players {
		if !p.IsBankrupt {
			out = append(out, p.Slot)
		}
	}
	return out
}
