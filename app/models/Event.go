package models

// EventType tags the transient notices emitted alongside snapshots. Clients
// may drop them; the next snapshot is authoritative.
type EventType string

const (
	EventDiceRolled   EventType = "dice-rolled"
	EventMoved        EventType = "moved"
	EventGoBonus      EventType = "go-bonus"
	EventBuyPrompt    EventType = "buy-prompt"
	EventBought       EventType = "property-bought"
	EventRentAlert    EventType = "rent-alert"
	EventRentImmune   EventType = "rent-immune"
	EventTaxPaid      EventType = "tax-paid"
	EventBuybackOffer EventType = "buyback-offer"
	EventBuyback      EventType = "property-buyback"
	EventCardDrawn    EventType = "card-drawn"
	EventCardFizzled  EventType = "card-fizzled"
	EventAttackResult EventType = "attack-result"
	EventFestivalSet  EventType = "festival-set"
	EventTraveled     EventType = "traveled"
	EventBuilt        EventType = "built"
	EventIslandSent   EventType = "island-sent"
	EventIslandEscape EventType = "island-escape"
	EventIslandStuck  EventType = "island-stuck"
	EventAbilityUsed  EventType = "ability-used"
	EventAutoSold     EventType = "auto-sold"
	EventBankruptcy   EventType = "bankruptcy"
	EventSurrendered  EventType = "surrendered"
	EventTurnChanged  EventType = "turn-changed"
	EventRoundStarted EventType = "round-started"
	EventGameOver     EventType = "game-over"
)

// Event is one transient notice. Fields are populated per type; zero values
// are omitted on the wire.
type Event struct {
	Type     EventType  `json:"type"`
	Seat     int        `json:"seat,omitempty"`
	Target   int        `json:"target,omitempty"`
	Cell     int        `json:"cell,omitempty"`
	Amount   int        `json:"amount,omitempty"`
	Dice     [2]int     `json:"dice,omitempty"`
	CardID   string     `json:"card_id,omitempty"`
	Effect   CardEffect `json:"effect,omitempty"`
	Shielded bool       `json:"shielded,omitempty"`
	Detail   string     `json:"detail,omitempty"`
}

// SeatScore is one row of the final standings.
type SeatScore struct {
	Slot     int    `json:"slot"`
	Username string `json:"username"`
	NetWorth int    `json:"net_worth"`
	Cash     int    `json:"cash"`
	Bankrupt bool   `json:"bankrupt"`
}

// FinalResult is the pure end-of-game value handed to the submission-audit
// service before persistence. WinnerSlot is 0 when nobody won (double
// bankruptcy edge case).
type FinalResult struct {
	GameID     string      `json:"game_id"`
	Mode       GameMode    `json:"mode"`
	WinnerSlot int         `json:"winner_slot"`
	Rounds     int         `json:"rounds"`
	Scores     []SeatScore `json:"scores"`
}

// RoomSnapshot is the authoritative per-action view broadcast to clients.
// Deck contents stay server-side; only counts are exposed.
type RoomSnapshot struct {
	ID                string           `json:"id"`
	Code              string           `json:"code"`
	Status            RoomStatus       `json:"status"`
	Settings          Settings         `json:"settings"`
	Players           []*SeatPlayer    `json:"players"`
	CurrentPlayerSlot int              `json:"current_player_slot"`
	Round             int              `json:"round"`
	TurnPhase         TurnPhase        `json:"turn_phase"`
	Prompt            *Prompt          `json:"prompt,omitempty"`
	LastDice          [2]int           `json:"last_dice"`
	Festival          Festival         `json:"festival"`
	Frozen            []FrozenProperty `json:"frozen"`
	DeckACount        int              `json:"deck_a_count"`
	DeckBCount        int              `json:"deck_b_count"`
	WinnerSlot        int              `json:"winner_slot,omitempty"`
}
