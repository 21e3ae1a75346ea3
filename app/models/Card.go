package models

// CardEffect is the closed effect set. Every member is handled explicitly by
// the resolver; adding one without a resolver arm is a compile-time smell
// the tests catch.
type CardEffect string

const (
	EffectGrantCash         CardEffect = "grant-cash"
	EffectPayCash           CardEffect = "pay-cash"
	EffectMoveToCell        CardEffect = "move-to-cell"
	EffectGrantEscapeCard   CardEffect = "grant-escape-card"
	EffectFreezeProperty    CardEffect = "freeze-property"
	EffectDestroyProperty   CardEffect = "destroy-property"
	EffectDowngradeProperty CardEffect = "downgrade-property"
	EffectForceTrade        CardEffect = "force-trade"
	EffectGrantImmunity     CardEffect = "grant-immunity"
	EffectGrantDoubleRent   CardEffect = "grant-double-rent"
	EffectSkipOpponentTurn  CardEffect = "skip-opponent-turn"

	// Ability-only effect; never appears in a card deck.
	EffectGrantShield CardEffect = "grant-shield"
)

// TargetType says what a drawn effect needs before it can resolve.
type TargetType string

const (
	TargetNone             TargetType = "NONE"
	TargetSelf             TargetType = "SELF"
	TargetOpponent         TargetType = "OPPONENT"
	TargetCell             TargetType = "CELL"
	TargetOpponentProperty TargetType = "OPPONENT_PROPERTY"
)

// DeckID names the two draw piles.
type DeckID string

const (
	DeckA DeckID = "A"
	DeckB DeckID = "B"
)

// Card is an immutable catalog entry. Value carries the effect's magnitude:
// a cash amount, a buff duration in turns, or a freeze duration in rounds.
type Card struct {
	ID     string     `json:"id"`
	Deck   DeckID     `json:"deck"`
	Label  string     `json:"label"`
	Effect CardEffect `json:"effect"`
	Target TargetType `json:"target"`
	Value  int        `json:"value,omitempty"`
}

// EscapeCardToken is the held-card key granted by grant-escape-card and
// consumed by EscapeIsland(USE_CARD).
const EscapeCardToken = "escape-island"

// Character is a per-seat identity with passive rent modifiers and one
// active ability resolved through the card-effect resolver.
type Character struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Passive rent modifiers applied when this character collects rent.
	RentFlatBonus int `json:"rent_flat_bonus,omitempty"`
	RentPctBonus  int `json:"rent_pct_bonus,omitempty"`

	Ability Ability `json:"ability"`
}

// Ability is the active power of a character.
type Ability struct {
	Effect        CardEffect  `json:"effect"`
	Target        TargetType  `json:"target"`
	Value         int         `json:"value,omitempty"`
	Cooldown      int         `json:"cooldown"`
	AllowedPhases []TurnPhase `json:"allowed_phases"`
}

// AllowedIn reports whether the ability may fire during the given phase.
func (a Ability) AllowedIn(phase TurnPhase) bool {
	for _, p := range a.AllowedPhases {
		if p == phase {
			return true
		}
	}
	return false
}
