package models

// ActionType enumerates every inbound player action. The engine switch over
// this set is exhaustive; unknown types are an InvalidPhase rejection.
type ActionType string

const (
	ActionRollDice        ActionType = "ROLL_DICE"
	ActionBuyProperty     ActionType = "BUY_PROPERTY"
	ActionSkipBuy         ActionType = "SKIP_BUY"
	ActionTravel          ActionType = "TRAVEL"
	ActionApplyFestival   ActionType = "APPLY_FESTIVAL"
	ActionChooseCardDest  ActionType = "CHOOSE_CARD_DESTINATION"
	ActionChooseAttack    ActionType = "CHOOSE_ATTACK_TARGET"
	ActionRespondBuyback  ActionType = "RESPOND_BUYBACK"
	ActionBuild           ActionType = "BUILD"
	ActionEscapeIsland    ActionType = "ESCAPE_ISLAND"
	ActionActivateAbility ActionType = "ACTIVATE_ABILITY"
	ActionSurrender       ActionType = "SURRENDER"
)

// EscapeMethod is the island escape choice.
type EscapeMethod string

const (
	EscapePay     EscapeMethod = "PAY"
	EscapeRoll    EscapeMethod = "ROLL"
	EscapeUseCard EscapeMethod = "USE_CARD"
)

// Action is one player-initiated step. Slot identifies the acting seat
// (validated upstream by the orchestrator against the socket session).
// Target is a cell index for destination/property answers and a seat slot
// for seat-targeted prompts; the pending prompt's candidate set decides
// which reading applies.
type Action struct {
	Slot   int          `json:"slot"`
	Type   ActionType   `json:"type"`
	Cell   int          `json:"cell,omitempty"`
	Target int          `json:"target,omitempty"`
	Accept bool         `json:"accept,omitempty"`
	Method EscapeMethod `json:"method,omitempty"`
}
