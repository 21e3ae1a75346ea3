package engine

// Economy tuning. Rounds start at 1; per-round scaling counts completed
// rounds, so nothing scales during the first.
const (
	GoBonus            = 2000
	IslandArrivalTurns = 3
	IslandEscapeFee    = 1000

	FestivalMultiplier = 2
	FestivalRounds     = 3

	StationBaseRent = 500
	StationRoundPct = 5
	UtilityDiceRate = 40
	UtilityRoundPct = 5

	// Past this round every further round adds EscalationPct to rents.
	EscalationRoundThreshold = 10
	EscalationPct            = 10

	// Forced sales credit half of original cost, floored.
	LiquidationDivisor = 2

	// Buyback offers cost twice the owner's invested value.
	BuybackFactor = 2
)
