package engine

import (
	"github.com/playhall/marble-backend/app/models"
	"github.com/playhall/marble-backend/platform/board"
)

// Rent computes the rent owed by an opponent landing on cellIndex, or 0 if
// the cell is unowned, owner-occupied territory does not apply here (the
// caller already knows who landed). diceTotal only matters for utilities.
//
// Modifier order is fixed and every multiplicative step floors to an
// integer before the next one runs. Monopoly is counted exactly once, at
// the base layer: an unimproved full-group cell charges its monopoly value
// and a built-on cell charges plain building rent, never both.
func Rent(room *models.Room, cellIndex, diceTotal int) int {
	// Step 9 wins over everything below it.
	if room.IsFrozen(cellIndex) {
		return 0
	}

	owner := room.OwnerOf(cellIndex)
	if owner == nil {
		return 0
	}

	cell := board.CellAt(cellIndex)
	completed := room.Round - 1

	var rent int
	switch cell.Type {
	case models.CellProperty:
		switch {
		case owner.HasHotel(cellIndex):
			rent = cell.RentHotel
		case owner.HouseCount(cellIndex) > 0:
			rent = cell.RentHouse[owner.HouseCount(cellIndex)-1]
		case OwnsFullGroup(room, owner, cell.Group):
			rent = cell.RentMonopoly
			if rent == 0 {
				rent = cell.RentBase * 2
			}
		default:
			rent = cell.RentBase
		}
	case models.CellStation:
		rent = StationBaseRent * stationsOwned(owner)
		rent = scalePct(rent, StationRoundPct*completed)
	case models.CellUtility:
		rent = diceTotal * UtilityDiceRate
		rent = scalePct(rent, UtilityRoundPct*completed)
	default:
		return 0
	}

	if room.FestivalOn(cellIndex) {
		rent *= room.Festival.Multiplier
	}
	if owner.DoubleRentTurns > 0 {
		rent *= 2
	}
	if room.Round > EscalationRoundThreshold {
		rent = scalePct(rent, EscalationPct*(room.Round-EscalationRoundThreshold))
	}
	if ch, ok := board.CharacterByID(owner.Character); ok {
		rent += ch.RentFlatBonus
		if ch.RentPctBonus > 0 {
			rent = scalePct(rent, ch.RentPctBonus)
		}
	}
	return rent
}

// scalePct grows v by pct percent, flooring the result.
func scalePct(v, pct int) int {
	return v * (100 + pct) / 100
}

// OwnsFullGroup reports whether owner holds every property in a color group.
func OwnsFullGroup(room *models.Room, owner *models.SeatPlayer, group string) bool {
	if group == "" {
		return false
	}
	for _, idx := range board.GroupCells(group) {
		if !owner.Owns(idx) {
			return false
		}
	}
	return true
}

func stationsOwned(p *models.SeatPlayer) int {
	n := 0
	for _, idx := range board.StationIndices() {
		if p.Owns(idx) {
			n++
		}
	}
	return n
}

// NetWorth is cash plus land price plus invested building cost. It ranks
// rounds-mode standings, so the formula must stay in sync with liquidation
// accounting.
func NetWorth(p *models.SeatPlayer) int {
	total := p.Cash
	for _, idx := range p.Properties {
		cell := board.CellAt(idx)
		total += cell.Price
		total += p.HouseCount(idx) * cell.HouseCost
		if p.HasHotel(idx) {
			total += cell.HotelCost
		}
	}
	return total
}

// InvestedValue is the owner's total spend on a single cell, the base for
// buyback premiums.
func InvestedValue(p *models.SeatPlayer, cellIndex int) int {
	cell := board.CellAt(cellIndex)
	total := cell.Price + p.HouseCount(cellIndex)*cell.HouseCost
	if p.HasHotel(cellIndex) {
		total += cell.HotelCost
	}
	return total
}
