package engine

import (
	"sort"

	"github.com/playhall/marble-backend/app/models"
	"github.com/playhall/marble-backend/platform/board"
)

// charge settles an obligation of amount against payer, crediting creditor
// (nil means the bank). When cash falls short it liquidates first; a payer
// that is still insolvent after full liquidation pays what remains, goes
// bankrupt, and the win evaluator runs. Cash never goes negative.
func (e *Engine) charge(room *models.Room, payer *models.SeatPlayer, amount int, creditor *models.SeatPlayer, evs *[]models.Event) {
	if payer.Cash < amount {
		e.liquidate(room, payer, amount, evs)
	}
	if payer.Cash >= amount {
		payer.Cash -= amount
		if creditor != nil && !creditor.IsBankrupt {
			creditor.Cash += amount
		}
		return
	}
	paid := payer.Cash
	payer.Cash = 0
	if creditor != nil && !creditor.IsBankrupt {
		creditor.Cash += paid
	}
	e.bankrupt(room, payer, evs)
}

// liquidate force-sells the payer's assets until cash covers amount or
// nothing is left. Priority is fixed: hotels, then houses, then land, each
// pass in ascending cell order, crediting half of original cost.
func (e *Engine) liquidate(room *models.Room, p *models.SeatPlayer, amount int, evs *[]models.Event) {
	owned := append([]int(nil), p.Properties...)
	sort.Ints(owned)

	for _, idx := range owned {
		if p.Cash >= amount {
			return
		}
		if p.HasHotel(idx) {
			p.Hotels[idx] = false
			credit := board.CellAt(idx).HotelCost / LiquidationDivisor
			p.Cash += credit
			*evs = append(*evs, models.Event{Type: models.EventAutoSold, Seat: p.Slot, Cell: idx, Amount: credit, Detail: "hotel"})
		}
	}
	for _, idx := range owned {
		for p.Cash < amount && p.HouseCount(idx) > 0 {
			p.Houses[idx]--
			credit := board.CellAt(idx).HouseCost / LiquidationDivisor
			p.Cash += credit
			*evs = append(*evs, models.Event{Type: models.EventAutoSold, Seat: p.Slot, Cell: idx, Amount: credit, Detail: "house"})
		}
	}
	for _, idx := range owned {
		if p.Cash >= amount {
			return
		}
		// Buildings are gone by now, so every cell is unencumbered.
		releaseCell(p, idx)
		credit := board.CellAt(idx).Price / LiquidationDivisor
		p.Cash += credit
		*evs = append(*evs, models.Event{Type: models.EventAutoSold, Seat: p.Slot, Cell: idx, Amount: credit, Detail: "land"})
	}
}

func releaseCell(p *models.SeatPlayer, idx int) {
	for i, c := range p.Properties {
		if c == idx {
			p.Properties = append(p.Properties[:i], p.Properties[i+1:]...)
			break
		}
	}
	if p.Houses != nil {
		delete(p.Houses, idx)
	}
	if p.Hotels != nil {
		delete(p.Hotels, idx)
	}
}

// bankrupt marks the seat terminally insolvent. Cells go back to the bank
// unowned, never to the creditor.
func (e *Engine) bankrupt(room *models.Room, p *models.SeatPlayer, evs *[]models.Event) {
	p.IsBankrupt = true
	p.Properties = nil
	p.Houses = map[int]int{}
	p.Hotels = map[int]bool{}
	p.HeldCards = map[string]int{}
	p.ImmunityNextRent = false
	p.DoubleRentTurns = 0
	p.SkipNextTurn = false
	p.IslandTurns = 0
	p.ShieldTurns = 0
	*evs = append(*evs, models.Event{Type: models.EventBankruptcy, Seat: p.Slot})
	e.evaluateWin(room, evs)
}

// evaluateWin ends the game the instant at most one seat is left standing.
// Rounds-mode expiry is checked separately at round increments.
func (e *Engine) evaluateWin(room *models.Room, evs *[]models.Event) {
	if room.TurnPhase == models.PhaseGameOver {
		return
	}
	active := room.ActiveSeats()
	if len(active) > 1 {
		return
	}
	winner := 0
	if len(active) == 1 {
		winner = active[0]
	}
	e.finish(room, winner, evs)
}

// evaluateRoundLimit ends a rounds-mode game once the round counter reaches
// the configured cap, ranking seats by net worth, then cash, then lower
// slot. The tie-break order is outcome-determining and fixed.
func (e *Engine) evaluateRoundLimit(room *models.Room, evs *[]models.Event) {
	if room.Settings.GameMode != models.ModeRounds || room.TurnPhase == models.PhaseGameOver {
		return
	}
	if room.Round < room.Settings.MaxRounds {
		return
	}
	e.finish(room, RankedWinner(room), evs)
}

// RankedWinner picks the standing seat with the highest net worth; ties
// break by cash, then by lower slot number. Returns 0 when every seat is
// bankrupt.
func RankedWinner(room *models.Room) int {
	winner := 0
	bestWorth, bestCash := -1, -1
	for _, p := range room.Players {
		if p.IsBankrupt {
			continue
		}
		worth := NetWorth(p)
		better := worth > bestWorth ||
			(worth == bestWorth && p.Cash > bestCash) ||
			(worth == bestWorth && p.Cash == bestCash && (winner == 0 || p.Slot < winner))
		if better {
			winner, bestWorth, bestCash = p.Slot, worth, p.Cash
		}
	}
	return winner
}

func (e *Engine) finish(room *models.Room, winner int, evs *[]models.Event) {
	room.Status = models.RoomOver
	room.TurnPhase = models.PhaseGameOver
	room.Prompt = nil
	room.WinnerSlot = winner
	*evs = append(*evs, models.Event{Type: models.EventGameOver, Seat: winner})
}

// FinalResult is the pure end-of-game value handed to the submission-audit
// collaborator before persistence.
func FinalResult(room *models.Room) models.FinalResult {
	res := models.FinalResult{
		GameID:     room.ID,
		Mode:       room.Settings.GameMode,
		WinnerSlot: room.WinnerSlot,
		Rounds:     room.Round,
	}
	for _, p := range room.Players {
		res.Scores = append(res.Scores, models.SeatScore{
			Slot:     p.Slot,
			Username: p.Username,
			NetWorth: NetWorth(p),
			Cash:     p.Cash,
			Bankrupt: p.IsBankrupt,
		})
	}
	return res
}
