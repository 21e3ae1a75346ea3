package engine

import (
	"github.com/playhall/marble-backend/app/models"
	"github.com/playhall/marble-backend/platform/board"
)

// Advance moves a token steps cells forward on the cyclic board. passedGo
// is true iff the addition wraps past index 0; landing exactly on GO wraps
// too, so passing and landing grant the bonus exactly once.
func Advance(position, steps int) (newPosition int, passedGo bool) {
	newPosition = (position + steps) % board.Size
	passedGo = newPosition < position
	return newPosition, passedGo
}

// NextActiveSeat returns the next non-bankrupt slot after currentSlot in
// rotation order. It returns currentSlot itself only when no other seat is
// active; the win evaluator resolves that situation before rotation runs.
func NextActiveSeat(players []*models.SeatPlayer, currentSlot int) int {
	n := len(players)
	if n == 0 {
		return currentSlot
	}
	start := 0
	for i, p := range players {
		if p.Slot == currentSlot {
			start = i
			break
		}
	}
	for off := 1; off <= n; off++ {
		p := players[(start+off)%n]
		if !p.IsBankrupt {
			return p.Slot
		}
	}
	return currentSlot
}

func lowestActiveSlot(room *models.Room) int {
	low := -1
	for _, p := range room.Players {
		if p.IsBankrupt {
			continue
		}
		if low == -1 || p.Slot < low {
			low = p.Slot
		}
	}
	return low
}
