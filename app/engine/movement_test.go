package engine

import (
	"testing"

	"github.com/playhall/marble-backend/app/models"
)

func TestAdvance(t *testing.T) {
	for pos := 0; pos < 36; pos++ {
		for steps := 1; steps <= 12; steps++ {
			got, passedGo := Advance(pos, steps)
			want := (pos + steps) % 36
			if got != want {
				t.Fatalf("Advance(%d, %d) = %d, want %d", pos, steps, got, want)
			}
			wantGo := pos+steps >= 36
			if passedGo != wantGo {
				t.Fatalf("Advance(%d, %d) passedGo = %v, want %v", pos, steps, passedGo, wantGo)
			}
		}
	}
}

func TestAdvanceLandingOnGoWraps(t *testing.T) {
	pos, passedGo := Advance(33, 3)
	if pos != 0 || !passedGo {
		t.Errorf("Advance(33, 3) = (%d, %v), want (0, true)", pos, passedGo)
	}
}

func TestNextActiveSeat(t *testing.T) {
	seats := func(bankrupt ...int) []*models.SeatPlayer {
		isBankrupt := map[int]bool{}
		for _, s := range bankrupt {
			isBankrupt[s] = true
		}
		var out []*models.SeatPlayer
		for slot := 1; slot <= 4; slot++ {
			out = append(out, &models.SeatPlayer{Slot: slot, IsBankrupt: isBankrupt[slot]})
		}
		return out
	}

	cases := []struct {
		name     string
		players  []*models.SeatPlayer
		current  int
		expected int
	}{
		{"simple rotation", seats(), 1, 2},
		{"wraps to lowest", seats(), 4, 1},
		{"skips bankrupt", seats(2), 1, 3},
		{"skips consecutive bankrupt", seats(2, 3), 1, 4},
		{"wraps over bankrupt", seats(1), 4, 2},
		{"last seat standing", seats(1, 2, 3), 4, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextActiveSeat(tc.players, tc.current)
			if got != tc.expected {
				t.Errorf("NextActiveSeat(current=%d) = %d, want %d", tc.current, got, tc.expected)
			}
		})
	}
}

func TestNextActiveSeatNeverReturnsBankrupt(t *testing.T) {
	players := []*models.SeatPlayer{
		{Slot: 1, IsBankrupt: true},
		{Slot: 2},
		{Slot: 3, IsBankrupt: true},
		{Slot: 4},
	}
	for current := 1; current <= 4; current++ {
		got := NextActiveSeat(players, current)
		for _, p := range players {
			if p.Slot == got && p.IsBankrupt {
				t.Errorf("NextActiveSeat(current=%d) returned bankrupt seat %d", current, got)
			}
		}
	}
}
