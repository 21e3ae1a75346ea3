package engine

import (
	"testing"

	"github.com/playhall/marble-backend/app/models"
)

func TestChargeSellsHouseBeforeBankruptcy(t *testing.T) {
	// Cash 100, owes 500, one house on cell 10 (house cost 900, resale
	// 450). The house sale covers the debt; the land survives.
	room := testRoom(2)
	eng := New(&scriptRand{})
	p := room.Players[0]
	p.Cash = 100
	p.Properties = []int{10}
	p.Houses[10] = 1

	var evs []models.Event
	eng.charge(room, p, 500, room.Players[1], &evs)

	if p.IsBankrupt {
		t.Fatal("player went bankrupt despite sufficient liquidatable assets")
	}
	if p.Cash != 50 {
		t.Errorf("cash after forced sale = %d, want 50", p.Cash)
	}
	if p.HouseCount(10) != 0 {
		t.Errorf("house count = %d, want 0", p.HouseCount(10))
	}
	if !p.Owns(10) {
		t.Error("land was sold although the house sale already covered the debt")
	}
	if room.Players[1].Cash != 20500 {
		t.Errorf("creditor cash = %d, want 20500", room.Players[1].Cash)
	}
}

func TestChargeLiquidationOrderHotelsHousesLand(t *testing.T) {
	room := testRoom(2)
	eng := New(&scriptRand{})
	p := room.Players[0]
	p.Cash = 0
	p.Properties = []int{6, 7}
	p.Hotels[6] = true // resale 600 (hotel cost 1200)
	p.Houses[7] = 1    // resale 300

	var evs []models.Event
	eng.charge(room, p, 700, nil, &evs)

	if p.IsBankrupt {
		t.Fatal("unexpected bankruptcy")
	}
	if p.HasHotel(6) {
		t.Error("hotel not sold first")
	}
	if p.HouseCount(7) != 0 {
		t.Error("house should be sold after the hotel")
	}
	if !p.Owns(6) || !p.Owns(7) {
		t.Error("land sold although buildings covered the debt")
	}
	if p.Cash != 200 {
		t.Errorf("cash = %d, want 200", p.Cash)
	}
}

func TestChargeBankruptcyAfterFullLiquidation(t *testing.T) {
	room := testRoom(3)
	eng := New(&scriptRand{})
	p := room.Players[0]
	creditor := room.Players[1]
	p.Cash = 100
	p.Properties = []int{1} // price 1000, resale 500

	var evs []models.Event
	eng.charge(room, p, 5000, creditor, &evs)

	if !p.IsBankrupt {
		t.Fatal("player should be bankrupt: full liquidation proceeds < obligation")
	}
	if p.Cash != 0 {
		t.Errorf("bankrupt player cash = %d, want 0", p.Cash)
	}
	if len(p.Properties) != 0 {
		t.Error("bankrupt player still owns cells; they must return to the bank")
	}
	// The creditor receives the partial payment, never the cells.
	if creditor.Cash != 20600 {
		t.Errorf("creditor cash = %d, want 20600", creditor.Cash)
	}
	if creditor.Owns(1) {
		t.Error("cells must go back to the bank, not the creditor")
	}
	if room.TurnPhase == models.PhaseGameOver {
		t.Error("game ended although two seats are still standing")
	}
}

func TestBankruptcyEndsClassicGameAtOneSeat(t *testing.T) {
	room := testRoom(2)
	eng := New(&scriptRand{})
	p := room.Players[0]
	p.Cash = 0

	var evs []models.Event
	eng.charge(room, p, 1000, room.Players[1], &evs)

	if room.TurnPhase != models.PhaseGameOver {
		t.Fatal("classic game must end the instant one seat remains")
	}
	if room.WinnerSlot != 2 {
		t.Errorf("winner = %d, want 2", room.WinnerSlot)
	}
	if room.Status != models.RoomOver {
		t.Errorf("room status = %q, want %q", room.Status, models.RoomOver)
	}
}

func TestRankedWinnerTieBreaks(t *testing.T) {
	cases := []struct {
		name   string
		setup  func(*models.Room)
		winner int
	}{
		{
			"highest net worth wins",
			func(r *models.Room) {
				r.Players[1].Properties = []int{6}
			},
			2,
		},
		{
			"net worth tie falls to cash",
			func(r *models.Room) {
				r.Players[0].Cash = 5000
				r.Players[0].Properties = []int{6} // worth 6200
				r.Players[1].Cash = 1000
				r.Players[2].Cash = 6200 // same worth as seat 1, more cash
			},
			3,
		},
		{
			"exact tie falls to lower slot",
			func(r *models.Room) {},
			1,
		},
		{
			"bankrupt seats never win",
			func(r *models.Room) {
				r.Players[0].IsBankrupt = true
				r.Players[0].Cash = 0
			},
			2,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			room := testRoom(3)
			tc.setup(room)
			if got := RankedWinner(room); got != tc.winner {
				t.Errorf("RankedWinner = %d, want %d", got, tc.winner)
			}
		})
	}
}

func TestFinalResult(t *testing.T) {
	room := testRoom(2)
	room.ID = "game-1"
	room.Round = 7
	room.WinnerSlot = 2
	room.Players[0].IsBankrupt = true
	room.Players[0].Cash = 0

	res := FinalResult(room)
	if res.GameID != "game-1" || res.WinnerSlot != 2 || res.Rounds != 7 {
		t.Errorf("FinalResult header = %+v", res)
	}
	if len(res.Scores) != 2 {
		t.Fatalf("scores = %d rows, want 2", len(res.Scores))
	}
	if !res.Scores[0].Bankrupt || res.Scores[0].NetWorth != 0 {
		t.Errorf("bankrupt row = %+v", res.Scores[0])
	}
	if res.Scores[1].NetWorth != 20000 {
		t.Errorf("winner net worth = %d, want 20000", res.Scores[1].NetWorth)
	}
}
