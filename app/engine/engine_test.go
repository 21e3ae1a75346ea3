package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/playhall/marble-backend/app/models"
)

// testRoom builds a playing classic-mode room with the given seat count,
// 20 000 starting cash, abilities off, and seat 1 to act.
func testRoom(seats int) *models.Room {
	room := &models.Room{
		ID:     "test",
		Code:   "TEST42",
		Status: models.RoomPlaying,
		Settings: models.Settings{
			MaxPlayers:          seats,
			StartingCash:        20000,
			TurnDurationSeconds: 30,
			GameMode:            models.ModeClassic,
		},
		Round:             1,
		CurrentPlayerSlot: 1,
		TurnPhase:         models.PhaseRollDice,
	}
	for s := 1; s <= seats; s++ {
		room.Players = append(room.Players, &models.SeatPlayer{
			Slot:      s,
			Username:  fmt.Sprintf("player%d", s),
			Cash:      20000,
			Houses:    map[int]int{},
			Hotels:    map[int]bool{},
			HeldCards: map[string]int{},
		})
	}
	return room
}

// scriptRand replays a fixed dice sequence; shuffles become no-ops so
// stacked decks stay in order.
type scriptRand struct {
	rolls []int
	i     int
}

func (r *scriptRand) Die() int {
	if r.i >= len(r.rolls) {
		return 1
	}
	d := r.rolls[r.i]
	r.i++
	return d
}

func (r *scriptRand) Intn(n int) int { return 0 }

func TestBuyPropertyScenario(t *testing.T) {
	// Seat 1 rolls (3,4), lands on unowned Jakarta (cell 7, price 1200),
	// buys it, and the dice pass to seat 2.
	room := testRoom(4)
	eng := New(&scriptRand{rolls: []int{3, 4}})

	evs, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRollDice})
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if room.TurnPhase != models.PhaseAwaitingAction {
		t.Fatalf("phase after landing = %q, want AWAITING_ACTION", room.TurnPhase)
	}
	if room.Prompt == nil || room.Prompt.Kind != models.PromptBuy || room.Prompt.Cell != 7 || room.Prompt.Price != 1200 {
		t.Fatalf("buy prompt = %+v", room.Prompt)
	}
	if len(evs) == 0 {
		t.Fatal("roll produced no events")
	}

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionBuyProperty}); err != nil {
		t.Fatalf("buy: %v", err)
	}
	p1 := room.PlayerBySlot(1)
	if p1.Cash != 18800 {
		t.Errorf("cash after buy = %d, want 18800", p1.Cash)
	}
	if !p1.Owns(7) {
		t.Error("cell 7 not in propertiesOwned after buy")
	}
	if room.TurnPhase != models.PhaseRollDice || room.CurrentPlayerSlot != 2 {
		t.Errorf("after buy: phase=%q seat=%d, want ROLL_DICE for seat 2", room.TurnPhase, room.CurrentPlayerSlot)
	}
}

func TestRejectionsLeaveStateUnchanged(t *testing.T) {
	room := testRoom(4)
	eng := New(&scriptRand{rolls: []int{3, 4}})

	cases := []struct {
		name string
		act  models.Action
		want error
	}{
		{"wrong seat rolls", models.Action{Slot: 2, Type: models.ActionRollDice}, ErrInvalidActor},
		{"build during roll phase", models.Action{Slot: 1, Type: models.ActionBuild, Cell: 7}, ErrInvalidPhase},
		{"travel during roll phase", models.Action{Slot: 1, Type: models.ActionTravel, Cell: 3}, ErrInvalidPhase},
		{"unknown slot", models.Action{Slot: 9, Type: models.ActionRollDice}, ErrInvalidActor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eng.Apply(room, tc.act)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if room.TurnPhase != models.PhaseRollDice || room.CurrentPlayerSlot != 1 {
				t.Fatal("rejection mutated room state")
			}
		})
	}

	room.Status = models.RoomLobby
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRollDice}); !errors.Is(err, ErrRoomNotPlaying) {
		t.Errorf("lobby action err = %v, want ErrRoomNotPlaying", err)
	}
}

func TestRentAutoDeductAndBuybackOffer(t *testing.T) {
	room := testRoom(2)
	room.Players[1].Properties = []int{7}
	eng := New(&scriptRand{rolls: []int{3, 4}})

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRollDice}); err != nil {
		t.Fatalf("roll: %v", err)
	}
	p1, p2 := room.PlayerBySlot(1), room.PlayerBySlot(2)
	if p1.Cash != 20000-120 {
		t.Errorf("payer cash = %d, want %d", p1.Cash, 20000-120)
	}
	if p2.Cash != 20000+120 {
		t.Errorf("owner cash = %d, want %d", p2.Cash, 20000+120)
	}
	if room.Prompt == nil || room.Prompt.Kind != models.PromptBuyback || room.Prompt.Price != 2400 {
		t.Fatalf("buyback prompt = %+v, want premium 2400", room.Prompt)
	}

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRespondBuyback, Accept: true}); err != nil {
		t.Fatalf("buyback: %v", err)
	}
	if !p1.Owns(7) || p2.Owns(7) {
		t.Error("buyback did not transfer the cell")
	}
	if p1.Cash != 20000-120-2400 {
		t.Errorf("payer cash after buyback = %d, want %d", p1.Cash, 20000-120-2400)
	}
	if room.CurrentPlayerSlot != 2 {
		t.Errorf("turn did not pass, seat = %d", room.CurrentPlayerSlot)
	}
}

func TestRentImmunityConsumedOnce(t *testing.T) {
	room := testRoom(2)
	room.Players[1].Properties = []int{7}
	room.Players[0].ImmunityNextRent = true
	eng := New(&scriptRand{rolls: []int{3, 4}})

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRollDice}); err != nil {
		t.Fatalf("roll: %v", err)
	}
	p1 := room.PlayerBySlot(1)
	if p1.Cash != 20000 {
		t.Errorf("immune payer lost cash: %d", p1.Cash)
	}
	if p1.ImmunityNextRent {
		t.Error("immunity was not consumed")
	}
}

func TestGoToIslandAndEscapeByPaying(t *testing.T) {
	room := testRoom(2)
	room.Players[0].Position = 23
	eng := New(&scriptRand{rolls: []int{3, 4, 1, 2}})

	// Seat 1 lands on GO_TO_ISLAND (cell 30).
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRollDice}); err != nil {
		t.Fatalf("roll: %v", err)
	}
	p1 := room.PlayerBySlot(1)
	if p1.Position != 9 || p1.IslandTurns != 3 {
		t.Fatalf("island send: pos=%d turns=%d, want pos=9 turns=3", p1.Position, p1.IslandTurns)
	}
	if room.CurrentPlayerSlot != 2 {
		t.Fatalf("turn did not pass after island send")
	}

	// Seat 2 rolls (1,2) onto unowned cell 3 and declines the buy.
	if _, err := eng.Apply(room, models.Action{Slot: 2, Type: models.ActionRollDice}); err != nil {
		t.Fatalf("seat 2 roll: %v", err)
	}
	if _, err := eng.Apply(room, models.Action{Slot: 2, Type: models.ActionSkipBuy}); err != nil {
		t.Fatalf("seat 2 skip: %v", err)
	}

	// Seat 1 is back, stuck on the island, and pays out.
	if room.TurnPhase != models.PhaseIslandTurn || room.CurrentPlayerSlot != 1 {
		t.Fatalf("phase=%q seat=%d, want ISLAND_TURN for seat 1", room.TurnPhase, room.CurrentPlayerSlot)
	}
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionEscapeIsland, Method: models.EscapePay}); err != nil {
		t.Fatalf("escape: %v", err)
	}
	if p1.Cash != 20000-IslandEscapeFee || p1.IslandTurns != 0 {
		t.Errorf("after paid escape: cash=%d islandTurns=%d", p1.Cash, p1.IslandTurns)
	}
	if room.TurnPhase != models.PhaseRollDice {
		t.Errorf("escaped seat should roll, phase = %q", room.TurnPhase)
	}
}

func TestIslandFailedRollDecrements(t *testing.T) {
	room := testRoom(2)
	room.Players[0].IslandTurns = 2
	room.TurnPhase = models.PhaseIslandTurn
	eng := New(&scriptRand{rolls: []int{2, 5}})

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionEscapeIsland, Method: models.EscapeRoll}); err != nil {
		t.Fatalf("escape roll: %v", err)
	}
	p1 := room.PlayerBySlot(1)
	if p1.IslandTurns != 1 {
		t.Errorf("islandTurns = %d, want 1", p1.IslandTurns)
	}
	if p1.Position != 0 {
		t.Errorf("failed escape moved the player to %d", p1.Position)
	}
	if room.CurrentPlayerSlot != 2 {
		t.Errorf("turn did not end after failed escape")
	}
}

func TestIslandEscapeByDoubles(t *testing.T) {
	room := testRoom(2)
	room.Players[0].Position = 9
	room.Players[0].IslandTurns = 2
	room.TurnPhase = models.PhaseIslandTurn
	eng := New(&scriptRand{rolls: []int{4, 4}})

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionEscapeIsland, Method: models.EscapeRoll}); err != nil {
		t.Fatalf("escape roll: %v", err)
	}
	p1 := room.PlayerBySlot(1)
	if p1.IslandTurns != 0 {
		t.Errorf("islandTurns = %d, want 0", p1.IslandTurns)
	}
	if p1.Position != 17 {
		t.Errorf("position = %d, want 17 (island 9 + 8)", p1.Position)
	}
}

func TestCardDrawGrantsCash(t *testing.T) {
	room := testRoom(2)
	room.DeckB = []string{"b-01"} // Dividend payout, +1000
	eng := New(&scriptRand{rolls: []int{1, 1}})

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRollDice}); err != nil {
		t.Fatalf("roll: %v", err)
	}
	p1 := room.PlayerBySlot(1)
	if p1.Cash != 21000 {
		t.Errorf("cash after grant-cash card = %d, want 21000", p1.Cash)
	}
	if len(room.DiscardB) != 1 || room.DiscardB[0] != "b-01" {
		t.Errorf("discard pile = %v, want [b-01]", room.DiscardB)
	}
}

func TestSkipOpponentTurnCard(t *testing.T) {
	room := testRoom(2)
	room.Players[0].Position = 6
	room.DeckA = []string{"a-09"} // Red tape: skip-opponent-turn
	eng := New(&scriptRand{rolls: []int{3, 4}})

	// Lands on card cell 13, draws the skip card, picks seat 2.
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRollDice}); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if room.TurnPhase != models.PhaseAwaitingCardDest || room.Prompt == nil || room.Prompt.Kind != models.PromptAttackTarget {
		t.Fatalf("phase=%q prompt=%+v, want attack-target prompt", room.TurnPhase, room.Prompt)
	}
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionChooseAttack, Target: 2}); err != nil {
		t.Fatalf("choose target: %v", err)
	}

	// Seat 2 loses its next turn: rotation passes straight back to seat 1
	// and a new round begins.
	if room.CurrentPlayerSlot != 1 {
		t.Errorf("current seat = %d, want 1 (seat 2 skipped)", room.CurrentPlayerSlot)
	}
	if room.PlayerBySlot(2).SkipNextTurn {
		t.Error("skip flag not consumed")
	}
	if room.Round != 2 {
		t.Errorf("round = %d, want 2", room.Round)
	}
}

func TestAttackShieldedDefender(t *testing.T) {
	room := testRoom(2)
	defender := room.Players[1]
	defender.Properties = []int{6}
	defender.Houses[6] = 2
	defender.ShieldTurns = 1
	eng := New(&scriptRand{})

	var evs []models.Event
	eng.applyTargetedEffect(room, room.Players[0], models.EffectDestroyProperty, 0, 6, &evs)

	if !defender.Owns(6) || defender.HouseCount(6) != 2 {
		t.Fatal("shielded attack mutated the defender")
	}
	if len(evs) != 1 || !evs[0].Shielded {
		t.Fatalf("attack result = %+v, want shielded report", evs)
	}
}

func TestDowngradeTiers(t *testing.T) {
	p := &models.SeatPlayer{
		Slot:       1,
		Properties: []int{6},
		Houses:     map[int]int{},
		Hotels:     map[int]bool{6: true},
	}
	downgrade(p, 6)
	if p.HasHotel(6) || p.HouseCount(6) != 4 {
		t.Fatalf("hotel downgrade: hotel=%v houses=%d, want 4 houses", p.HasHotel(6), p.HouseCount(6))
	}
	downgrade(p, 6)
	if p.HouseCount(6) != 3 {
		t.Fatalf("house downgrade: houses=%d, want 3", p.HouseCount(6))
	}
	p.Houses[6] = 0
	downgrade(p, 6)
	if p.Owns(6) {
		t.Fatal("bare-land downgrade should destroy the holding")
	}
}

func TestBuildPromptAndHotelConversion(t *testing.T) {
	room := testRoom(2)
	p1 := room.Players[0]
	p1.Properties = []int{1, 3} // full brown group
	p1.Houses[1] = 4
	p1.Position = 33
	eng := New(&scriptRand{rolls: []int{1, 2}}) // lands on GO, wraps

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRollDice}); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if p1.Cash != 22000 {
		t.Errorf("go bonus: cash = %d, want 22000", p1.Cash)
	}
	if room.TurnPhase != models.PhaseAwaitingBuild {
		t.Fatalf("phase = %q, want AWAITING_BUILD", room.TurnPhase)
	}
	if !room.Prompt.HasCandidate(1) || !room.Prompt.HasCandidate(3) {
		t.Fatalf("build candidates = %v, want both brown cells", room.Prompt.Candidates)
	}

	// The fifth increment on cell 1 converts the four houses to a hotel.
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionBuild, Cell: 1}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if !p1.HasHotel(1) || p1.HouseCount(1) != 0 {
		t.Errorf("hotel conversion: hotel=%v houses=%d", p1.HasHotel(1), p1.HouseCount(1))
	}
	if p1.Cash != 22000-1000 {
		t.Errorf("cash = %d, want %d (hotel cost == price)", p1.Cash, 21000)
	}
	if room.CurrentPlayerSlot != 2 {
		t.Error("build should end the turn")
	}
}

func TestDoubleRollGrantsExtraTurn(t *testing.T) {
	room := testRoom(2)
	room.Settings.ExtraTurnOnDouble = true
	eng := New(&scriptRand{rolls: []int{2, 2}})

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRollDice}); err != nil {
		t.Fatalf("roll: %v", err)
	}
	// Cell 4 is income tax: paid automatically, then the doubles earn the
	// same seat another roll.
	p1 := room.PlayerBySlot(1)
	if p1.Cash != 20000-1500 {
		t.Errorf("cash after tax = %d, want 18500", p1.Cash)
	}
	if room.CurrentPlayerSlot != 1 || room.TurnPhase != models.PhaseRollDice {
		t.Errorf("doubles: seat=%d phase=%q, want seat 1 to roll again", room.CurrentPlayerSlot, room.TurnPhase)
	}
}

func TestSurrenderEndsTwoSeatGame(t *testing.T) {
	room := testRoom(2)
	eng := New(&scriptRand{})

	if _, err := eng.Apply(room, models.Action{Slot: 2, Type: models.ActionSurrender}); err != nil {
		t.Fatalf("surrender: %v", err)
	}
	if room.TurnPhase != models.PhaseGameOver || room.WinnerSlot != 1 {
		t.Errorf("phase=%q winner=%d, want GAME_OVER winner 1", room.TurnPhase, room.WinnerSlot)
	}
}

func TestRoundsModeEndsAtMaxRounds(t *testing.T) {
	room := testRoom(2)
	room.Settings.GameMode = models.ModeRounds
	room.Settings.MaxRounds = 2
	room.Players[1].Properties = []int{6} // seat 2 leads on net worth
	room.CurrentPlayerSlot = 2
	room.TurnPhase = models.PhaseRollDice
	eng := New(&scriptRand{rolls: []int{1, 2}})

	// Seat 2 finishes the lap; rotation back to seat 1 starts round 2,
	// which hits the cap.
	if _, err := eng.Apply(room, models.Action{Slot: 2, Type: models.ActionRollDice}); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if _, err := eng.Apply(room, models.Action{Slot: 2, Type: models.ActionSkipBuy}); err != nil {
		t.Fatalf("skip buy: %v", err)
	}
	if room.TurnPhase != models.PhaseGameOver {
		t.Fatalf("phase = %q, want GAME_OVER at round cap", room.TurnPhase)
	}
	if room.WinnerSlot != 2 {
		t.Errorf("winner = %d, want 2 (highest net worth)", room.WinnerSlot)
	}
}

func TestAbilityActivationAndCooldown(t *testing.T) {
	room := testRoom(2)
	room.Settings.AbilitiesEnabled = true
	p1 := room.Players[0]
	p1.Character = "banker"
	eng := New(&scriptRand{rolls: []int{1, 2}})

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionActivateAbility}); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if p1.Cash != 21500 {
		t.Errorf("banker ability cash = %d, want 21500", p1.Cash)
	}
	if p1.AbilityCooldown != 6 || !p1.AbilityUsedThisTurn {
		t.Errorf("cooldown=%d used=%v after activation", p1.AbilityCooldown, p1.AbilityUsedThisTurn)
	}

	// Second activation in the same turn is rejected.
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionActivateAbility}); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("second activation err = %v, want ErrInvalidPhase", err)
	}

	// The seat still owes its roll; finishing the turn ticks the cooldown.
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRollDice}); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionSkipBuy}); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if p1.AbilityCooldown != 5 || p1.AbilityUsedThisTurn {
		t.Errorf("cooldown=%d used=%v after turn end, want 5/false", p1.AbilityCooldown, p1.AbilityUsedThisTurn)
	}
}

func TestSetupAssignsUniqueCharactersAndDecks(t *testing.T) {
	room := testRoom(4)
	room.Status = models.RoomLobby
	room.Settings.AbilitiesEnabled = true
	eng := New(CryptoRand)
	eng.Setup(room)

	if room.Status != models.RoomPlaying || room.TurnPhase != models.PhaseRollDice || room.Round != 1 {
		t.Fatalf("setup state: status=%q phase=%q round=%d", room.Status, room.TurnPhase, room.Round)
	}
	if room.CurrentPlayerSlot != 1 {
		t.Errorf("first seat = %d, want 1", room.CurrentPlayerSlot)
	}
	seen := map[string]bool{}
	for _, p := range room.Players {
		if p.Cash != 20000 || p.Position != 0 {
			t.Errorf("seat %d: cash=%d pos=%d", p.Slot, p.Cash, p.Position)
		}
		if p.Character == "" || seen[p.Character] {
			t.Errorf("seat %d character %q not unique", p.Slot, p.Character)
		}
		seen[p.Character] = true
	}
	if len(room.DeckA) != 12 || len(room.DeckB) != 12 {
		t.Errorf("deck sizes = %d/%d, want 12/12", len(room.DeckA), len(room.DeckB))
	}
}

func TestPreRollMoveAbilityKeepsDice(t *testing.T) {
	room := testRoom(2)
	room.Settings.AbilitiesEnabled = true
	p1 := room.Players[0]
	p1.Character = "voyager"
	eng := New(&scriptRand{rolls: []int{3, 4}})

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionActivateAbility}); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if room.TurnPhase != models.PhaseAwaitingCardDest || room.Prompt == nil || room.Prompt.Kind != models.PromptDestination {
		t.Fatalf("phase=%q prompt=%+v, want destination prompt", room.TurnPhase, room.Prompt)
	}

	// Teleport onto unowned Jakarta before rolling: the landing opens a
	// buy prompt.
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionChooseCardDest, Cell: 7}); err != nil {
		t.Fatalf("choose destination: %v", err)
	}
	if room.Prompt == nil || room.Prompt.Kind != models.PromptBuy || room.Prompt.Cell != 7 {
		t.Fatalf("prompt = %+v, want buy prompt at cell 7", room.Prompt)
	}

	// Declining the purchase must not cost the seat its dice.
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionSkipBuy}); err != nil {
		t.Fatalf("skip buy: %v", err)
	}
	if room.TurnPhase != models.PhaseRollDice || room.CurrentPlayerSlot != 1 || room.HasRolled {
		t.Fatalf("after skip: phase=%q seat=%d rolled=%v, want seat 1 back at ROLL_DICE",
			room.TurnPhase, room.CurrentPlayerSlot, room.HasRolled)
	}

	// The owed roll proceeds normally from the new position.
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRollDice}); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if p1.Position != 14 || room.Prompt == nil || room.Prompt.Kind != models.PromptBuy {
		t.Errorf("pos=%d prompt=%+v, want buy prompt on station 14", p1.Position, room.Prompt)
	}
}

func TestTravelChoiceFlow(t *testing.T) {
	room := testRoom(2)
	room.Players[0].Position = 20
	eng := New(&scriptRand{rolls: []int{3, 4}})

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRollDice}); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if room.TurnPhase != models.PhaseAwaitingTravel || room.Prompt == nil || room.Prompt.Kind != models.PromptTravel {
		t.Fatalf("phase=%q prompt=%+v, want travel prompt", room.TurnPhase, room.Prompt)
	}

	// Standing still is not travelling.
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionTravel, Cell: 27}); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("travel to current cell err = %v, want ErrInvalidTarget", err)
	}

	// Flying home to GO wraps the board and pays the bonus.
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionTravel, Cell: 0}); err != nil {
		t.Fatalf("travel: %v", err)
	}
	p1 := room.PlayerBySlot(1)
	if p1.Position != 0 || p1.Cash != 22000 {
		t.Errorf("after travel: pos=%d cash=%d, want GO with bonus", p1.Position, p1.Cash)
	}
	if room.CurrentPlayerSlot != 2 || room.TurnPhase != models.PhaseRollDice {
		t.Errorf("turn did not pass: seat=%d phase=%q", room.CurrentPlayerSlot, room.TurnPhase)
	}
}

func TestFestivalChoiceFlow(t *testing.T) {
	room := testRoom(2)
	p1 := room.Players[0]
	p1.Position = 11
	p1.Properties = []int{6, 7}
	eng := New(&scriptRand{rolls: []int{3, 4}})

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionRollDice}); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if room.TurnPhase != models.PhaseAwaitingFestival || room.Prompt == nil || room.Prompt.Kind != models.PromptFestival {
		t.Fatalf("phase=%q prompt=%+v, want festival prompt", room.TurnPhase, room.Prompt)
	}

	// Only the seat's own property cells qualify.
	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionApplyFestival, Cell: 8}); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("festival on unowned cell err = %v, want ErrInvalidTarget", err)
	}

	if _, err := eng.Apply(room, models.Action{Slot: 1, Type: models.ActionApplyFestival, Cell: 6}); err != nil {
		t.Fatalf("festival: %v", err)
	}
	if room.Festival.Cell != 6 || room.Festival.Multiplier != FestivalMultiplier || room.Festival.ExpiresRound != 1+FestivalRounds {
		t.Errorf("festival = %+v", room.Festival)
	}
	if got := Rent(room, 6, 7); got != 240 {
		t.Errorf("festival rent = %d, want 240 (base 120 doubled)", got)
	}
	if room.CurrentPlayerSlot != 2 {
		t.Errorf("turn did not pass, seat = %d", room.CurrentPlayerSlot)
	}
}

func TestDeckReshufflesFromDiscard(t *testing.T) {
	room := testRoom(2)
	room.DeckB = nil
	room.DiscardB = []string{"b-02", "b-03"}
	eng := New(&scriptRand{})

	card := eng.draw(room, models.DeckB)
	if card.ID == "" {
		t.Fatal("draw from reshuffled discard returned nothing")
	}
	if len(room.DeckB)+len(room.DiscardB) != 2 {
		t.Errorf("cards leaked: deck=%d discard=%d", len(room.DeckB), len(room.DiscardB))
	}
}
