package board

import (
	"testing"

	"github.com/playhall/marble-backend/app/models"
)

func TestCatalogGeometry(t *testing.T) {
	goCells := 0
	for i := 0; i < Size; i++ {
		c := CellAt(i)
		if c.Index != i {
			t.Errorf("cell %d carries index %d", i, c.Index)
		}
		if c.Type == models.CellGo {
			goCells++
		}
	}
	if goCells != 1 {
		t.Errorf("board has %d GO cells, want exactly 1", goCells)
	}
	for _, corner := range []int{GoIndex, IslandIndex, FestivalIndex, TravelIndex} {
		if CellAt(corner).Purchasable() {
			t.Errorf("corner %d must not be purchasable", corner)
		}
	}
}

func TestCellAtPanicsOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, Size} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("CellAt(%d) did not panic", idx)
				}
			}()
			CellAt(idx)
		}()
	}
}

func TestPropertyRentTiersAscend(t *testing.T) {
	for i := 0; i < Size; i++ {
		c := CellAt(i)
		if c.Type != models.CellProperty {
			continue
		}
		prev := c.RentBase
		if c.RentMonopoly <= prev {
			t.Errorf("cell %d: monopoly rent %d not above base %d", i, c.RentMonopoly, prev)
		}
		for h, r := range c.RentHouse {
			if r <= prev {
				t.Errorf("cell %d: %d-house rent %d not above previous tier %d", i, h+1, r, prev)
			}
			prev = r
		}
		if c.RentHotel <= prev {
			t.Errorf("cell %d: hotel rent %d not above 4-house rent %d", i, c.RentHotel, prev)
		}
		if c.Group == "" {
			t.Errorf("cell %d: property without a color group", i)
		}
	}
}

func TestGroupCellsPartitionProperties(t *testing.T) {
	seen := map[int]bool{}
	groups := map[string]bool{}
	for i := 0; i < Size; i++ {
		if c := CellAt(i); c.Type == models.CellProperty {
			groups[c.Group] = true
		}
	}
	for g := range groups {
		cells := GroupCells(g)
		if len(cells) < 2 {
			t.Errorf("group %q has %d cells, want at least 2", g, len(cells))
		}
		for _, idx := range cells {
			if seen[idx] {
				t.Errorf("cell %d appears in two groups", idx)
			}
			seen[idx] = true
		}
	}
}

func TestDecksHoldTwelveCardsEach(t *testing.T) {
	for _, deck := range []models.DeckID{models.DeckA, models.DeckB} {
		ids := DeckIDs(deck)
		if len(ids) != 12 {
			t.Errorf("deck %s holds %d cards, want 12", deck, len(ids))
		}
		for _, id := range ids {
			card, ok := CardByID(id)
			if !ok {
				t.Errorf("deck %s id %q missing from catalog", deck, id)
				continue
			}
			if card.Target == models.TargetNone || card.Target == models.TargetSelf {
				continue
			}
			if card.Target != models.TargetCell && card.Target != models.TargetOpponent && card.Target != models.TargetOpponentProperty {
				t.Errorf("card %q carries unknown target %q", id, card.Target)
			}
		}
	}
}

func TestCharactersAreWellFormed(t *testing.T) {
	ids := CharacterIDs()
	if len(ids) != 6 {
		t.Fatalf("character catalog holds %d entries, want 6", len(ids))
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate character id %q", id)
		}
		seen[id] = true
		ch, ok := CharacterByID(id)
		if !ok {
			t.Fatalf("CharacterByID(%q) not found", id)
		}
		if ch.Ability.Cooldown <= 0 {
			t.Errorf("character %q has no ability cooldown", id)
		}
		if len(ch.Ability.AllowedPhases) == 0 {
			t.Errorf("character %q allows no activation phase", id)
		}
	}
}
