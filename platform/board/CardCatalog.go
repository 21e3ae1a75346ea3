package board

import "github.com/playhall/marble-backend/app/models"

// Deck A leans toward attacks and movement, deck B toward economy. Every
// entry resolves through the engine's effect resolver; Value is a cash
// amount for cash effects, a turn count for buffs, and a round count for
// freezes.
var cardCatalog = []models.Card{
	// ---- Deck A ("Chance") ----
	{ID: "a-01", Deck: models.DeckA, Label: "Red-eye flight", Effect: models.EffectMoveToCell, Target: models.TargetCell},
	{ID: "a-02", Deck: models.DeckA, Label: "Charter trip", Effect: models.EffectMoveToCell, Target: models.TargetCell},
	{ID: "a-03", Deck: models.DeckA, Label: "Earthquake", Effect: models.EffectDestroyProperty, Target: models.TargetOpponentProperty},
	{ID: "a-04", Deck: models.DeckA, Label: "Demolition order", Effect: models.EffectDestroyProperty, Target: models.TargetOpponentProperty},
	{ID: "a-05", Deck: models.DeckA, Label: "Building inspection", Effect: models.EffectDowngradeProperty, Target: models.TargetOpponentProperty},
	{ID: "a-06", Deck: models.DeckA, Label: "Zoning dispute", Effect: models.EffectDowngradeProperty, Target: models.TargetOpponentProperty},
	{ID: "a-07", Deck: models.DeckA, Label: "Blackout", Effect: models.EffectFreezeProperty, Target: models.TargetOpponentProperty, Value: 2},
	{ID: "a-08", Deck: models.DeckA, Label: "Strike", Effect: models.EffectFreezeProperty, Target: models.TargetOpponentProperty, Value: 2},
	{ID: "a-09", Deck: models.DeckA, Label: "Red tape", Effect: models.EffectSkipOpponentTurn, Target: models.TargetOpponent},
	{ID: "a-10", Deck: models.DeckA, Label: "Hostile takeover", Effect: models.EffectForceTrade, Target: models.TargetOpponentProperty},
	{ID: "a-11", Deck: models.DeckA, Label: "Speeding fine", Effect: models.EffectPayCash, Target: models.TargetSelf, Value: 1500},
	{ID: "a-12", Deck: models.DeckA, Label: "Tourist season", Effect: models.EffectGrantDoubleRent, Target: models.TargetSelf, Value: 2},

	// ---- Deck B ("Fortune") ----
	{ID: "b-01", Deck: models.DeckB, Label: "Dividend payout", Effect: models.EffectGrantCash, Target: models.TargetSelf, Value: 1000},
	{ID: "b-02", Deck: models.DeckB, Label: "Tax refund", Effect: models.EffectGrantCash, Target: models.TargetSelf, Value: 1500},
	{ID: "b-03", Deck: models.DeckB, Label: "Lottery win", Effect: models.EffectGrantCash, Target: models.TargetSelf, Value: 2500},
	{ID: "b-04", Deck: models.DeckB, Label: "Hospital bill", Effect: models.EffectPayCash, Target: models.TargetSelf, Value: 800},
	{ID: "b-05", Deck: models.DeckB, Label: "Repair assessment", Effect: models.EffectPayCash, Target: models.TargetSelf, Value: 1200},
	{ID: "b-06", Deck: models.DeckB, Label: "Ferry ticket", Effect: models.EffectGrantEscapeCard, Target: models.TargetSelf},
	{ID: "b-07", Deck: models.DeckB, Label: "Stowaway map", Effect: models.EffectGrantEscapeCard, Target: models.TargetSelf},
	{ID: "b-08", Deck: models.DeckB, Label: "Rent holiday", Effect: models.EffectGrantImmunity, Target: models.TargetSelf},
	{ID: "b-09", Deck: models.DeckB, Label: "Legal shield", Effect: models.EffectGrantImmunity, Target: models.TargetSelf},
	{ID: "b-10", Deck: models.DeckB, Label: "Festival contract", Effect: models.EffectGrantDoubleRent, Target: models.TargetSelf, Value: 2},
	{ID: "b-11", Deck: models.DeckB, Label: "Business trip", Effect: models.EffectMoveToCell, Target: models.TargetCell},
	{ID: "b-12", Deck: models.DeckB, Label: "Pipe burst", Effect: models.EffectFreezeProperty, Target: models.TargetOpponentProperty, Value: 2},
}

// CardByID looks up a catalog entry; ok is false for unknown ids.
func CardByID(id string) (models.Card, bool) {
	for _, c := range cardCatalog {
		if c.ID == id {
			return c, true
		}
	}
	return models.Card{}, false
}

// DeckIDs returns the catalog ids belonging to one deck, in catalog order.
// Shuffling is the engine's job.
func DeckIDs(deck models.DeckID) []string {
	var out []string
	for _, c := range cardCatalog {
		if c.Deck == deck {
			out = append(out, c.ID)
		}
	}
	return out
}

// AllCards returns the whole catalog.
func AllCards() []models.Card {
	out := make([]models.Card, len(cardCatalog))
	copy(out, cardCatalog)
	return out
}
