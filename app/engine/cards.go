package engine

import (
	"github.com/playhall/marble-backend/app/models"
	"github.com/playhall/marble-backend/platform/board"
)

// draw pops the top card of a deck, reshuffling the discard pile back in
// when the deck runs dry. The drawn id goes straight to the discard; held
// tokens are tracked on the player, not the card.
func (e *Engine) draw(room *models.Room, deck models.DeckID) models.Card {
	pile, discard := &room.DeckA, &room.DiscardA
	if deck == models.DeckB {
		pile, discard = &room.DeckB, &room.DiscardB
	}
	if len(*pile) == 0 {
		*pile = append(*pile, *discard...)
		*discard = nil
		if len(*pile) == 0 {
			*pile = board.DeckIDs(deck)
		}
		e.shuffle(*pile)
	}
	id := (*pile)[0]
	*pile = (*pile)[1:]
	*discard = append(*discard, id)
	card, _ := board.CardByID(id)
	return card
}

// drawCard resolves a card-cell landing: draw, report, then apply the
// effect. Effects that need a target open the destination/attack prompt;
// an empty candidate set makes the card fizzle instead of blocking.
func (e *Engine) drawCard(room *models.Room, p *models.SeatPlayer, deck models.DeckID, evs *[]models.Event) {
	card := e.draw(room, deck)
	*evs = append(*evs, models.Event{Type: models.EventCardDrawn, Seat: p.Slot, CardID: card.ID, Effect: card.Effect})

	if card.Target == models.TargetNone || card.Target == models.TargetSelf {
		e.applyEffect(room, p, card.Effect, card.Value, 0, evs)
		return
	}
	cands := e.targetCandidates(room, p, card.Effect, card.Target)
	if len(cands) == 0 {
		*evs = append(*evs, models.Event{Type: models.EventCardFizzled, Seat: p.Slot, CardID: card.ID})
		return
	}
	kind := models.PromptAttackTarget
	if card.Target == models.TargetCell {
		kind = models.PromptDestination
	}
	room.TurnPhase = models.PhaseAwaitingCardDest
	room.Prompt = &models.Prompt{
		Kind:       kind,
		Seat:       p.Slot,
		CardID:     card.ID,
		Effect:     card.Effect,
		Candidates: cands,
	}
}

// targetCandidates builds the only legal answers for a targeted effect.
// Cell-destination effects may pick any cell but the current one; attack
// effects pick opponent seats or opponent-owned cells, narrowed per effect.
func (e *Engine) targetCandidates(room *models.Room, actor *models.SeatPlayer, effect models.CardEffect, target models.TargetType) []int {
	var out []int
	switch target {
	case models.TargetCell:
		for i := 0; i < board.Size; i++ {
			if i != actor.Position {
				out = append(out, i)
			}
		}
	case models.TargetOpponent:
		for _, q := range room.Players {
			if q.Slot != actor.Slot && !q.IsBankrupt {
				out = append(out, q.Slot)
			}
		}
	case models.TargetOpponentProperty:
		for _, q := range room.Players {
			if q.Slot == actor.Slot || q.IsBankrupt {
				continue
			}
			for _, idx := range q.Properties {
				if effect == models.EffectForceTrade {
					// Trades take unimproved cells only, at list price.
					if q.HouseCount(idx) > 0 || q.HasHotel(idx) {
						continue
					}
					if board.CellAt(idx).Price > actor.Cash {
						continue
					}
				}
				out = append(out, idx)
			}
		}
	}
	return out
}

// applyEffect applies an untargeted (self) effect immediately.
func (e *Engine) applyEffect(room *models.Room, p *models.SeatPlayer, effect models.CardEffect, value, diceTotal int, evs *[]models.Event) {
	switch effect {
	case models.EffectGrantCash:
		p.Cash += value
	case models.EffectPayCash:
		e.charge(room, p, value, nil, evs)
	case models.EffectGrantEscapeCard:
		if p.HeldCards == nil {
			p.HeldCards = map[string]int{}
		}
		p.HeldCards[models.EscapeCardToken]++
	case models.EffectGrantImmunity:
		p.ImmunityNextRent = true
	case models.EffectGrantDoubleRent:
		p.DoubleRentTurns += value
	case models.EffectGrantShield:
		p.ShieldTurns = value
	}
}

// applyTargetedEffect resolves a prompt answer against the chosen cell or
// seat. Shield on the defender cancels destroy/downgrade outright; the
// check happens before any mutation and the result is still reported.
func (e *Engine) applyTargetedEffect(room *models.Room, actor *models.SeatPlayer, effect models.CardEffect, value, chosen int, evs *[]models.Event) {
	switch effect {
	case models.EffectMoveToCell:
		steps := (chosen - actor.Position + board.Size) % board.Size
		e.moveAndResolve(room, actor, steps, room.LastDice[0]+room.LastDice[1], evs)

	case models.EffectSkipOpponentTurn:
		target := room.PlayerBySlot(chosen)
		target.SkipNextTurn = true
		*evs = append(*evs, models.Event{Type: models.EventAttackResult, Seat: actor.Slot, Target: chosen, Effect: effect})

	case models.EffectFreezeProperty:
		room.Frozen = append(room.Frozen, models.FrozenProperty{Cell: chosen, ExpiresRound: room.Round + value})
		*evs = append(*evs, models.Event{Type: models.EventAttackResult, Seat: actor.Slot, Cell: chosen, Effect: effect})

	case models.EffectDestroyProperty, models.EffectDowngradeProperty:
		owner := room.OwnerOf(chosen)
		if owner == nil {
			return
		}
		if owner.ShieldTurns > 0 {
			*evs = append(*evs, models.Event{Type: models.EventAttackResult, Seat: actor.Slot, Target: owner.Slot, Cell: chosen, Effect: effect, Shielded: true})
			return
		}
		if effect == models.EffectDestroyProperty {
			releaseCell(owner, chosen)
		} else {
			downgrade(owner, chosen)
		}
		*evs = append(*evs, models.Event{Type: models.EventAttackResult, Seat: actor.Slot, Target: owner.Slot, Cell: chosen, Effect: effect})

	case models.EffectForceTrade:
		owner := room.OwnerOf(chosen)
		if owner == nil {
			return
		}
		price := board.CellAt(chosen).Price
		actor.Cash -= price
		owner.Cash += price
		releaseCell(owner, chosen)
		actor.Properties = append(actor.Properties, chosen)
		*evs = append(*evs, models.Event{Type: models.EventAttackResult, Seat: actor.Slot, Target: owner.Slot, Cell: chosen, Amount: price, Effect: effect})
	}
}

// downgrade removes one improvement tier: a hotel reverts to four houses,
// a house comes off, and bare land is destroyed entirely.
func downgrade(owner *models.SeatPlayer, idx int) {
	switch {
	case owner.HasHotel(idx):
		owner.Hotels[idx] = false
		if owner.Houses == nil {
			owner.Houses = map[int]int{}
		}
		owner.Houses[idx] = 4
	case owner.HouseCount(idx) > 0:
		owner.Houses[idx]--
	default:
		releaseCell(owner, idx)
	}
}
