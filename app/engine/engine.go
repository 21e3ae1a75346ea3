package engine

import (
	"github.com/playhall/marble-backend/app/models"
	"github.com/playhall/marble-backend/platform/board"
)

// Engine is the authoritative turn-phase state machine. It owns no
// transport and no I/O: Apply is a synchronous step from (room, action) to
// (room', events) or a rejection that leaves the room untouched. Per-room
// serialization belongs to the orchestrator.
type Engine struct {
	rng Rand
}

func New(rng Rand) *Engine {
	if rng == nil {
		rng = CryptoRand
	}
	return &Engine{rng: rng}
}

// Setup transitions a lobby room into a playing one: seats get their
// starting cash and a unique character, decks are shuffled, and the lowest
// slot opens the first round.
func (e *Engine) Setup(room *models.Room) {
	chars := board.CharacterIDs()
	e.shuffle(chars)
	for i, p := range room.Players {
		p.Position = board.GoIndex
		p.Cash = room.Settings.StartingCash
		p.Properties = nil
		p.Houses = map[int]int{}
		p.Hotels = map[int]bool{}
		p.HeldCards = map[string]int{}
		if room.Settings.AbilitiesEnabled {
			p.Character = chars[i%len(chars)]
		}
	}
	room.DeckA = board.DeckIDs(models.DeckA)
	room.DeckB = board.DeckIDs(models.DeckB)
	e.shuffle(room.DeckA)
	e.shuffle(room.DeckB)
	room.Status = models.RoomPlaying
	room.Round = 1
	room.CurrentPlayerSlot = lowestActiveSlot(room)
	room.TurnPhase = models.PhaseRollDice
	room.WinnerSlot = 0
}

// Apply validates one inbound action against the current phase and, if
// legal, advances the machine, chaining through any phases that need no
// further input. On error the room state is unchanged.
func (e *Engine) Apply(room *models.Room, act models.Action) ([]models.Event, error) {
	if room.Status != models.RoomPlaying {
		return nil, ErrRoomNotPlaying
	}
	p := room.PlayerBySlot(act.Slot)
	if p == nil || p.IsBankrupt {
		return nil, ErrInvalidActor
	}

	// Surrender is the one action any standing seat may take at any time.
	if act.Type == models.ActionSurrender {
		return e.surrender(room, p)
	}
	if act.Slot != room.CurrentPlayerSlot {
		return nil, ErrInvalidActor
	}
	if act.Type == models.ActionActivateAbility {
		return e.activateAbility(room, p, act)
	}

	var evs []models.Event
	switch room.TurnPhase {
	case models.PhaseRollDice:
		if act.Type != models.ActionRollDice {
			return nil, ErrInvalidPhase
		}
		e.rollDice(room, p, &evs)

	case models.PhaseAwaitingAction:
		if err := e.applyPromptAnswer(room, p, act, &evs); err != nil {
			return nil, err
		}

	case models.PhaseAwaitingBuild:
		switch act.Type {
		case models.ActionBuild:
			if err := e.build(room, p, act.Cell, &evs); err != nil {
				return nil, err
			}
		case models.ActionSkipBuy:
			room.Prompt = nil
			e.endTurn(room, &evs)
		default:
			return nil, ErrInvalidPhase
		}

	case models.PhaseAwaitingTravel:
		if act.Type != models.ActionTravel {
			return nil, ErrInvalidPhase
		}
		if !room.Prompt.HasCandidate(act.Cell) {
			return nil, ErrInvalidTarget
		}
		room.Prompt = nil
		steps := (act.Cell - p.Position + board.Size) % board.Size
		evs = append(evs, models.Event{Type: models.EventTraveled, Seat: p.Slot, Cell: act.Cell})
		e.moveAndResolve(room, p, steps, room.LastDice[0]+room.LastDice[1], &evs)
		e.continueTurn(room, &evs)

	case models.PhaseAwaitingFestival:
		if act.Type != models.ActionApplyFestival {
			return nil, ErrInvalidPhase
		}
		if !room.Prompt.HasCandidate(act.Cell) {
			return nil, ErrInvalidTarget
		}
		room.Prompt = nil
		room.Festival = models.Festival{
			Cell:         act.Cell,
			Multiplier:   FestivalMultiplier,
			ExpiresRound: room.Round + FestivalRounds,
		}
		evs = append(evs, models.Event{Type: models.EventFestivalSet, Seat: p.Slot, Cell: act.Cell})
		e.continueTurn(room, &evs)

	case models.PhaseAwaitingCardDest:
		if err := e.applyTargetAnswer(room, p, act, &evs); err != nil {
			return nil, err
		}

	case models.PhaseIslandTurn:
		if act.Type != models.ActionEscapeIsland {
			return nil, ErrInvalidPhase
		}
		if err := e.escapeIsland(room, p, act.Method, &evs); err != nil {
			return nil, err
		}

	default:
		return nil, ErrRoomNotPlaying
	}
	return evs, nil
}

func (e *Engine) rollDice(room *models.Room, p *models.SeatPlayer, evs *[]models.Event) {
	d1, d2 := e.rng.Die(), e.rng.Die()
	room.LastDice = [2]int{d1, d2}
	room.HasRolled = true
	*evs = append(*evs, models.Event{Type: models.EventDiceRolled, Seat: p.Slot, Dice: room.LastDice})
	if d1 == d2 && room.Settings.ExtraTurnOnDouble {
		room.DoubleRoll = true
	}
	e.moveAndResolve(room, p, d1+d2, d1+d2, evs)
	e.continueTurn(room, evs)
}

// moveAndResolve advances the token, pays the GO bonus on a wrap, and
// resolves the landing cell. Used by dice rolls, travel, and move-to-cell
// effects alike so the pass-GO rule cannot diverge between them.
func (e *Engine) moveAndResolve(room *models.Room, p *models.SeatPlayer, steps, diceTotal int, evs *[]models.Event) {
	newPos, passedGo := Advance(p.Position, steps)
	p.Position = newPos
	*evs = append(*evs, models.Event{Type: models.EventMoved, Seat: p.Slot, Cell: newPos})
	if passedGo {
		p.Cash += GoBonus
		*evs = append(*evs, models.Event{Type: models.EventGoBonus, Seat: p.Slot, Amount: GoBonus})
	}
	e.resolveLanding(room, p, diceTotal, evs)
}

func (e *Engine) resolveLanding(room *models.Room, p *models.SeatPlayer, diceTotal int, evs *[]models.Event) {
	cell := board.CellAt(p.Position)
	switch cell.Type {
	case models.CellProperty, models.CellStation, models.CellUtility:
		owner := room.OwnerOf(cell.Index)
		switch {
		case owner == nil:
			room.TurnPhase = models.PhaseAwaitingAction
			room.Prompt = &models.Prompt{Kind: models.PromptBuy, Seat: p.Slot, Cell: cell.Index, Price: cell.Price}
			*evs = append(*evs, models.Event{Type: models.EventBuyPrompt, Seat: p.Slot, Cell: cell.Index, Amount: cell.Price})
		case owner.Slot == p.Slot:
			// Home turf, nothing owed.
		default:
			e.chargeRent(room, p, owner, cell.Index, diceTotal, evs)
		}

	case models.CellTax:
		*evs = append(*evs, models.Event{Type: models.EventTaxPaid, Seat: p.Slot, Cell: cell.Index, Amount: cell.Tax})
		e.charge(room, p, cell.Tax, nil, evs)

	case models.CellGoToIsland:
		p.Position = board.IslandIndex
		p.IslandTurns = IslandArrivalTurns
		// Doubles do not earn an extra turn on the way to the island.
		room.DoubleRoll = false
		*evs = append(*evs, models.Event{Type: models.EventIslandSent, Seat: p.Slot})

	case models.CellTravel:
		cands := e.targetCandidates(room, p, "", models.TargetCell)
		room.TurnPhase = models.PhaseAwaitingTravel
		room.Prompt = &models.Prompt{Kind: models.PromptTravel, Seat: p.Slot, Candidates: cands}

	case models.CellFestival:
		var cands []int
		for _, idx := range p.Properties {
			if board.CellAt(idx).Type == models.CellProperty {
				cands = append(cands, idx)
			}
		}
		if len(cands) == 0 {
			return
		}
		room.TurnPhase = models.PhaseAwaitingFestival
		room.Prompt = &models.Prompt{Kind: models.PromptFestival, Seat: p.Slot, Candidates: cands}

	case models.CellCardA:
		e.drawCard(room, p, models.DeckA, evs)
	case models.CellCardB:
		e.drawCard(room, p, models.DeckB, evs)

	case models.CellGo, models.CellIsland:
		// GO pays through the wrap detection; the island corner is just a
		// visit when reached by movement.
	}
}

// chargeRent auto-deducts rent, consuming the payer's one-shot immunity
// first, then offers the payer a buyback at a premium over the owner's
// invested value when they can afford it.
func (e *Engine) chargeRent(room *models.Room, p, owner *models.SeatPlayer, cellIndex, diceTotal int, evs *[]models.Event) {
	if p.ImmunityNextRent {
		p.ImmunityNextRent = false
		*evs = append(*evs, models.Event{Type: models.EventRentImmune, Seat: p.Slot, Cell: cellIndex})
		return
	}
	rent := Rent(room, cellIndex, diceTotal)
	if rent == 0 {
		return
	}
	*evs = append(*evs, models.Event{Type: models.EventRentAlert, Seat: p.Slot, Target: owner.Slot, Cell: cellIndex, Amount: rent})
	e.charge(room, p, rent, owner, evs)
	if p.IsBankrupt || room.TurnPhase == models.PhaseGameOver {
		return
	}
	premium := BuybackFactor * InvestedValue(owner, cellIndex)
	if p.Cash >= premium {
		room.TurnPhase = models.PhaseAwaitingAction
		room.Prompt = &models.Prompt{Kind: models.PromptBuyback, Seat: p.Slot, Cell: cellIndex, Price: premium}
		*evs = append(*evs, models.Event{Type: models.EventBuybackOffer, Seat: p.Slot, Cell: cellIndex, Amount: premium})
	}
}

// applyPromptAnswer handles AWAITING_ACTION, which always carries either a
// buy prompt or a buyback prompt.
func (e *Engine) applyPromptAnswer(room *models.Room, p *models.SeatPlayer, act models.Action, evs *[]models.Event) error {
	prompt := room.Prompt
	switch prompt.Kind {
	case models.PromptBuy:
		switch act.Type {
		case models.ActionBuyProperty:
			if p.Cash < prompt.Price {
				return ErrInsufficientFunds
			}
			p.Cash -= prompt.Price
			p.Properties = append(p.Properties, prompt.Cell)
			room.Prompt = nil
			*evs = append(*evs, models.Event{Type: models.EventBought, Seat: p.Slot, Cell: prompt.Cell, Amount: prompt.Price})
		case models.ActionSkipBuy:
			room.Prompt = nil
		default:
			return ErrInvalidPhase
		}
	case models.PromptBuyback:
		if act.Type != models.ActionRespondBuyback {
			return ErrInvalidPhase
		}
		room.Prompt = nil
		if act.Accept {
			e.buyback(room, p, prompt.Cell, prompt.Price, evs)
		}
	default:
		return ErrInvalidPhase
	}
	e.continueTurn(room, evs)
	return nil
}

// buyback transfers the cell with its buildings to the payer at the quoted
// premium. Affordability was checked when the offer was made and no action
// can interleave, so the spend cannot fail here.
func (e *Engine) buyback(room *models.Room, p *models.SeatPlayer, cellIndex, premium int, evs *[]models.Event) {
	owner := room.OwnerOf(cellIndex)
	if owner == nil {
		return
	}
	p.Cash -= premium
	owner.Cash += premium
	houses := owner.HouseCount(cellIndex)
	hotel := owner.HasHotel(cellIndex)
	releaseCell(owner, cellIndex)
	p.Properties = append(p.Properties, cellIndex)
	if houses > 0 {
		if p.Houses == nil {
			p.Houses = map[int]int{}
		}
		p.Houses[cellIndex] = houses
	}
	if hotel {
		if p.Hotels == nil {
			p.Hotels = map[int]bool{}
		}
		p.Hotels[cellIndex] = true
	}
	*evs = append(*evs, models.Event{Type: models.EventBuyback, Seat: p.Slot, Target: owner.Slot, Cell: cellIndex, Amount: premium})
}

// applyTargetAnswer resolves AWAITING_CARD_DESTINATION for both card draws
// and abilities; an empty CardID on the prompt marks an ability origin.
func (e *Engine) applyTargetAnswer(room *models.Room, p *models.SeatPlayer, act models.Action, evs *[]models.Event) error {
	prompt := room.Prompt
	var chosen int
	switch prompt.Kind {
	case models.PromptDestination:
		if act.Type != models.ActionChooseCardDest {
			return ErrInvalidPhase
		}
		chosen = act.Cell
	case models.PromptAttackTarget:
		if act.Type != models.ActionChooseAttack {
			return ErrInvalidPhase
		}
		chosen = act.Target
	default:
		return ErrInvalidPhase
	}
	if !prompt.HasCandidate(chosen) {
		return ErrInvalidTarget
	}

	value := 0
	if prompt.CardID != "" {
		if card, ok := board.CardByID(prompt.CardID); ok {
			value = card.Value
		}
	} else if ch, ok := board.CharacterByID(p.Character); ok {
		value = ch.Ability.Value
	}
	room.Prompt = nil
	e.applyTargetedEffect(room, p, prompt.Effect, value, chosen, evs)
	e.continueTurn(room, evs)
	return nil
}

func (e *Engine) build(room *models.Room, p *models.SeatPlayer, cellIndex int, evs *[]models.Event) error {
	if !room.Prompt.HasCandidate(cellIndex) {
		return ErrInvalidTarget
	}
	cell := board.CellAt(cellIndex)
	cost := cell.HouseCost
	toHotel := p.HouseCount(cellIndex) == 4
	if toHotel {
		cost = cell.HotelCost
	}
	if p.Cash < cost {
		return ErrInsufficientFunds
	}
	p.Cash -= cost
	if toHotel {
		// The fifth increment converts to a hotel, consuming the house slots.
		p.Houses[cellIndex] = 0
		if p.Hotels == nil {
			p.Hotels = map[int]bool{}
		}
		p.Hotels[cellIndex] = true
	} else {
		if p.Houses == nil {
			p.Houses = map[int]int{}
		}
		p.Houses[cellIndex]++
	}
	*evs = append(*evs, models.Event{Type: models.EventBuilt, Seat: p.Slot, Cell: cellIndex, Amount: cost})
	room.Prompt = nil
	e.endTurn(room, evs)
	return nil
}

// buildCandidates lists the owned property cells where the seat can afford
// the next increment. Building is gated on holding the full color group.
func buildCandidates(room *models.Room, p *models.SeatPlayer) []int {
	var out []int
	for _, idx := range p.Properties {
		cell := board.CellAt(idx)
		if cell.Type != models.CellProperty || p.HasHotel(idx) {
			continue
		}
		if !OwnsFullGroup(room, p, cell.Group) {
			continue
		}
		cost := cell.HouseCost
		if p.HouseCount(idx) == 4 {
			cost = cell.HotelCost
		}
		if p.Cash >= cost {
			out = append(out, idx)
		}
	}
	return out
}

func (e *Engine) escapeIsland(room *models.Room, p *models.SeatPlayer, method models.EscapeMethod, evs *[]models.Event) error {
	switch method {
	case models.EscapePay:
		if p.Cash < IslandEscapeFee {
			return ErrInsufficientFunds
		}
		p.Cash -= IslandEscapeFee
	case models.EscapeUseCard:
		if p.HeldCards[models.EscapeCardToken] == 0 {
			return ErrInvalidTarget
		}
		p.HeldCards[models.EscapeCardToken]--
	case models.EscapeRoll:
		d1, d2 := e.rng.Die(), e.rng.Die()
		room.LastDice = [2]int{d1, d2}
		*evs = append(*evs, models.Event{Type: models.EventDiceRolled, Seat: p.Slot, Dice: room.LastDice})
		if d1 != d2 {
			p.IslandTurns--
			*evs = append(*evs, models.Event{Type: models.EventIslandStuck, Seat: p.Slot})
			room.Prompt = nil
			e.endTurn(room, evs)
			return nil
		}
		// Doubles break out and move immediately; no extra turn follows.
		p.IslandTurns = 0
		room.Prompt = nil
		room.HasRolled = true
		*evs = append(*evs, models.Event{Type: models.EventIslandEscape, Seat: p.Slot})
		e.moveAndResolve(room, p, d1+d2, d1+d2, evs)
		e.continueTurn(room, evs)
		return nil
	default:
		return ErrInvalidPhase
	}
	p.IslandTurns = 0
	room.Prompt = nil
	room.TurnPhase = models.PhaseRollDice
	*evs = append(*evs, models.Event{Type: models.EventIslandEscape, Seat: p.Slot})
	return nil
}

func (e *Engine) activateAbility(room *models.Room, p *models.SeatPlayer, act models.Action) ([]models.Event, error) {
	if !room.Settings.AbilitiesEnabled {
		return nil, ErrInvalidPhase
	}
	ch, ok := board.CharacterByID(p.Character)
	if !ok {
		return nil, ErrInvalidActor
	}
	// The island-escape prompt is advisory and does not block an ability.
	if room.Prompt != nil && room.Prompt.Kind != models.PromptIslandEscape {
		return nil, ErrInvalidPhase
	}
	if !ch.Ability.AllowedIn(room.TurnPhase) {
		return nil, ErrInvalidPhase
	}
	if p.AbilityCooldown > 0 || p.AbilityUsedThisTurn {
		return nil, ErrInvalidPhase
	}

	var evs []models.Event
	ab := ch.Ability
	if ab.Target == models.TargetNone || ab.Target == models.TargetSelf {
		p.AbilityUsedThisTurn = true
		p.AbilityCooldown = ab.Cooldown
		evs = append(evs, models.Event{Type: models.EventAbilityUsed, Seat: p.Slot, Effect: ab.Effect})
		e.applyEffect(room, p, ab.Effect, ab.Value, 0, &evs)
		return evs, nil
	}

	cands := e.targetCandidates(room, p, ab.Effect, ab.Target)
	if len(cands) == 0 {
		return nil, ErrInvalidTarget
	}
	p.AbilityUsedThisTurn = true
	p.AbilityCooldown = ab.Cooldown
	evs = append(evs, models.Event{Type: models.EventAbilityUsed, Seat: p.Slot, Effect: ab.Effect})
	kind := models.PromptAttackTarget
	if ab.Target == models.TargetCell {
		kind = models.PromptDestination
	}
	room.TurnPhase = models.PhaseAwaitingCardDest
	room.Prompt = &models.Prompt{Kind: kind, Seat: p.Slot, Effect: ab.Effect, Candidates: cands}
	return evs, nil
}

func (e *Engine) surrender(room *models.Room, p *models.SeatPlayer) ([]models.Event, error) {
	var evs []models.Event
	evs = append(evs, models.Event{Type: models.EventSurrendered, Seat: p.Slot})
	wasCurrent := p.Slot == room.CurrentPlayerSlot
	e.bankrupt(room, p, &evs)
	if room.TurnPhase != models.PhaseGameOver && wasCurrent {
		room.Prompt = nil
		e.endTurn(room, &evs)
	}
	return evs, nil
}

// continueTurn runs after any resolution step. A seat that has not rolled
// yet (a pre-roll ability moved it) gets its dice back; otherwise, if
// nothing is pending, the optional build sub-phase is offered and the turn
// closes.
func (e *Engine) continueTurn(room *models.Room, evs *[]models.Event) {
	if room.TurnPhase == models.PhaseGameOver || room.Prompt != nil {
		return
	}
	p := room.PlayerBySlot(room.CurrentPlayerSlot)
	if p == nil || p.IsBankrupt {
		e.endTurn(room, evs)
		return
	}
	if !room.HasRolled {
		if p.IslandTurns > 0 {
			room.TurnPhase = models.PhaseIslandTurn
			room.Prompt = &models.Prompt{Kind: models.PromptIslandEscape, Seat: p.Slot}
		} else {
			room.TurnPhase = models.PhaseRollDice
		}
		return
	}
	if p.IslandTurns == 0 {
		if cands := buildCandidates(room, p); len(cands) > 0 {
			room.TurnPhase = models.PhaseAwaitingBuild
			room.Prompt = &models.Prompt{Kind: models.PromptBuild, Seat: p.Slot, Candidates: cands}
			return
		}
	}
	e.endTurn(room, evs)
}

// endTurn ticks the finishing seat's per-turn counters and hands the dice
// on, honoring a pending double-roll extra turn.
func (e *Engine) endTurn(room *models.Room, evs *[]models.Event) {
	p := room.PlayerBySlot(room.CurrentPlayerSlot)
	if p != nil {
		p.AbilityUsedThisTurn = false
		if p.AbilityCooldown > 0 {
			p.AbilityCooldown--
		}
		if p.DoubleRentTurns > 0 {
			p.DoubleRentTurns--
		}
		if p.ShieldTurns > 0 {
			p.ShieldTurns--
		}
	}
	room.Prompt = nil
	room.HasRolled = false

	if room.DoubleRoll && p != nil && !p.IsBankrupt && p.IslandTurns == 0 {
		room.DoubleRoll = false
		room.TurnPhase = models.PhaseRollDice
		*evs = append(*evs, models.Event{Type: models.EventTurnChanged, Seat: p.Slot, Detail: "extra turn"})
		return
	}
	room.DoubleRoll = false
	e.rotate(room, evs)
}

func (e *Engine) rotate(room *models.Room, evs *[]models.Event) {
	low := lowestActiveSlot(room)
	// Twice around the table bounds the walk even when every seat holds a
	// skip flag; each pass consumes one.
	for i := 0; i < 2*len(room.Players); i++ {
		next := NextActiveSeat(room.Players, room.CurrentPlayerSlot)
		room.CurrentPlayerSlot = next
		if next == low {
			room.Round++
			*evs = append(*evs, models.Event{Type: models.EventRoundStarted, Amount: room.Round})
			pruneExpired(room)
			e.evaluateRoundLimit(room, evs)
			if room.TurnPhase == models.PhaseGameOver {
				return
			}
		}
		np := room.PlayerBySlot(next)
		if np.SkipNextTurn {
			np.SkipNextTurn = false
			*evs = append(*evs, models.Event{Type: models.EventTurnChanged, Seat: next, Detail: "turn skipped"})
			continue
		}
		if np.IslandTurns > 0 {
			room.TurnPhase = models.PhaseIslandTurn
			room.Prompt = &models.Prompt{Kind: models.PromptIslandEscape, Seat: next}
		} else {
			room.TurnPhase = models.PhaseRollDice
		}
		*evs = append(*evs, models.Event{Type: models.EventTurnChanged, Seat: next})
		return
	}
}

// pruneExpired drops frozen-property entries and the festival once their
// expiry round arrives; rent checks compare against Round anyway, so this
// only keeps the snapshot tidy.
func pruneExpired(room *models.Room) {
	kept := room.Frozen[:0]
	for _, f := range room.Frozen {
		if room.Round < f.ExpiresRound {
			kept = append(kept, f)
		}
	}
	room.Frozen = kept
	if room.Festival.Multiplier > 0 && room.Round >= room.Festival.ExpiresRound {
		room.Festival = models.Festival{}
	}
}

// Snapshot builds the authoritative client view. Deck contents stay
// server-side; only counts go out.
func Snapshot(room *models.Room) models.RoomSnapshot {
	return models.RoomSnapshot{
		ID:                room.ID,
		Code:              room.Code,
		Status:            room.Status,
		Settings:          room.Settings,
		Players:           room.Players,
		CurrentPlayerSlot: room.CurrentPlayerSlot,
		Round:             room.Round,
		TurnPhase:         room.TurnPhase,
		Prompt:            room.Prompt,
		LastDice:          room.LastDice,
		Festival:          room.Festival,
		Frozen:            room.Frozen,
		DeckACount:        len(room.DeckA),
		DeckBCount:        len(room.DeckB),
		WinnerSlot:        room.WinnerSlot,
	}
}
