package rooms

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/playhall/marble-backend/app/engine"
	"github.com/playhall/marble-backend/app/models"
	"github.com/sirupsen/logrus"
)

// Broadcaster pushes an event to every client in a room. The socket layer
// implements it; tests use a recording stub.
type Broadcaster interface {
	Broadcast(gameID, event string, payload string)
}

// Session serializes all activity against one live room: every action, and
// the turn timer's synthesized defaults, funnel through Dispatch under one
// mutex. The engine below stays single-writer per room.
type Session struct {
	mu    sync.Mutex
	room  *models.Room
	eng   *engine.Engine
	seats map[string]int
	timer *time.Timer
	reg   *Registry
}

func (s *Session) SlotOf(userID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.seats[userID]
	return slot, ok
}

// SetConnected flips the advisory presence flag. It gates nothing in the
// rules; a disconnected seat still owes rent and still holds its place in
// rotation.
func (s *Session) SetConnected(userID string, connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot, ok := s.seats[userID]; ok {
		if p := s.room.PlayerBySlot(slot); p != nil {
			p.IsConnected = connected
		}
	}
}

// Dispatch stamps the acting seat onto the action, applies it, and on
// success broadcasts the resulting notices plus the authoritative
// snapshot. Rejections go back to the caller only.
func (s *Session) Dispatch(userID string, act models.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.seats[userID]
	if !ok {
		return engine.ErrInvalidActor
	}
	act.Slot = slot
	return s.apply(act)
}

// apply runs one action with the session lock held.
func (s *Session) apply(act models.Action) error {
	evs, err := s.eng.Apply(s.room, act)
	if err != nil {
		return err
	}
	s.afterApply(evs)
	return nil
}

func (s *Session) afterApply(evs []models.Event) {
	snap := engine.Snapshot(s.room)
	for _, ev := range evs {
		if raw, err := json.Marshal(ev); err == nil {
			s.reg.broadcast(s.room.ID, string(ev.Type), string(raw))
		}
	}
	if raw, err := json.Marshal(snap); err == nil {
		s.reg.broadcast(s.room.ID, "room-snapshot", string(raw))
	}
	s.reg.mirror(s.room.ID, snap)

	if s.room.TurnPhase == models.PhaseGameOver {
		s.stopTimer()
		s.reg.finalize(s)
		return
	}
	s.armTimer()
}

// armTimer resets the turn clock. On expiry the session feeds the phase's
// default action through the same pipeline, so the engine cannot tell a
// timeout from a voluntary move.
func (s *Session) armTimer() {
	s.stopTimer()
	d := time.Duration(s.room.Settings.TurnDurationSeconds) * time.Second
	if d <= 0 {
		return
	}
	s.timer = time.AfterFunc(d, s.onTimeout)
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) onTimeout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.room.TurnPhase == models.PhaseGameOver {
		return
	}
	act := DefaultAction(s.room)
	if err := s.apply(act); err != nil {
		logrus.WithFields(logrus.Fields{
			"game": s.room.ID, "seat": act.Slot, "action": act.Type,
		}).WithError(err).Warn("turn-timeout default action rejected")
		s.armTimer()
	}
}

// DefaultAction synthesizes what the current seat is assumed to do when
// the turn clock runs out: roll, decline offers, take the first legal
// target, or try a free escape roll.
func DefaultAction(room *models.Room) models.Action {
	slot := room.CurrentPlayerSlot
	first := 0
	if room.Prompt != nil && len(room.Prompt.Candidates) > 0 {
		first = room.Prompt.Candidates[0]
	}
	switch room.TurnPhase {
	case models.PhaseRollDice:
		return models.Action{Slot: slot, Type: models.ActionRollDice}
	case models.PhaseAwaitingAction:
		if room.Prompt != nil && room.Prompt.Kind == models.PromptBuyback {
			return models.Action{Slot: slot, Type: models.ActionRespondBuyback, Accept: false}
		}
		return models.Action{Slot: slot, Type: models.ActionSkipBuy}
	case models.PhaseAwaitingBuild:
		return models.Action{Slot: slot, Type: models.ActionSkipBuy}
	case models.PhaseAwaitingTravel:
		return models.Action{Slot: slot, Type: models.ActionTravel, Cell: first}
	case models.PhaseAwaitingFestival:
		return models.Action{Slot: slot, Type: models.ActionApplyFestival, Cell: first}
	case models.PhaseAwaitingCardDest:
		if room.Prompt != nil && room.Prompt.Kind == models.PromptAttackTarget {
			return models.Action{Slot: slot, Type: models.ActionChooseAttack, Target: first}
		}
		return models.Action{Slot: slot, Type: models.ActionChooseCardDest, Cell: first}
	case models.PhaseIslandTurn:
		return models.Action{Slot: slot, Type: models.ActionEscapeIsland, Method: models.EscapeRoll}
	}
	return models.Action{Slot: slot, Type: models.ActionRollDice}
}
