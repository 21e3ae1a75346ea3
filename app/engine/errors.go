package engine

import "errors"

// The full rejection taxonomy. Every rejection leaves the room untouched;
// callers match with errors.Is and report to the offending client only.
var (
	ErrInvalidActor      = errors.New("action from a seat not authorized in the current phase")
	ErrInvalidPhase      = errors.New("action type not legal in the current phase")
	ErrInvalidTarget     = errors.New("target outside the legal candidate set")
	ErrInsufficientFunds = errors.New("not enough cash for a voluntary spend")
	ErrRoomNotPlaying    = errors.New("room is not in an active game")
)
