package holdem

import "fmt"

// NotYourTurnError is returned when a player acts out of turn
type NotYourTurnError struct {
	PlayerID string
}

func (e *NotYourTurnError) Error() string {
	return "not your turn"
}

// InvalidActionError is returned when an action is illegal in the current
// betting context, e.g. checking when a call is owed or betting below the
// minimum
type InvalidActionError struct {
	Reason string
}

func (e *InvalidActionError) Error() string {
	return e.Reason
}

// GameStateError is returned when an operation is attempted in the wrong
// table state, or when the table detects an internal inconsistency that is
// fatal to the hand
type GameStateError struct {
	State  State
	Reason string
}

func (e *GameStateError) Error() string {
	return fmt.Sprintf("%s (state: %s)", e.Reason, e.State)
}

// PlayerStateError is returned when the acting player is folded, all-in,
// not seated, or already seated
type PlayerStateError struct {
	Reason string
}

func (e *PlayerStateError) Error() string {
	return e.Reason
}
