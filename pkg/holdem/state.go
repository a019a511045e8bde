package holdem

import (
	"encoding/json"
	"fmt"
)

// State is the table's position in the hand lifecycle
type State int

// constants for State
const (
	StateWaiting State = iota
	StatePreflop
	StateFlop
	StateTurn
	StateRiver
	StateShowdown
)

// String returns the wire name of the state
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePreflop:
		return "preflop"
	case StateFlop:
		return "flop"
	case StateTurn:
		return "turn"
	case StateRiver:
		return "river"
	case StateShowdown:
		return "showdown"
	default:
		panic(fmt.Sprintf("unknown state: %d", s))
	}
}

// MarshalJSON encodes JSON
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// inBettingRound returns true if the state has an open betting round
func (s State) inBettingRound() bool {
	return s >= StatePreflop && s <= StateRiver
}
