package gameserver

import "errors"

// errors sent back to the offending connection as error events
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrGameNotFound     = errors.New("game not found")
	ErrNotInGame        = errors.New("not in a game")
	ErrAlreadyInGame    = errors.New("already in a game")
	ErrGameInProgress   = errors.New("game is not accepting new players")
	ErrUnknownMessage   = errors.New("unknown message type")
	ErrUnknownAction    = errors.New("unknown game action")
)
