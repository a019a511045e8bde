package store

import (
	"context"
	"time"
)

// UserStore resolves per-user persisted data the game server needs.
// Authentication and account management live elsewhere; the server only
// asks how many chips a player sits down with.
type UserStore interface {
	// StartingChips returns the stack the player buys in with
	StartingChips(ctx context.Context, playerID string) (int, error)
}

// HandWinner is one winner's share of a settled pot
type HandWinner struct {
	PlayerID string
	Amount   int
}

// HandRecord is the persisted outcome of one completed hand
type HandRecord struct {
	GameID     string
	Winners    []HandWinner
	FinishedAt time.Time
}

// GameStore records completed hands
type GameStore interface {
	RecordHand(ctx context.Context, record *HandRecord) error
}
