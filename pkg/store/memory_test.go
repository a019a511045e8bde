package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_StartingChips(t *testing.T) {
	m := NewMemory(1000)

	chips, err := m.StartingChips(context.Background(), "unknown")
	assert.NoError(t, err)
	assert.Equal(t, 1000, chips)

	m.SetChips("whale", 50000)
	chips, err = m.StartingChips(context.Background(), "whale")
	assert.NoError(t, err)
	assert.Equal(t, 50000, chips)
}

func TestMemory_RecordHand(t *testing.T) {
	m := NewMemory(1000)
	assert.Empty(t, m.Hands())

	record := &HandRecord{
		GameID:     "game-1",
		Winners:    []HandWinner{{PlayerID: "a", Amount: 100}},
		FinishedAt: time.Now(),
	}
	require.NoError(t, m.RecordHand(context.Background(), record))

	hands := m.Hands()
	require.Len(t, hands, 1)
	assert.Equal(t, "game-1", hands[0].GameID)
	assert.Equal(t, 100, hands[0].Winners[0].Amount)
}
