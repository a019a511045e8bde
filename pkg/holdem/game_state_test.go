package holdem

import (
	"encoding/json"
	"testing"

	"cardroom-server/pkg/deck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_MaskedFor(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a", "b", "c")
	require.NoError(t, table.StartGame())
	require.NoError(t, table.Fold("b"))

	state := table.MaskedFor("a")
	assert.Equal(t, StatePreflop, state.GameState)
	assert.Equal(t, 30, state.Pot)
	assert.Equal(t, 20, state.CurrentBet)
	assert.Equal(t, 10, state.SmallBlind)
	assert.Equal(t, 20, state.BigBlind)
	require.Len(t, state.Players, 3)

	// the viewer sees their own cards
	own := state.Players[0]
	require.Len(t, own.Hand, 2)
	assert.NotEqual(t, maskedCard, own.Hand[0])
	assert.NotEqual(t, maskedCard, own.Hand[1])

	// a folded player's cards are hidden entirely
	assert.Empty(t, state.Players[1].Hand)
	assert.True(t, state.Players[1].IsFolded)

	// everyone else's cards are placeholders
	assert.Equal(t, []string{maskedCard, maskedCard}, state.Players[2].Hand)

	// the action log is visible to everyone
	assert.Len(t, state.PlayerActions, 3) // small blind, big blind, fold
}

func TestTable_MaskedFor_spectator(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a", "b")
	require.NoError(t, table.StartGame())

	state := table.MaskedFor("")
	for _, p := range state.Players {
		assert.Equal(t, []string{maskedCard, maskedCard}, p.Hand)
	}
}

func TestTable_MaskedFor_showdown(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a", "b", "c")
	table.state = StateRiver
	table.pot = 100
	table.community = deck.CardsFromString("2h,7d,9s,Kc,Kd")
	table.players[0].hand = deck.CardsFromString("Ah,Qs")
	table.players[1].hand = deck.CardsFromString("Ad,Qc")
	table.players[2].hand = deck.CardsFromString("3c,4d")
	table.players[2].isFolded = true

	require.NoError(t, table.finishHand())

	state := table.MaskedFor("c")
	assert.Equal(t, StateShowdown, state.GameState)

	// hands are revealed at showdown, except folded players'
	assert.Equal(t, []string{"Ah", "Qs"}, state.Players[0].Hand)
	assert.Equal(t, []string{"Ad", "Qc"}, state.Players[1].Hand)
	assert.Empty(t, state.Players[2].Hand)
	assert.NotEmpty(t, state.Winners)
}

func TestGameState_json(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a", "b")
	require.NoError(t, table.StartGame())

	data, err := json.Marshal(table.MaskedFor("a"))
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &payload))

	assert.Equal(t, "preflop", payload["gameState"])
	assert.Equal(t, float64(30), payload["pot"])
	assert.Contains(t, payload, "communityCards")
	assert.Contains(t, payload, "playerActions")
	assert.Contains(t, payload, "buttonPosition")
	assert.NotContains(t, payload, "winners")
}
