package holdem

import (
	"testing"

	"cardroom-server/pkg/deck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, opts Options, names ...string) *Table {
	t.Helper()

	table, err := NewTable(opts)
	require.NoError(t, err)

	for _, name := range names {
		require.NoError(t, table.AddPlayer(name, name, opts.StartingChips))
	}

	return table
}

// sumChips is total chips across stacks and the pot, for conservation checks
func sumChips(table *Table) int {
	total := table.pot
	for _, p := range table.players {
		total += p.Chips
	}

	return total
}

func TestNewTable(t *testing.T) {
	table, err := NewTable(DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, StateWaiting, table.State())

	_, err = NewTable(Options{SmallBlind: 0, BigBlind: 20})
	assert.EqualError(t, err, "small blind must be > 0")

	_, err = NewTable(Options{SmallBlind: 30, BigBlind: 20})
	assert.EqualError(t, err, "big blind must be >= small blind")

	_, err = NewTable(Options{SmallBlind: 10, BigBlind: 20, Ante: -1})
	assert.EqualError(t, err, "ante must be >= 0")
}

func TestTable_AddPlayer(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a", "b")

	assert.EqualError(t, table.AddPlayer("a", "a", 1000), "player is already seated")
	assert.True(t, table.HasPlayer("a"))
	assert.False(t, table.HasPlayer("z"))

	for i := 0; i < MaxPlayers-2; i++ {
		assert.NoError(t, table.AddPlayer(string(rune('c'+i)), "x", 1000))
	}
	assert.EqualError(t, table.AddPlayer("overflow", "x", 1000), "table is full (state: waiting)")

	require.NoError(t, table.StartGame())
	assert.EqualError(t, table.AddPlayer("late", "late", 1000), "cannot join a hand in progress (state: preflop)")
}

func TestTable_RemovePlayer(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a", "b", "c")

	assert.True(t, table.RemovePlayer("b"))
	assert.False(t, table.RemovePlayer("b"))
	assert.Equal(t, 2, table.PlayerCount())
}

func TestTable_StartGame_requiresTwoPlayers(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a")

	err := table.StartGame()
	var gsErr *GameStateError
	require.ErrorAs(t, err, &gsErr)
	assert.EqualError(t, err, "not enough players to start the game (state: waiting)")
}

// Heads-up hand: the button posts the big blind, the other seat posts the
// small blind and acts first. A call and a check complete the round and
// deal the flop with the action reopened.
func TestTable_StartGame_headsUp(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a", "b")

	require.NoError(t, table.StartGame())
	assert.Equal(t, StatePreflop, table.State())
	assert.Equal(t, 30, table.Pot())
	assert.Equal(t, 20, table.CurrentBet())
	assert.Equal(t, 2000, sumChips(table))

	for _, p := range table.Players() {
		assert.Len(t, p.Hand(), 2)
	}

	// button moved to seat 1 ("b"), so "b" is the big blind and "a" posts
	// the small blind and opens the action
	assert.Equal(t, 1, table.buttonPosition)
	assert.Equal(t, 10, table.playerByID("a").ChipsInPot())
	assert.Equal(t, 20, table.playerByID("b").ChipsInPot())
	assert.Equal(t, "a", table.players[table.currentPlayerIndex].ID)

	// small blind calls; big blind still has the option, so no street yet
	require.NoError(t, table.Call("a"))
	assert.Equal(t, StatePreflop, table.State())
	assert.Equal(t, "b", table.players[table.currentPlayerIndex].ID)

	// big blind checks, closing the round
	require.NoError(t, table.Check("b"))
	assert.Equal(t, StateFlop, table.State())
	assert.Len(t, table.community, 3)
	assert.Equal(t, 40, table.Pot())

	for _, p := range table.Players() {
		assert.False(t, p.hasActed)
	}
}

// Three-handed fold-out: two folds leave a single player, who takes the
// pot without any hands being evaluated
func TestTable_foldOut(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a", "b", "c")

	require.NoError(t, table.StartGame())
	// button is "b", small blind "c" (10), big blind "a" (20), "b" opens
	assert.Equal(t, "b", table.players[table.currentPlayerIndex].ID)

	require.NoError(t, table.Bet("b", 50))
	assert.Equal(t, 50, table.CurrentBet())
	assert.Equal(t, "b", table.lastRaiser)

	require.NoError(t, table.Fold("c"))
	require.NoError(t, table.Fold("a"))

	assert.Equal(t, StateShowdown, table.State())
	assert.Equal(t, 0, table.Pot())

	winners := table.Winners()
	require.Len(t, winners, 1)
	assert.Equal(t, "b", winners[0].PlayerID)
	assert.Equal(t, 80, winners[0].Amount)
	assert.Nil(t, winners[0].Hand)

	assert.Equal(t, 1030, table.playerByID("b").Chips)
	assert.Equal(t, 3000, sumChips(table))
}

func TestTable_potConservation(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a", "b", "c")
	require.NoError(t, table.StartGame())

	checkInvariant := func() {
		t.Helper()
		inPot := 0
		for _, p := range table.players {
			inPot += p.ChipsInPot()
		}
		assert.Equal(t, table.Pot(), inPot)
	}

	checkInvariant()
	require.NoError(t, table.Bet("b", 100))
	checkInvariant()
	require.NoError(t, table.Call("c"))
	checkInvariant()
	require.NoError(t, table.Call("a"))
	checkInvariant()
	assert.Equal(t, StateFlop, table.State())
	assert.Equal(t, 300, table.Pot())
}

// A blind payer with a short stack posts everything and is all-in
func TestTable_cappedBlinds(t *testing.T) {
	table, err := NewTable(DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, table.AddPlayer("a", "a", 1000))
	require.NoError(t, table.AddPlayer("b", "b", 5))

	require.NoError(t, table.StartGame())

	// "b" is the button and the heads-up big blind, with only 5 chips
	short := table.playerByID("b")
	assert.Equal(t, 5, short.ChipsInPot())
	assert.Equal(t, 0, short.Chips)
	assert.True(t, short.AllIn())
	assert.Equal(t, 5, table.CurrentBet())
	assert.Equal(t, 15, table.Pot())
}

// When every player is all-in preflop, the remaining streets run out
// without further action and the hand settles
func TestTable_allInRunout(t *testing.T) {
	table, err := NewTable(DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, table.AddPlayer("a", "a", 100))
	require.NoError(t, table.AddPlayer("b", "b", 100))

	require.NoError(t, table.StartGame())
	require.NoError(t, table.Bet("a", 90)) // all-in over the top of the blind
	require.NoError(t, table.Call("b"))

	assert.Equal(t, StateShowdown, table.State())
	assert.Len(t, table.community, 5)
	assert.Equal(t, 0, table.Pot())
	assert.NotEmpty(t, table.Winners())
	assert.Equal(t, 200, sumChips(table))
}

func TestTable_antes(t *testing.T) {
	opts := DefaultOptions()
	opts.Ante = 5
	table := newTestTable(t, opts, "a", "b", "c")

	require.NoError(t, table.StartGame())
	assert.Equal(t, 45, table.Pot()) // 3 antes + blinds 10/20
	for _, p := range table.Players() {
		assert.GreaterOrEqual(t, p.ChipsInPot(), 5)
	}
}

func TestTable_actionErrors(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a", "b", "c")

	var gsErr *GameStateError
	assert.ErrorAs(t, table.Check("a"), &gsErr)

	require.NoError(t, table.StartGame())
	// "b" is first to act

	var turnErr *NotYourTurnError
	assert.ErrorAs(t, table.Call("c"), &turnErr)
	assert.Equal(t, "c", turnErr.PlayerID)

	var psErr *PlayerStateError
	assert.ErrorAs(t, table.Call("nobody"), &psErr)

	var invErr *InvalidActionError
	assert.ErrorAs(t, table.Check("b"), &invErr)
	assert.EqualError(t, invErr, "cannot check, must call or raise")

	err := table.Bet("b", 10)
	assert.ErrorAs(t, err, &invErr)
	assert.EqualError(t, invErr, "minimum bet is 20")

	require.NoError(t, table.Fold("b"))
	assert.ErrorAs(t, table.Call("b"), &psErr)
	assert.EqualError(t, psErr, "player has folded")

	// big blind has nothing to call
	require.NoError(t, table.Call("c"))
	err = table.Call("a")
	assert.ErrorAs(t, err, &invErr)
	assert.EqualError(t, invErr, "nothing to call")
}

// Showdown with an exact tie splits the pot, odd chip to the first
// winner in seat order
func TestTable_finishHand_splitPot(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a", "b")
	table.state = StateRiver
	table.pot = 101
	table.community = deck.CardsFromString("2h,7d,9s,Kc,Kd")
	table.players[0].hand = deck.CardsFromString("Ah,Qs")
	table.players[1].hand = deck.CardsFromString("Ad,Qc")

	require.NoError(t, table.finishHand())
	assert.Equal(t, StateShowdown, table.State())
	assert.Equal(t, 0, table.Pot())

	winners := table.Winners()
	require.Len(t, winners, 2)
	assert.Equal(t, "a", winners[0].PlayerID)
	assert.Equal(t, 51, winners[0].Amount)
	assert.Equal(t, "b", winners[1].PlayerID)
	assert.Equal(t, 50, winners[1].Amount)
	require.NotNil(t, winners[0].Hand)
	assert.Equal(t, winners[0].Hand.Value, winners[1].Hand.Value)
}

func TestTable_finishHand_bestHandWins(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a", "b")
	table.state = StateRiver
	table.pot = 200
	table.community = deck.CardsFromString("2h,7d,9s,Kc,Kd")
	table.players[0].hand = deck.CardsFromString("Kh,Qs") // trip kings
	table.players[1].hand = deck.CardsFromString("Ad,Qc") // pair of kings, ace kicker

	require.NoError(t, table.finishHand())

	winners := table.Winners()
	require.Len(t, winners, 1)
	assert.Equal(t, "a", winners[0].PlayerID)
	assert.Equal(t, 200, winners[0].Amount)
	assert.Equal(t, "Three of a Kind", winners[0].Hand.Hand.String())
}

func TestTable_raiseReopensAction(t *testing.T) {
	table := newTestTable(t, DefaultOptions(), "a", "b", "c")
	require.NoError(t, table.StartGame())

	require.NoError(t, table.Call("b"))
	require.NoError(t, table.Call("c"))
	// big blind raises instead of checking the option
	require.NoError(t, table.Bet("a", 60))
	assert.Equal(t, StatePreflop, table.State())
	assert.Equal(t, 80, table.CurrentBet())
	assert.Equal(t, "a", table.lastRaiser)

	require.NoError(t, table.Call("b"))
	assert.Equal(t, StatePreflop, table.State())
	require.NoError(t, table.Call("c"))
	assert.Equal(t, StateFlop, table.State())
	assert.Equal(t, 240, table.Pot())
}
