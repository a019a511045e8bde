package holdem

import (
	"fmt"

	"cardroom-server/pkg/deck"

	"github.com/thoas/go-funk"
)

// action names as they appear in the action log and lastAction fields
const (
	actionAnte       = "ante"
	actionSmallBlind = "small_blind"
	actionBigBlind   = "big_blind"
	actionBet        = "bet"
	actionCheck      = "check"
	actionCall       = "call"
	actionFold       = "fold"
)

// Table is a Texas Hold'em betting engine for a single table.
//
// A Table is not safe for concurrent use: the game server serializes all
// mutation per table. The pot is a single pot; unequal all-ins are not
// split into side pots.
type Table struct {
	options   Options
	players   []*Player
	deck      *deck.Deck
	community []*deck.Card

	pot                int
	currentBet         int
	currentPlayerIndex int
	buttonPosition     int
	bigBlindIndex      int
	bettingRound       int
	state              State
	lastRaiser         string
	actions            []*PlayerAction
	winners            []*Winner
}

// NewTable returns a new table in the waiting state
func NewTable(opts Options) (*Table, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return &Table{
		options: opts,
		state:   StateWaiting,
	}, nil
}

// AddPlayer seats a player. Seat order is join order; the button rotates.
func (t *Table) AddPlayer(id, name string, chips int) error {
	if t.state.inBettingRound() {
		return &GameStateError{State: t.state, Reason: "cannot join a hand in progress"}
	}

	if len(t.players) >= MaxPlayers {
		return &GameStateError{State: t.state, Reason: "table is full"}
	}

	if t.playerByID(id) != nil {
		return &PlayerStateError{Reason: "player is already seated"}
	}

	t.players = append(t.players, &Player{
		ID:    id,
		Name:  name,
		Chips: chips,
	})

	return nil
}

// RemovePlayer removes a player's seat. Returns true if the player was
// seated. Any chips the player had contributed this hand stay in the pot.
func (t *Table) RemovePlayer(id string) bool {
	index := -1
	for i, p := range t.players {
		if p.ID == id {
			index = i
			break
		}
	}

	if index == -1 {
		return false
	}

	t.players = append(t.players[:index], t.players[index+1:]...)

	if len(t.players) > 0 {
		if index < t.buttonPosition || t.buttonPosition >= len(t.players) {
			t.buttonPosition = (t.buttonPosition + len(t.players) - 1) % len(t.players)
		}

		t.currentPlayerIndex %= len(t.players)
		t.bigBlindIndex %= len(t.players)
	}

	return true
}

// StartGame begins a new hand: per-hand state is reset, the button
// advances, a fresh deck is shuffled, antes and stack-capped blinds are
// posted, two hole cards go to each player, and the first betting round
// opens with the player after the big blind.
func (t *Table) StartGame() error {
	if t.state.inBettingRound() {
		return &GameStateError{State: t.state, Reason: "hand already in progress"}
	}

	if len(t.players) < 2 {
		return &GameStateError{State: t.state, Reason: "not enough players to start the game"}
	}

	t.community = nil
	t.pot = 0
	t.currentBet = 0
	t.bettingRound = 0
	t.lastRaiser = ""
	t.actions = nil
	t.winners = nil

	for _, p := range t.players {
		p.newHand()
	}

	t.buttonPosition = (t.buttonPosition + 1) % len(t.players)

	// a fresh deck every hand; the previous hand's deck is discarded
	t.deck = deck.NewShuffled()
	t.state = StatePreflop

	t.postAntes()
	t.postBlinds()
	t.dealHoleCards()

	return t.startBettingRound()
}

// postAntes collects the ante from every seated player, capped at each
// player's stack
func (t *Table) postAntes() {
	if t.options.Ante <= 0 {
		return
	}

	for _, p := range t.players {
		paid := p.contribute(t.options.Ante)
		t.pot += paid
		p.lastAction = actionAnte
		t.actions = append(t.actions, &PlayerAction{PlayerID: p.ID, Action: actionAnte, Amount: paid})
	}
}

// postBlinds posts the small and big blinds from the two seats after the
// button. A blind payer with an insufficient stack posts everything they
// have and is all-in.
func (t *Table) postBlinds() {
	sbIndex := t.nextIndex(t.buttonPosition)
	bbIndex := t.nextIndex(sbIndex)
	t.bigBlindIndex = bbIndex

	sb := t.players[sbIndex]
	sbPaid := sb.contribute(t.options.SmallBlind)
	sb.lastAction = actionSmallBlind
	t.pot += sbPaid
	t.actions = append(t.actions, &PlayerAction{PlayerID: sb.ID, Action: actionSmallBlind, Amount: sbPaid})

	bb := t.players[bbIndex]
	bbPaid := bb.contribute(t.options.BigBlind)
	bb.lastAction = actionBigBlind
	t.pot += bbPaid
	t.actions = append(t.actions, &PlayerAction{PlayerID: bb.ID, Action: actionBigBlind, Amount: bbPaid})

	t.currentBet = bbPaid
}

func (t *Table) dealHoleCards() {
	for _, p := range t.players {
		p.hand = t.deck.DealMultiple(2)
	}
}

// Bet puts amount into the pot. The amount must at least match the
// current bet; it is capped at the player's stack. A contribution beyond
// the current bet becomes the new bet and makes the player the last
// raiser.
func (t *Table) Bet(playerID string, amount int) error {
	p, err := t.actingPlayer(playerID)
	if err != nil {
		return err
	}

	if minBet := t.currentBet - p.chipsInPot; amount < minBet {
		return &InvalidActionError{Reason: fmt.Sprintf("minimum bet is %d", minBet)}
	}

	paid := p.contribute(amount)
	t.pot += paid

	if p.chipsInPot > t.currentBet {
		t.currentBet = p.chipsInPot
		t.lastRaiser = p.ID
	}

	p.hasActed = true
	p.lastAction = actionBet

	return t.afterAction(p, actionBet, paid)
}

// Check passes the action. Legal only when the player's contribution
// already matches the current bet.
func (t *Table) Check(playerID string) error {
	p, err := t.actingPlayer(playerID)
	if err != nil {
		return err
	}

	if p.chipsInPot < t.currentBet {
		return &InvalidActionError{Reason: "cannot check, must call or raise"}
	}

	p.hasActed = true
	p.lastAction = actionCheck

	return t.afterAction(p, actionCheck, 0)
}

// Call pays exactly the difference up to the current bet, capped at the
// player's stack (a partial call puts the player all-in)
func (t *Table) Call(playerID string) error {
	p, err := t.actingPlayer(playerID)
	if err != nil {
		return err
	}

	owed := t.currentBet - p.chipsInPot
	if owed <= 0 {
		return &InvalidActionError{Reason: "nothing to call"}
	}

	paid := p.contribute(owed)
	t.pot += paid

	p.hasActed = true
	p.lastAction = actionCall

	return t.afterAction(p, actionCall, paid)
}

// Fold removes the player from the remainder of the hand
func (t *Table) Fold(playerID string) error {
	p, err := t.actingPlayer(playerID)
	if err != nil {
		return err
	}

	p.isFolded = true
	p.hasActed = true
	p.lastAction = actionFold

	return t.afterAction(p, actionFold, 0)
}

// actingPlayer validates the shared action contract: there must be an
// open betting round, the player must be seated, able to act, and on the
// clock
func (t *Table) actingPlayer(playerID string) (*Player, error) {
	if !t.state.inBettingRound() {
		return nil, &GameStateError{State: t.state, Reason: "no betting round in progress"}
	}

	p := t.playerByID(playerID)
	if p == nil {
		return nil, &PlayerStateError{Reason: "player is not seated at this table"}
	}

	if p.isFolded {
		return nil, &PlayerStateError{Reason: "player has folded"}
	}

	if p.isAllIn {
		return nil, &PlayerStateError{Reason: "player is all in"}
	}

	if t.players[t.currentPlayerIndex].ID != playerID {
		return nil, &NotYourTurnError{PlayerID: playerID}
	}

	return p, nil
}

// afterAction logs the action, then either closes the betting round or
// advances the turn
func (t *Table) afterAction(p *Player, action string, amount int) error {
	t.actions = append(t.actions, &PlayerAction{PlayerID: p.ID, Action: action, Amount: amount})

	if t.roundComplete() {
		return t.endBettingRound()
	}

	return t.advanceTurn()
}

// roundComplete returns true when every non-folded, non-all-in player
// has acted this round and matched the current bet, or when only one
// non-folded player remains
func (t *Table) roundComplete() bool {
	if t.remainingCount() <= 1 {
		return true
	}

	active := funk.Filter(t.players, func(p *Player) bool {
		return p.canAct()
	}).([]*Player)

	for _, p := range active {
		if !p.hasActed || p.chipsInPot < t.currentBet {
			return false
		}
	}

	return true
}

// advanceTurn moves to the next eligible seat, skipping folded and
// all-in players. If no eligible actor is found before looping back, the
// round is forced to completion.
func (t *Table) advanceTurn() error {
	index, ok := t.nextEligible(t.nextIndex(t.currentPlayerIndex))
	if !ok || index == t.currentPlayerIndex {
		return t.endBettingRound()
	}

	t.currentPlayerIndex = index
	return nil
}

// startBettingRound opens a fresh betting round: eligible players get
// their action back and the first seat after the big blind is on the
// clock. If nobody can act (everyone all-in or folded), the round closes
// immediately and play runs out.
func (t *Table) startBettingRound() error {
	t.bettingRound++

	for _, p := range t.players {
		if p.canAct() {
			p.hasActed = false
		}
	}

	index, ok := t.nextEligible(t.nextIndex(t.bigBlindIndex))
	if !ok {
		return t.endBettingRound()
	}

	t.currentPlayerIndex = index
	return nil
}

// endBettingRound advances to the next street, or to showdown after the
// river. A hand with only one player left settles immediately without
// dealing out the remaining streets.
func (t *Table) endBettingRound() error {
	if t.remainingCount() <= 1 {
		return t.finishHand()
	}

	switch t.state {
	case StatePreflop:
		return t.dealFlop()
	case StateFlop:
		return t.dealTurn()
	case StateTurn:
		return t.dealRiver()
	case StateRiver:
		return t.finishHand()
	default:
		return &GameStateError{State: t.state, Reason: "no betting round to end"}
	}
}

func (t *Table) dealFlop() error {
	if t.state != StatePreflop {
		return &GameStateError{State: t.state, Reason: "cannot deal flop"}
	}

	t.deck.Burn()
	cards := t.deck.DealMultiple(3)
	if len(cards) != 3 {
		return &GameStateError{State: t.state, Reason: "deck exhausted dealing the flop"}
	}

	t.community = append(t.community, cards...)
	t.state = StateFlop

	return t.startBettingRound()
}

func (t *Table) dealTurn() error {
	if t.state != StateFlop {
		return &GameStateError{State: t.state, Reason: "cannot deal turn"}
	}

	t.deck.Burn()
	card := t.deck.Deal()
	if card == nil {
		return &GameStateError{State: t.state, Reason: "deck exhausted dealing the turn"}
	}

	t.community = append(t.community, card)
	t.state = StateTurn

	return t.startBettingRound()
}

func (t *Table) dealRiver() error {
	if t.state != StateTurn {
		return &GameStateError{State: t.state, Reason: "cannot deal river"}
	}

	t.deck.Burn()
	card := t.deck.Deal()
	if card == nil {
		return &GameStateError{State: t.state, Reason: "deck exhausted dealing the river"}
	}

	t.community = append(t.community, card)
	t.state = StateRiver

	return t.startBettingRound()
}

// nextIndex returns the seat after index, wrapping around
func (t *Table) nextIndex(index int) int {
	return (index + 1) % len(t.players)
}

// nextEligible finds the first seat at or after start that can act
func (t *Table) nextEligible(start int) (int, bool) {
	for i := 0; i < len(t.players); i++ {
		index := (start + i) % len(t.players)
		if t.players[index].canAct() {
			return index, true
		}
	}

	return 0, false
}

// remainingCount is the number of players who have not folded
func (t *Table) remainingCount() int {
	n := 0
	for _, p := range t.players {
		if !p.isFolded {
			n++
		}
	}

	return n
}

func (t *Table) playerByID(id string) *Player {
	player := funk.Find(t.players, func(p *Player) bool {
		return p.ID == id
	})

	if player == nil {
		return nil
	}

	return player.(*Player)
}

// State returns the table's current state
func (t *Table) State() State {
	return t.state
}

// Options returns the table's options
func (t *Table) Options() Options {
	return t.options
}

// Players returns the seated players in seat order
func (t *Table) Players() []*Player {
	players := make([]*Player, len(t.players))
	copy(players, t.players)
	return players
}

// PlayerCount returns the number of seated players
func (t *Table) PlayerCount() int {
	return len(t.players)
}

// HasPlayer returns true if the player is seated
func (t *Table) HasPlayer(id string) bool {
	return t.playerByID(id) != nil
}

// Pot returns the current pot
func (t *Table) Pot() int {
	return t.pot
}

// CurrentBet returns the amount each player must match this hand
func (t *Table) CurrentBet() int {
	return t.currentBet
}

// Winners returns the winners of the last completed hand
func (t *Table) Winners() []*Winner {
	return t.winners
}
