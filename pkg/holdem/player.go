package holdem

import "cardroom-server/pkg/deck"

// Player is a seated player. Chips is a working copy of the persisted
// balance; reconciling it is the persistence collaborator's problem.
// The table owns all mutation.
type Player struct {
	ID    string
	Name  string
	Chips int

	hand       []*deck.Card
	chipsInPot int
	hasActed   bool
	isAllIn    bool
	isFolded   bool
	lastAction string
}

// newHand resets the player's per-hand state
func (p *Player) newHand() {
	p.hand = nil
	p.chipsInPot = 0
	p.hasActed = false
	p.isAllIn = false
	p.isFolded = false
	p.lastAction = ""
}

// canAct returns true if the player can still make betting decisions
func (p *Player) canAct() bool {
	return !p.isFolded && !p.isAllIn
}

// contribute moves up to amount from the player's stack into their hand
// contribution, capping at the stack. A player whose stack hits zero is
// all-in. Returns the amount actually moved.
func (p *Player) contribute(amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}

	p.Chips -= amount
	p.chipsInPot += amount

	if p.Chips == 0 {
		p.isAllIn = true
	}

	return amount
}

// Hand returns the player's hole cards
func (p *Player) Hand() []*deck.Card {
	return p.hand
}

// ChipsInPot returns the player's total contribution this hand
func (p *Player) ChipsInPot() int {
	return p.chipsInPot
}

// Folded returns true if the player has folded this hand
func (p *Player) Folded() bool {
	return p.isFolded
}

// AllIn returns true if the player has wagered their entire stack
func (p *Player) AllIn() bool {
	return p.isAllIn
}
