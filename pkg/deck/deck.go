package deck

import (
	"math/rand"
	"time"
)

// Deck represents a deck of playing cards with a draw pile and a discard
// pile. The multiset of card IDs across both piles never changes after
// construction; cards only move between them.
type Deck struct {
	cards   []*Card
	discard []*Card
	rng     *rand.Rand
	seed    int64
}

// New returns a new, unshuffled deck of 52 cards.
// Pass includeJokers to append the red and black jokers.
func New(includeJokers bool) *Deck {
	cards := make([]*Card, 0, 54)
	for _, suit := range []Suit{Hearts, Diamonds, Clubs, Spades} {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, newCard(suit, rank))
		}
	}

	if includeJokers {
		cards = append(cards, newCard(Joker, RedJoker), newCard(Joker, BlackJoker))
	}

	d := &Deck{cards: cards}
	d.SetSeed(time.Now().UnixNano())

	return d
}

// NewShuffled returns a new, shuffled 52-card deck
func NewShuffled() *Deck {
	d := New(false)
	d.Shuffle()
	return d
}

// SetSeed sets the seed for the deck's random source.
// Intended for tests that need a deterministic order.
func (d *Deck) SetSeed(seed int64) {
	d.seed = seed
	d.rng = rand.New(rand.NewSource(seed))
}

// Seed returns the seed used by the deck's random source
func (d *Deck) Seed() int64 {
	return d.seed
}

// Shuffle applies a Fisher-Yates shuffle to the draw pile
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card of the draw pile.
// A nil card signals an empty deck; it is the caller's terminal condition,
// not an error.
func (d *Deck) Deal() *Card {
	if len(d.cards) == 0 {
		return nil
	}

	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]

	return card
}

// DealMultiple deals up to n cards, stopping early if the deck empties
func (d *Deck) DealMultiple(n int) []*Card {
	cards := make([]*Card, 0, n)
	for i := 0; i < n; i++ {
		card := d.Deal()
		if card == nil {
			break
		}

		cards = append(cards, card)
	}

	return cards
}

// Burn deals one card into the discard pile. The burned card is returned
// for bookkeeping but is never shown to players.
func (d *Deck) Burn() *Card {
	card := d.Deal()
	if card != nil {
		d.discard = append(d.discard, card)
	}

	return card
}

// Discard places a card onto the discard pile
func (d *Deck) Discard(card *Card) {
	d.discard = append(d.discard, card)
}

// Reset recombines the discard pile into the draw pile and reshuffles.
// Only valid between hands, never mid-hand.
func (d *Deck) Reset() {
	d.cards = append(d.cards, d.discard...)
	d.discard = nil
	d.Shuffle()
}

// Remaining returns the number of cards left in the draw pile
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// DiscardCount returns the number of cards in the discard pile
func (d *Deck) DiscardCount() int {
	return len(d.discard)
}

// Cards returns a copy of the draw pile
func (d *Deck) Cards() []*Card {
	cards := make([]*Card, len(d.cards))
	copy(cards, d.cards)
	return cards
}
