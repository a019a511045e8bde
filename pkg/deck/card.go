package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
	Joker    Suit = "joker"
)

// face cards
const (
	Jack    = 11
	Queen   = 12
	King    = 13
	Ace     = 14
	HighAce = Ace
	LowAce  = 1
)

// joker pseudo-ranks. Jokers sit outside the 2..14 range and never score
// on their own; they only matter when marked wild.
const (
	RedJoker   = 15
	BlackJoker = 16
)

// Card is an individual playing card.
// Identity is by ID, not by (suit, rank): two cards with the same suit and
// rank are still distinct cards in the deck's bookkeeping.
type Card struct {
	Suit   Suit   `json:"suit"`
	Rank   int    `json:"rank"`
	ID     string `json:"id"`
	FaceUp bool   `json:"faceUp"`
	IsWild bool   `json:"isWild"`
}

// newCard returns a card with a freshly generated ID
func newCard(suit Suit, rank int) *Card {
	return &Card{
		Suit:   suit,
		Rank:   rank,
		ID:     uuid.NewString(),
		FaceUp: true,
	}
}

// Clone returns a logical copy of the card. The copy shares suit and rank
// but carries a new ID, so it is not the same card as far as the deck is
// concerned.
func (c *Card) Clone() *Card {
	cp := *c
	cp.ID = uuid.NewString()
	return &cp
}

// Flip toggles whether the card is face up
func (c *Card) Flip() {
	c.FaceUp = !c.FaceUp
}

// MakeWild marks the card as wild
func (c *Card) MakeWild() {
	c.IsWild = true
}

// ClearWild removes the wild marking
func (c *Card) ClearWild() {
	c.IsWild = false
}

func (c *Card) String() string {
	if c.Suit == Joker {
		if c.Rank == RedJoker {
			return "Jr"
		}

		return "Jb"
	}

	var rank string
	switch c.Rank {
	case 10:
		rank = "T"
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(c.Rank)
	}

	var suit string
	switch c.Suit {
	case Hearts:
		suit = "h"
	case Diamonds:
		suit = "d"
	case Clubs:
		suit = "c"
	case Spades:
		suit = "s"
	default:
		panic("unknown suit")
	}

	return rank + suit
}

var cardRx = regexp.MustCompile(`(?i)^([2-9tjqka]|10|1[0-4])([cdhs])\z`)

// CardFromString returns a Card from a string like "Ah", "Th", or "14h".
// The returned card has a freshly generated ID.
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	var rank int
	switch strings.ToUpper(match[1]) {
	case "T":
		rank = 10
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		var err error
		rank, err = strconv.Atoi(match[1])
		if err != nil {
			panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
		}
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	default:
		// should never be hit due to the regexp
		panic("unknown suit")
	}

	return newCard(suit, rank)
}

// CardsFromString will return a slice of cards from a string like "Ah,Td,2c"
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardsToStrings converts a slice of cards to their short string forms
func CardsToStrings(cards []*Card) []string {
	s := make([]string, len(cards))
	for i, card := range cards {
		s[i] = card.String()
	}

	return s
}
