package holdem

import (
	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/poker"
)

// Winner describes a player who won a share of the pot
type Winner struct {
	PlayerID string        `json:"playerId"`
	Name     string        `json:"name"`
	Amount   int           `json:"amount"`
	Hand     *poker.Result `json:"hand,omitempty"`
}

// finishHand settles the pot and moves the table to showdown. If only one
// player remains they take the pot without showing; otherwise the
// remaining hands are evaluated and the best hand (or hands, on an exact
// tie) splits the pot, with any remainder going to the first winner in
// seat order.
func (t *Table) finishHand() error {
	contenders := make([]*Player, 0, len(t.players))
	for _, p := range t.players {
		if !p.isFolded {
			contenders = append(contenders, p)
		}
	}

	if len(contenders) == 0 {
		return &GameStateError{State: t.state, Reason: "no players remaining in the hand"}
	}

	if len(contenders) == 1 {
		winner := contenders[0]
		winner.Chips += t.pot
		t.winners = []*Winner{{
			PlayerID: winner.ID,
			Name:     winner.Name,
			Amount:   t.pot,
		}}

		t.pot = 0
		t.state = StateShowdown
		return nil
	}

	type showdownHand struct {
		player *Player
		result *poker.Result
	}

	best := make([]*showdownHand, 0, len(contenders))
	for _, p := range contenders {
		cards := make([]*deck.Card, 0, len(p.hand)+len(t.community))
		cards = append(cards, p.hand...)
		cards = append(cards, t.community...)

		result, err := poker.BestHand(cards)
		if err != nil {
			return &GameStateError{State: t.state, Reason: err.Error()}
		}

		switch {
		case len(best) == 0:
			best = append(best, &showdownHand{player: p, result: result})
		default:
			if cmp := poker.Compare(result, best[0].result); cmp > 0 {
				best = best[:0]
				best = append(best, &showdownHand{player: p, result: result})
			} else if cmp == 0 {
				best = append(best, &showdownHand{player: p, result: result})
			}
		}
	}

	share := t.pot / len(best)
	remainder := t.pot % len(best)

	t.winners = make([]*Winner, len(best))
	for i, sh := range best {
		amount := share
		if i == 0 {
			amount += remainder
		}

		sh.player.Chips += amount
		t.winners[i] = &Winner{
			PlayerID: sh.player.ID,
			Name:     sh.player.Name,
			Amount:   amount,
			Hand:     sh.result,
		}
	}

	t.pot = 0
	t.state = StateShowdown
	return nil
}
