package holdem

// maskedCard is the placeholder sent in place of another player's
// face-down hole card
const maskedCard = "??"

// PlayerAction is one entry in the hand's append-only action log
type PlayerAction struct {
	PlayerID string `json:"playerId"`
	Action   string `json:"action"`
	Amount   int    `json:"amount"`
}

// PlayerState is a player's entry in a game state payload. Hand is a
// list of card strings, possibly masked.
type PlayerState struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Chips      int      `json:"chips"`
	ChipsInPot int      `json:"chipsInPot"`
	Hand       []string `json:"hand"`
	HasActed   bool     `json:"hasActed"`
	IsFolded   bool     `json:"isFolded"`
	IsAllIn    bool     `json:"isAllIn"`
	LastAction string   `json:"lastAction,omitempty"`
}

// GameState is the full table snapshot broadcast to clients
type GameState struct {
	GameState          State           `json:"gameState"`
	Players            []*PlayerState  `json:"players"`
	CommunityCards     []string        `json:"communityCards"`
	Pot                int             `json:"pot"`
	CurrentBet         int             `json:"currentBet"`
	CurrentPlayerIndex int             `json:"currentPlayerIndex"`
	ButtonPosition     int             `json:"buttonPosition"`
	PlayerActions      []*PlayerAction `json:"playerActions"`
	Winners            []*Winner       `json:"winners,omitempty"`
	SmallBlind         int             `json:"smallBlind"`
	BigBlind           int             `json:"bigBlind"`
	Ante               int             `json:"ante"`
}

// MaskedFor builds the snapshot as seen by viewerID. Outside showdown,
// other players' hole cards are replaced with placeholders. A folded
// player's cards are hidden from everyone, showdown included. An empty
// viewerID produces a spectator view with every hand masked.
func (t *Table) MaskedFor(viewerID string) *GameState {
	players := make([]*PlayerState, len(t.players))
	for i, p := range t.players {
		players[i] = &PlayerState{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			ChipsInPot: p.chipsInPot,
			Hand:       t.maskedHand(p, viewerID),
			HasActed:   p.hasActed,
			IsFolded:   p.isFolded,
			IsAllIn:    p.isAllIn,
			LastAction: p.lastAction,
		}
	}

	community := make([]string, len(t.community))
	for i, card := range t.community {
		community[i] = card.String()
	}

	actions := make([]*PlayerAction, len(t.actions))
	copy(actions, t.actions)

	return &GameState{
		GameState:          t.state,
		Players:            players,
		CommunityCards:     community,
		Pot:                t.pot,
		CurrentBet:         t.currentBet,
		CurrentPlayerIndex: t.currentPlayerIndex,
		ButtonPosition:     t.buttonPosition,
		PlayerActions:      actions,
		Winners:            t.winners,
		SmallBlind:         t.options.SmallBlind,
		BigBlind:           t.options.BigBlind,
		Ante:               t.options.Ante,
	}
}

func (t *Table) maskedHand(p *Player, viewerID string) []string {
	if p.isFolded {
		return []string{}
	}

	hand := make([]string, len(p.hand))
	for i, card := range p.hand {
		if p.ID == viewerID || t.state == StateShowdown {
			hand[i] = card.String()
		} else {
			hand[i] = maskedCard
		}
	}

	return hand
}
