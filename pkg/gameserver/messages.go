package gameserver

import "cardroom-server/pkg/holdem"

// client → server message types
const (
	MessageAuthenticate = "authenticate"
	MessageJoinLobby    = "join_lobby"
	MessageLeaveLobby   = "leave_lobby"
	MessageCreateGame   = "create_game"
	MessageJoinGame     = "join_game"
	MessageLeaveGame    = "leave_game"
	MessageGameAction   = "game_action"
	MessageChat         = "chat_message"
)

// server → client event types
const (
	EventAuthSuccess    = "auth_success"
	EventAuthError      = "auth_error"
	EventLobbyUpdate    = "lobby_update"
	EventAvailableGames = "available_games"
	EventGameCreated    = "game_created"
	EventPlayerJoined   = "player_joined"
	EventPlayerLeft     = "player_left"
	EventGameState      = "game_state"
	EventGameUpdate     = "game_update"
	EventGameOver       = "game_over"
	EventChat           = "chat_message"
	EventError          = "error"
)

// game action types carried by game_action messages
const (
	ActionStartGame = "start_game"
	ActionBet       = "bet"
	ActionCall      = "call"
	ActionCheck     = "check"
	ActionFold      = "fold"
)

// Message is an incoming client message
type Message struct {
	Type    string          `json:"type"`
	Token   string          `json:"token,omitempty"`
	GameID  string          `json:"gameId,omitempty"`
	Options *holdem.Options `json:"options,omitempty"`
	Action  *GameAction     `json:"action,omitempty"`
	Text    string          `json:"text,omitempty"`
}

// GameAction is the payload of a game_action message
type GameAction struct {
	Type   string `json:"type"`
	Amount int    `json:"amount,omitempty"`
}

// Event is an outgoing server event
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// GameSummary is a lobby-visible description of a table
type GameSummary struct {
	GameID      string       `json:"gameId"`
	PlayerCount int          `json:"playerCount"`
	SmallBlind  int          `json:"smallBlind"`
	BigBlind    int          `json:"bigBlind"`
	State       holdem.State `json:"state"`
}

type authSuccessData struct {
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type gameCreatedData struct {
	GameID string            `json:"gameId"`
	Game   *holdem.GameState `json:"game"`
}

type playerJoinedData struct {
	PlayerID   string            `json:"playerId"`
	PlayerName string            `json:"playerName"`
	Game       *holdem.GameState `json:"game"`
}

type playerLeftData struct {
	PlayerID string            `json:"playerId"`
	Game     *holdem.GameState `json:"game"`
}

type gameOverData struct {
	GameID  string           `json:"gameId"`
	Winners []*holdem.Winner `json:"winners"`
}

type chatData struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
}

type errorData struct {
	Error string `json:"error"`
}

func newErrorEvent(err error) *Event {
	return &Event{Type: EventError, Data: errorData{Error: err.Error()}}
}
