package gameserver

import (
	"context"
	"sync"
	"time"

	"cardroom-server/pkg/holdem"
	"cardroom-server/pkg/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Server is the connection and game registry. It authenticates
// connections, routes messages to the right table, and broadcasts masked
// state.
//
// Lock ordering: the registry mutex may be taken first and a session
// mutex nested inside it, never the reverse. Methods that mutate a table
// release the session mutex before touching the registry again.
type Server struct {
	verifier TokenVerifier
	users    store.UserStore
	games    store.GameStore

	mu       sync.Mutex
	sessions map[string]*session
	clients  map[*Client]bool
	lobby    map[*Client]bool
}

// NewServer returns a new game server
func NewServer(verifier TokenVerifier, users store.UserStore, games store.GameStore) *Server {
	return &Server{
		verifier: verifier,
		users:    users,
		games:    games,
		sessions: make(map[string]*session),
		clients:  make(map[*Client]bool),
		lobby:    make(map[*Client]bool),
	}
}

// HandleMessage dispatches one client message. Validation errors become
// error events sent only to the offending connection; they never affect
// other players.
func (s *Server) HandleMessage(ctx context.Context, c *Client, msg *Message) {
	var err error
	switch msg.Type {
	case MessageAuthenticate:
		s.Authenticate(c, msg.Token)
		return
	case MessageJoinLobby:
		err = s.JoinLobby(c)
	case MessageLeaveLobby:
		err = s.LeaveLobby(c)
	case MessageCreateGame:
		err = s.CreateGame(ctx, c, msg.Options)
	case MessageJoinGame:
		err = s.JoinGame(ctx, c, msg.GameID)
	case MessageLeaveGame:
		err = s.LeaveGame(c)
	case MessageGameAction:
		err = s.GameAction(ctx, c, msg.Action)
	case MessageChat:
		err = s.Chat(c, msg.Text)
	default:
		err = ErrUnknownMessage
	}

	if err != nil {
		c.Send(newErrorEvent(err))
	}
}

// Authenticate verifies the token and binds the identity to the
// connection. Failure leaves the connection unauthenticated; the client
// may retry.
func (s *Server) Authenticate(c *Client, token string) {
	identity, err := s.verifier.Verify(token)
	if err != nil {
		logrus.WithError(err).WithField("client", c.String()).Debug("authentication failed")
		c.Send(&Event{Type: EventAuthError, Data: errorData{Error: err.Error()}})
		return
	}

	c.playerID = identity.UserID
	c.playerName = identity.Username
	c.email = identity.Email
	c.role = identity.Role

	s.mu.Lock()
	s.clients[c] = true
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"client":   c.String(),
		"username": c.playerName,
		"role":     c.role,
	}).Info("client authenticated")

	c.Send(&Event{Type: EventAuthSuccess, Data: authSuccessData{
		PlayerID: c.playerID,
		Username: c.playerName,
		Email:    c.email,
	}})
}

// JoinLobby subscribes the connection to availability updates and sends
// it the current snapshot
func (s *Server) JoinLobby(c *Client) error {
	if !c.authenticated() {
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	s.lobby[c] = true
	c.inLobby = true
	summaries := s.gameSummaries()
	s.mu.Unlock()

	c.Send(&Event{Type: EventLobbyUpdate, Data: summaries})
	return nil
}

// LeaveLobby unsubscribes the connection from availability updates
func (s *Server) LeaveLobby(c *Client) error {
	if !c.authenticated() {
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	delete(s.lobby, c)
	c.inLobby = false
	s.mu.Unlock()

	return nil
}

// CreateGame creates a table with the caller's options, seats the
// caller, and registers the table
func (s *Server) CreateGame(ctx context.Context, c *Client, opts *holdem.Options) error {
	if !c.authenticated() {
		return ErrNotAuthenticated
	}

	if c.gameID != "" {
		return ErrAlreadyInGame
	}

	options := holdem.DefaultOptions()
	if opts != nil {
		options = *opts
	}

	table, err := holdem.NewTable(options)
	if err != nil {
		return err
	}

	chips, err := s.startingChips(ctx, options, c.playerID)
	if err != nil {
		return err
	}

	if err := table.AddPlayer(c.playerID, c.playerName, chips); err != nil {
		return err
	}

	sess := newSession(uuid.NewString(), table)
	sess.attach(c)
	c.gameID = sess.id

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"gameId": sess.id,
		"client": c.String(),
	}).Info("game created")

	c.Send(&Event{Type: EventGameCreated, Data: gameCreatedData{
		GameID: sess.id,
		Game:   table.MaskedFor(c.playerID),
	}})

	s.notifyLobby()
	return nil
}

// JoinGame seats the player at an existing table. A player already
// seated at the table is re-attached instead, which is how a dropped
// connection resumes receiving updates.
func (s *Server) JoinGame(ctx context.Context, c *Client, gameID string) error {
	if !c.authenticated() {
		return ErrNotAuthenticated
	}

	sess, err := s.session(gameID)
	if err != nil {
		return err
	}

	if c.gameID != "" && c.gameID != gameID {
		return ErrAlreadyInGame
	}

	// resolve chips before taking the session lock; AddPlayer
	// revalidates the table state
	chips, err := s.startingChips(ctx, sess.table.Options(), c.playerID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	if sess.table.HasPlayer(c.playerID) {
		sess.clients[c] = true
		c.gameID = gameID
		c.Send(&Event{Type: EventGameState, Data: sess.table.MaskedFor(c.playerID)})
		sess.mu.Unlock()
		return nil
	}

	if sess.table.State() != holdem.StateWaiting {
		sess.mu.Unlock()
		return ErrGameInProgress
	}

	if err := sess.table.AddPlayer(c.playerID, c.playerName, chips); err != nil {
		sess.mu.Unlock()
		return err
	}

	sess.clients[c] = true
	c.gameID = gameID

	playerID, playerName := c.playerID, c.playerName
	sess.broadcast(func(recipient *Client) *Event {
		return &Event{Type: EventPlayerJoined, Data: playerJoinedData{
			PlayerID:   playerID,
			PlayerName: playerName,
			Game:       sess.table.MaskedFor(recipient.playerID),
		}}
	})
	c.Send(&Event{Type: EventGameState, Data: sess.table.MaskedFor(c.playerID)})
	sess.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"gameId": gameID,
		"client": c.String(),
	}).Info("player joined game")

	s.notifyLobby()
	return nil
}

// LeaveGame removes the player's seat. An empty table is deleted.
func (s *Server) LeaveGame(c *Client) error {
	if !c.authenticated() {
		return ErrNotAuthenticated
	}

	sess, err := s.session(c.gameID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	sess.table.RemovePlayer(c.playerID)
	delete(sess.clients, c)

	playerID := c.playerID
	sess.broadcast(func(recipient *Client) *Event {
		return &Event{Type: EventPlayerLeft, Data: playerLeftData{
			PlayerID: playerID,
			Game:     sess.table.MaskedFor(recipient.playerID),
		}}
	})
	empty := sess.table.PlayerCount() == 0
	sess.mu.Unlock()

	c.gameID = ""

	if empty {
		s.mu.Lock()
		delete(s.sessions, sess.id)
		s.mu.Unlock()

		logrus.WithField("gameId", sess.id).Info("game deleted")
	}

	s.notifyLobby()
	return nil
}

// GameAction applies one table action and broadcasts the resulting
// masked state. When the hand reaches showdown, the winners are
// announced and the hand is recorded.
func (s *Server) GameAction(ctx context.Context, c *Client, action *GameAction) error {
	if !c.authenticated() {
		return ErrNotAuthenticated
	}

	if action == nil {
		return ErrUnknownAction
	}

	sess, err := s.session(c.gameID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	switch action.Type {
	case ActionStartGame:
		err = sess.table.StartGame()
	case ActionBet:
		err = sess.table.Bet(c.playerID, action.Amount)
	case ActionCall:
		err = sess.table.Call(c.playerID)
	case ActionCheck:
		err = sess.table.Check(c.playerID)
	case ActionFold:
		err = sess.table.Fold(c.playerID)
	default:
		err = ErrUnknownAction
	}

	if err != nil {
		sess.mu.Unlock()
		return err
	}

	sess.broadcastState(EventGameUpdate)

	var winners []*holdem.Winner
	if sess.table.State() == holdem.StateShowdown {
		winners = sess.table.Winners()
		sess.broadcast(func(*Client) *Event {
			return &Event{Type: EventGameOver, Data: gameOverData{
				GameID:  sess.id,
				Winners: winners,
			}}
		})
	}
	sess.mu.Unlock()

	if winners != nil {
		s.recordHand(ctx, sess.id, winners)
	}

	return nil
}

// Chat relays a chat message to everyone at the sender's table
func (s *Server) Chat(c *Client, text string) error {
	if !c.authenticated() {
		return ErrNotAuthenticated
	}

	sess, err := s.session(c.gameID)
	if err != nil {
		return err
	}

	event := &Event{Type: EventChat, Data: chatData{
		PlayerID:   c.playerID,
		PlayerName: c.playerName,
		Message:    text,
		Timestamp:  time.Now().UnixMilli(),
	}}

	sess.mu.Lock()
	sess.broadcast(func(*Client) *Event { return event })
	sess.mu.Unlock()

	return nil
}

// Disconnect tears down the connection's registry entries. The player's
// seat at any table is kept; a dropped connection does not fold the
// player, it only stops their updates until they rejoin.
func (s *Server) Disconnect(c *Client) {
	s.mu.Lock()
	delete(s.clients, c)
	delete(s.lobby, c)
	s.mu.Unlock()

	if c.gameID != "" {
		if sess, err := s.session(c.gameID); err == nil {
			sess.detach(c)
		}
	}

	logrus.WithField("client", c.String()).Debug("client disconnected")
}

// Shutdown tells every connected client's write pump to send a close
// frame with the given reason. Connection teardown then runs the normal
// Disconnect path.
func (s *Server) Shutdown(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logrus.WithField("clients", len(s.clients)).Info("closing client connections")
	for c := range s.clients {
		select {
		case c.Close <- reason:
		default:
		}
	}
}

// session resolves a game ID to its session
func (s *Server) session(gameID string) (*session, error) {
	if gameID == "" {
		return nil, ErrNotInGame
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}

	return sess, nil
}

// startingChips resolves the stack a joining player sits down with. The
// table's configured stack wins; otherwise the persisted balance is
// used.
func (s *Server) startingChips(ctx context.Context, opts holdem.Options, playerID string) (int, error) {
	if opts.StartingChips > 0 {
		return opts.StartingChips, nil
	}

	return s.users.StartingChips(ctx, playerID)
}

// gameSummaries builds the lobby snapshot. Must be called with s.mu
// held.
func (s *Server) gameSummaries() []*GameSummary {
	summaries := make([]*GameSummary, 0, len(s.sessions))
	for id, sess := range s.sessions {
		sess.mu.Lock()
		opts := sess.table.Options()
		summaries = append(summaries, &GameSummary{
			GameID:      id,
			PlayerCount: sess.table.PlayerCount(),
			SmallBlind:  opts.SmallBlind,
			BigBlind:    opts.BigBlind,
			State:       sess.table.State(),
		})
		sess.mu.Unlock()
	}

	return summaries
}

// notifyLobby pushes a fresh availability snapshot to every lobby
// subscriber
func (s *Server) notifyLobby() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lobby) == 0 {
		return
	}

	summaries := s.gameSummaries()
	for c := range s.lobby {
		c.Send(&Event{Type: EventAvailableGames, Data: summaries})
	}
}

// recordHand persists the outcome of a completed hand. Failure is
// logged, never surfaced to players.
func (s *Server) recordHand(ctx context.Context, gameID string, winners []*holdem.Winner) {
	record := &store.HandRecord{
		GameID:     gameID,
		FinishedAt: time.Now(),
	}

	for _, w := range winners {
		record.Winners = append(record.Winners, store.HandWinner{
			PlayerID: w.PlayerID,
			Amount:   w.Amount,
		})
	}

	if err := s.games.RecordHand(ctx, record); err != nil {
		logrus.WithError(err).WithField("gameId", gameID).Error("could not record hand")
	}
}
