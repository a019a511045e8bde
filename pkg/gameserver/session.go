package gameserver

import (
	"sync"

	"cardroom-server/pkg/holdem"

	"github.com/sirupsen/logrus"
)

// session binds a table to its connected clients. All table mutation
// happens under mu, so actions on one table are applied strictly in
// arrival order. Broadcasts enqueue onto each client's buffered send
// channel while still holding mu; the socket writes themselves happen in
// each client's write pump, so a stalled connection never blocks the
// table.
type session struct {
	id      string
	table   *holdem.Table
	clients map[*Client]bool
	mu      sync.Mutex
}

func newSession(id string, table *holdem.Table) *session {
	return &session{
		id:      id,
		table:   table,
		clients: make(map[*Client]bool),
	}
}

// attach adds a client to the session's broadcast set
func (s *session) attach(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[c] = true
}

// detach removes a client from the broadcast set. The player's seat, if
// any, is untouched.
func (s *session) detach(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.clients, c)
}

// broadcast queues a per-recipient masked event built by fn for every
// attached client. Must be called with mu held.
func (s *session) broadcast(fn func(c *Client) *Event) {
	for c := range s.clients {
		if !c.Send(fn(c)) {
			logrus.WithField("client", c.String()).Warn("send buffer full, dropping event")
		}
	}
}

// broadcastState queues a masked table snapshot to every attached client.
// Must be called with mu held.
func (s *session) broadcastState(eventType string) {
	s.broadcast(func(c *Client) *Event {
		return &Event{Type: eventType, Data: s.table.MaskedFor(c.playerID)}
	})
}
