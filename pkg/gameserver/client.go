package gameserver

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is a client connected to the server via websockets. The zero
// value is not usable; use NewClient.
type Client struct {
	// Conn is the underlying websocket connection. It may be nil in
	// tests that never touch the wire.
	Conn *websocket.Conn

	// ID uniquely identifies this connection
	ID string

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	// send is a channel for sending events to the client
	send chan *Event

	// identity, set on successful authentication
	playerID   string
	playerName string
	email      string
	role       string

	// gameID is the game this connection is attached to, if any
	gameID string

	// inLobby is true while subscribed to lobby updates
	inLobby bool
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		Conn:  conn,
		ID:    uuid.NewString(),
		Close: make(chan string, 1),
		send:  make(chan *Event, 256),
	}
}

// Send queues an event for delivery to the web client. Returns false if
// the client's send buffer is full; a client that slow is considered
// dead and the event is dropped.
func (c *Client) Send(event *Event) bool {
	select {
	case c.send <- event:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel the write pump drains
func (c *Client) SendChan() <-chan *Event {
	return c.send
}

// PlayerID returns the authenticated player's ID, or "" before
// authentication
func (c *Client) PlayerID() string {
	return c.playerID
}

// String returns a traceable identifier for the connection
func (c *Client) String() string {
	if c.playerID == "" {
		return c.ID
	}

	return fmt.Sprintf("%s:%s", c.playerID, c.ID)
}

func (c *Client) authenticated() bool {
	return c.playerID != ""
}
