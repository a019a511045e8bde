package mux

import (
	"net/http"

	"cardroom-server/pkg/gameserver"

	gmux "github.com/gorilla/mux"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	server  *gameserver.Server
}

// NewMux returns a new HTTP mux. All game traffic flows over the
// websocket endpoint; authentication happens in-band with an
// authenticate message.
func NewMux(version string, server *gameserver.Server) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		server:  server,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	return this
}
