package mux

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardroom-server/pkg/gameserver"
	"cardroom-server/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux() *Mux {
	mem := store.NewMemory(1000)
	verifier := gameserver.VerifierFunc(func(string) (*gameserver.Identity, error) {
		return &gameserver.Identity{UserID: "test"}, nil
	})

	return NewMux("v1.2.3", gameserver.NewServer(verifier, mem, mem))
}

func TestHealthHandler(t *testing.T) {
	ts := httptest.NewServer(newTestMux())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "OK", payload.Status)
	assert.Equal(t, "v1.2.3", payload.Version)
}

func TestWSHandler_rejectsPlainGET(t *testing.T) {
	ts := httptest.NewServer(newTestMux())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
