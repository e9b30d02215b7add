package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, server *httptest.Server, playerID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	header := http.Header{"X-Player-ID": []string{playerID}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	return conn
}

func TestHub_SendDeliversToRegisteredPlayer(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dialHub(t, server, "player-1")
	defer conn.Close()

	// registration races the dial returning; give the hub a beat
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return hub.conns["player-1"] != nil
	}, time.Second, 10*time.Millisecond)

	hub.Send("player-1", Event{Type: "level_up", Payload: map[string]any{"level": float64(3)}})

	var got Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "level_up", got.Type)
	assert.Equal(t, float64(3), got.Payload["level"])
}

func TestHub_SendToUnknownPlayerIsNoOp(t *testing.T) {
	hub := NewHub()

	// must not panic or block
	hub.Send("nobody", Event{Type: "checkpoint"})
}

func TestHub_RejectsMissingPlayerID(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub)
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
