package notify

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub is a websocket-backed Notifier: one registered connection per player.
// A new connection for a player replaces the previous one.
type Hub struct {
	mu       sync.RWMutex
	conns    map[string]*websocket.Conn
	upgrader websocket.Upgrader
}

// NewHub creates a new websocket notification hub
func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP upgrades the request and registers the connection under the
// player ID from the X-Player-ID header
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	playerID := r.Header.Get("X-Player-ID")
	if playerID == "" {
		http.Error(w, "missing player id", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed for %s: %v", playerID, err)
		return
	}

	h.register(playerID, conn)

	// Drain incoming frames so pings and close frames are processed; the
	// hub is push-only
	go func() {
		defer h.unregister(playerID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) register(playerID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.conns[playerID]; ok {
		_ = prev.Close()
	}
	h.conns[playerID] = conn
}

func (h *Hub) unregister(playerID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[playerID] == conn {
		delete(h.conns, playerID)
	}
	_ = conn.Close()
}

// Send implements Notifier. Delivery is best effort; write failures drop
// the connection.
func (h *Hub) Send(playerID string, event Event) {
	h.mu.RLock()
	conn, ok := h.conns[playerID]
	h.mu.RUnlock()

	if !ok {
		return
	}

	if err := conn.WriteJSON(event); err != nil {
		log.Printf("failed to notify %s: %v", playerID, err)
		h.unregister(playerID, conn)
	}
}
