package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub fans catalog events out to connected WebSocket clients. Clients are
// keyed by a generated id so a broken connection can be dropped mid-broadcast.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

type Stats struct {
	Clients int `json:"clients"`
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*websocket.Conn)}
}

// Add registers a connection and returns its client id.
func (h *Hub) Add(ws *websocket.Conn) string {
	id := uuid.NewString()
	h.mu.Lock()
	h.clients[id] = ws
	h.mu.Unlock()
	return id
}

func (h *Hub) Remove(id string) {
	h.mu.Lock()
	ws, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()
	if ok {
		_ = ws.Close()
	}
}

// BroadcastJSON sends v to every client; clients that fail to accept the
// write are closed and dropped.
func (h *Hub) BroadcastJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ws := range h.clients {
		_ = ws.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = ws.Close()
			delete(h.clients, id)
		}
	}
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{Clients: len(h.clients)}
}
