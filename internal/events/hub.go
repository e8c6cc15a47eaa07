// Package events pushes admin lifecycle notifications to connected
// websocket clients, so the admin page can react to fault updates,
// seeds and resets without polling.
package events

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is a single notification sent to subscribers.
type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// Hub fans events out to every connected subscriber. A subscriber that
// stops draining its buffer is disconnected rather than allowed to stall
// publishers.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[chan Event]struct{}
}

// NewHub creates a hub with no subscribers.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[chan Event]struct{}),
		upgrader: websocket.Upgrader{
			// Local admin tooling; any origin may subscribe.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Publish sends the event to all connected subscribers without blocking.
func (h *Hub) Publish(eventType string, payload any) {
	ev := Event{Type: eventType, Payload: payload, At: time.Now().UTC()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
			delete(h.clients, ch)
			close(ch)
		}
	}
}

// ServeHTTP upgrades the connection and streams events until the client
// disconnects or falls behind.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	ch := make(chan Event, 16)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		if _, ok := h.clients[ch]; ok {
			delete(h.clients, ch)
			close(ch)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	// The stream is one-way; inbound frames are discarded. A read error
	// signals a gone client.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}
