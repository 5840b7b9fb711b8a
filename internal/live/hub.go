package live

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Hub fans display projections out to websocket subscribers. Clients
// subscribe to a single game (a room); the ticker broadcasts into
// rooms. The hub never touches game state.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
}

// NewHub creates a hub ready to Run.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

// Run processes subscribe/unsubscribe events until the channels close.
// Meant to run on its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.gameID]; !ok {
				h.rooms[client.gameID] = make(map[*Client]bool)
			}
			h.rooms[client.gameID][client] = true
			h.mu.Unlock()
			log.Debug("Live client subscribed", "gameID", client.gameID)

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.gameID]; ok {
				if clients[client] {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.rooms, client.gameID)
					}
				}
			}
			h.mu.Unlock()
			log.Debug("Live client unsubscribed", "gameID", client.gameID)
		}
	}
}

// BroadcastToRoom delivers a payload to every subscriber of a game.
// Slow clients are skipped rather than blocking the ticker.
func (h *Hub) BroadcastToRoom(gameID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[gameID] {
		select {
		case client.send <- payload:
		default:
			log.Warn("Dropping live update for slow client", "gameID", gameID)
		}
	}
}

// Subscribe registers a client with the hub.
func (h *Hub) Subscribe(c *Client) {
	h.register <- c
}

// Unsubscribe removes a client and closes its send channel.
func (h *Hub) Unsubscribe(c *Client) {
	h.unregister <- c
}
