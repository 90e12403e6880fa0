package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/madarij/center/internal/app/models"
	"github.com/rs/zerolog"
)

// Event is the envelope pushed to connected staff
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// EventNotification carries a freshly created notification
const EventNotification = "notification"

// Hub tracks the live connections of each staff member and pushes events to them
type Hub struct {
	// Registered clients organized by user ID
	clients map[uuid.UUID]map[*Client]struct{}
	mu      sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*Client]struct{}),
		logger:  logger.With().Str("component", "websocket").Logger(),
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]struct{})
	}
	h.clients[client.userID][client] = struct{}{}

	h.logger.Debug().Str("userID", client.userID.String()).Msg("Client registered")
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked drops client and closes its send channel. Callers hold mu.
func (h *Hub) removeLocked(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	h.logger.Debug().Str("userID", client.userID.String()).Msg("Client unregistered")
}

// Publish sends ev to every open connection of userID. Clients whose buffer is
// full are disconnected instead of blocking the publisher.
func (h *Hub) Publish(userID uuid.UUID, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error().Err(err).Str("type", ev.Type).Msg("Failed to marshal event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- data:
		default:
			h.logger.Warn().Str("userID", userID.String()).Msg("Slow client dropped")
			h.removeLocked(client)
		}
	}
}

// Dispatch pushes a committed notification to its recipient's open connections
func (h *Hub) Dispatch(_ context.Context, n *models.Notification) {
	if n == nil {
		return
	}
	h.Publish(n.RecipientID, Event{Type: EventNotification, Data: n})
}

// ClientsCount returns the number of open connections for a user
func (h *Hub) ClientsCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, set := range h.clients {
		for client := range set {
			h.removeLocked(client)
		}
	}
}
