package websocket

import (
	"sync"

	"gasflow-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Hub is the connection registry: it maps an authenticated user to their
// single live socket. A reconnect replaces the previous entry (last
// registered socket wins); the replaced socket stays open but is no
// longer targetable. The hub is constructed once at startup and handed
// to the HTTP and socket handlers; it holds no persistent state and is
// not shared across processes.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
	logger  logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*Client),
		logger:  log,
	}
}

// Register binds an authenticated client to its user id, overwriting any
// prior entry for that user.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.UserID] = client
	h.mu.Unlock()
	if h.logger != nil {
		h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})
	}
}

// Unregister removes the entry for this client's user, but only if the
// entry still points at this exact client. A socket that was already
// replaced by a reconnect leaves the newer registration untouched.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.clients[client.UserID]; ok && current == client {
		delete(h.clients, client.UserID)
		if h.logger != nil {
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"user_id": client.UserID})
		}
	}
}

// Lookup returns the live client for a user, or nil when offline.
func (h *Hub) Lookup(userID uuid.UUID) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[userID]
}

// PushToUser delivers a prebuilt frame to the user's socket if one is
// registered. Fire and forget: reports whether the frame was handed to a
// socket, never blocks, never retries. A full send buffer counts as a
// dead connection and drops the registration; the channel stays open
// because the frame handler still writes replies to it, and the pumps
// tear the socket down on their own.
func (h *Hub) PushToUser(userID uuid.UUID, payload []byte) bool {
	client := h.Lookup(userID)
	if client == nil {
		return false
	}

	select {
	case client.Send <- payload:
		return true
	default:
		if h.logger != nil {
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
		}
		h.Unregister(client)
		return false
	}
}
