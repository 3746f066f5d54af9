package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client represents a connected WebSocket client
type Client struct {
	Hub  *Hub
	ID   uint
	Conn *websocket.Conn
	Send chan []byte
}

// Hub manages all WebSocket connections. It exists so the notification
// sink can push new notifications to users as they are written.
type Hub struct {
	// Registered clients, keyed by user id
	Clients map[uint]*Client

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// Broadcast channel for payloads to all clients
	Broadcast chan []byte

	mu sync.RWMutex
}

// Message is the envelope pushed over the wire
type Message struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[uint]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan []byte),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			// A reconnect replaces the previous connection.
			if old, ok := h.Clients[client.ID]; ok {
				close(old.Send)
			}
			h.Clients[client.ID] = client
			h.mu.Unlock()
			logrus.WithField("user_id", client.ID).Debug("WebSocket client registered")

		case client := <-h.Unregister:
			h.mu.Lock()
			if current, ok := h.Clients[client.ID]; ok && current == client {
				delete(h.Clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			logrus.WithField("user_id", client.ID).Debug("WebSocket client unregistered")

		case payload := <-h.Broadcast:
			h.broadcast(payload)
		}
	}
}

func (h *Hub) broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.Clients {
		select {
		case client.Send <- payload:
		default:
			logrus.WithField("user_id", client.ID).Warn("WebSocket send buffer full, dropping payload")
		}
	}
}

// SendToUser pushes a payload to a specific user if they are connected.
// Disconnected users simply miss the push; the notification row is the
// record.
func (h *Hub) SendToUser(userID uint, payload []byte) {
	h.mu.RLock()
	client, exists := h.Clients[userID]
	h.mu.RUnlock()

	if !exists {
		return
	}

	select {
	case client.Send <- payload:
	default:
		logrus.WithField("user_id", userID).Warn("WebSocket send buffer full, dropping payload")
	}
}

// SendToAll queues a payload for every connected client.
func (h *Hub) SendToAll(payload []byte) {
	h.Broadcast <- payload
}

// ConnectedUsers returns the currently connected user IDs
func (h *Hub) ConnectedUsers() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uint, 0, len(h.Clients))
	for userID := range h.Clients {
		users = append(users, userID)
	}
	return users
}
