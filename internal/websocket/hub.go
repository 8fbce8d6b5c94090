package websocket

import (
	"encoding/json"
	"sync"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/pkg/logger"
)

// Envelope is the wire frame sent to clients.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans notifications out to connected clients. A user may hold several
// sessions at once (multiple tabs, phone and desktop); every session gets
// every notification.
type Hub struct {
	clients    map[uint][]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			sessions := len(h.clients[client.UserID])
			h.mu.Unlock()

			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":  client.UserID,
				"sessions": sessions,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if sessions, ok := h.clients[client.UserID]; ok {
				remaining := make([]*Client, 0, len(sessions))
				for _, c := range sessions {
					if c != client {
						remaining = append(remaining, c)
					}
				}
				if len(remaining) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = remaining
				}
				close(client.Send)
			}
			h.mu.Unlock()

			logger.Info("WebSocket client unregistered", map[string]interface{}{
				"user_id": client.UserID,
			})
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Push delivers a stored notification to all of the user's live sessions.
// A session whose send buffer is full is disconnected rather than allowed
// to stall the rest.
func (h *Hub) Push(userID uint, notification *model.Notification) {
	data, err := json.Marshal(Envelope{Type: "notification", Data: notification})
	if err != nil {
		logger.Error("Failed to marshal notification", err, nil)
		return
	}

	h.mu.RLock()
	sessions := h.clients[userID]
	for _, client := range sessions {
		select {
		case client.Send <- data:
		default:
			go h.Unregister(client)
			logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
				"user_id": userID,
			})
		}
	}
	h.mu.RUnlock()
}

func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
