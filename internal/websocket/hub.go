package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Event is the message pushed to a user's connections.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type Hub struct {
	clients    map[int64]map[*Client]bool
	mu         sync.RWMutex
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return
		}
	}
}

// Add registers client. It reports false once the hub has stopped.
func (h *Hub) Add(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.UserID]; !ok {
		h.clients[client.UserID] = make(map[*Client]bool)
	}
	h.clients[client.UserID][client] = true
	h.log.Debug("Websocket client registered", zap.Int64("user_id", client.UserID))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if userClients, ok := h.clients[client.UserID]; ok {
		if _, ok := userClients[client]; ok {
			delete(userClients, client)
			close(client.send)
			if len(userClients) == 0 {
				delete(h.clients, client.UserID)
			}
			h.log.Debug("Websocket client unregistered", zap.Int64("user_id", client.UserID))
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, userClients := range h.clients {
		for client := range userClients {
			close(client.send)
		}
		delete(h.clients, userID)
	}
}

// CloseSession disconnects every connection of userID opened with token.
// The pumps notice the closed queue and tear the connection down.
func (h *Hub) CloseSession(userID int64, token string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	closed := 0
	for client := range h.clients[userID] {
		if client.token != token {
			continue
		}
		delete(h.clients[userID], client)
		close(client.send)
		closed++
	}
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
	if closed > 0 {
		h.log.Debug("Websocket session closed", zap.Int64("user_id", userID), zap.Int("connections", closed))
	}
	return closed
}

// Notify sends an event to every open connection of userID. Slow
// connections drop messages instead of blocking the caller.
func (h *Hub) Notify(userID int64, event string, payload any) {
	data, err := json.Marshal(Event{Event: event, Payload: payload})
	if err != nil {
		h.log.Error("Failed to marshal event", zap.String("event", event), zap.Error(err))
		return
	}
	h.PublishEvent(userID, data)
}

func (h *Hub) PublishEvent(userID int64, eventData []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if userClients, ok := h.clients[userID]; ok {
		for client := range userClients {
			select {
			case client.send <- eventData:
			default:
				h.log.Warn("Client send buffer is full, dropping message", zap.Int64("user_id", userID))
			}
		}
	}
}

func (h *Hub) ClientCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
