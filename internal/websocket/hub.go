package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"sloboda/internal/metrics"
	"sloboda/internal/models"

	"github.com/google/uuid"
)

// push carries one serialized notification to a specific user.
type push struct {
	userID  uuid.UUID
	payload []byte
}

// Hub fans notifications out to the live connections of each user. A user
// may hold several connections (multiple tabs); every one gets the push.
// Users without a connection are skipped silently, the notification is
// already persisted and will show up in the list endpoint.
type Hub struct {
	clients map[uuid.UUID]map[*Client]bool

	pushes     chan *push
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		pushes:     make(chan *push, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's processing loop.
func (h *Hub) Run() {
	log.Println("Notification hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.clients[client.UserID]; !ok {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
			h.mu.Unlock()
			log.Printf("Hub: user %s connected", client.UserID)

		case client := <-h.unregister:
			h.mu.Lock()
			if userClients, ok := h.clients[client.UserID]; ok {
				if _, clientOk := userClients[client]; clientOk {
					delete(userClients, client)
					if len(userClients) == 0 {
						delete(h.clients, client.UserID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("Hub: user %s disconnected", client.UserID)

		case p := <-h.pushes:
			h.mu.RLock()
			for client := range h.clients[p.userID] {
				select {
				case client.Send <- p.payload:
					metrics.CountNotificationPush()
				default:
					// Slow consumer, drop rather than block the hub.
					log.Printf("Hub: send buffer full for user %s, dropping push", p.userID)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Push delivers a persisted notification to the user's live connections.
// It satisfies the notifier interface the actors use and never blocks:
// if the hub's queue is full the push is dropped.
func (h *Hub) Push(userID uuid.UUID, n *models.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("Hub: failed to marshal notification %s: %v", n.ID, err)
		return
	}
	select {
	case h.pushes <- &push{userID: userID, payload: payload}:
	default:
		log.Printf("Hub: push queue full, dropping notification for user %s", userID)
	}
}

// Connected reports whether the user currently has at least one live
// connection.
func (h *Hub) Connected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}
