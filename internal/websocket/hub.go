// Package websocket pushes intake events to connected CRM clients so the UI
// does not have to poll the intake list.
package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is one intake notification pushed to connected clients.
type Event struct {
	Type   string      `json:"type"` // "intake.created" or "intake.status"
	Intake interface{} `json:"intake"`
}

// Hub maintains the set of active clients and broadcasts intake events
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("🔌 Intake feed client connected: %s", client.ID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("🔌 Intake feed client disconnected: %s", client.ID)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Buffer full or client dead; drop the event for this client
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast sends an intake event to every connected client.
func (h *Hub) Broadcast(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling intake event: %v", err)
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		log.Printf("⚠️  Intake feed backlog full, dropping %s event", event.Type)
	}
}
