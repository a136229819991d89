package services

import (
	"fmt"
	"log"
	"sync"
)

// ChangeEvent tells connected clients that a row changed on a table.
// Only the table name and action travel on the wire; clients refetch the
// collection they care about.
type ChangeEvent struct {
	Table  string `json:"table"`
	Action string `json:"action"` // insert, update, delete
}

// RealtimeClient is one connected SSE subscriber
type RealtimeClient struct {
	ID     string
	UserID string
	Events chan ChangeEvent
}

// RealtimeHub fans change events out to every connected subscriber
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]*RealtimeClient
}

// GlobalHub is the singleton realtime hub
var GlobalHub = NewRealtimeHub()

// NewRealtimeHub creates an empty hub
func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{
		clients: make(map[string]*RealtimeClient),
	}
}

// Register adds a new subscriber to the hub
func (h *RealtimeHub) Register(client *RealtimeClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	log.Printf("[realtime] client registered: id=%s user=%s (total: %d)", client.ID, client.UserID, len(h.clients))
}

// Unregister removes a subscriber and closes its channel
func (h *RealtimeHub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		log.Printf("[realtime] client unregistered: id=%s (total: %d)", clientID, len(h.clients))
	}
}

// Broadcast sends an event to all connected subscribers. Slow consumers
// with a full buffer are skipped rather than blocking the mutation path.
func (h *RealtimeHub) Broadcast(event ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Events <- event:
		default:
			log.Printf("[realtime] client %s buffer full, skipping event", client.ID)
		}
	}
}

// ClientCount returns the number of connected subscribers
func (h *RealtimeHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// PublishChange broadcasts a table change on the global hub. Every
// successful mutation handler calls this after committing its write.
func PublishChange(table, action string) {
	GlobalHub.Broadcast(ChangeEvent{Table: table, Action: action})
}

// FormatSSE renders an event in text/event-stream framing
func FormatSSE(event ChangeEvent) string {
	return fmt.Sprintf("event: change\ndata: {\"table\":%q,\"action\":%q}\n\n", event.Table, event.Action)
}
