package sse

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// TimetableStatusEvent is pushed to dashboard clients whenever a
// timetable changes state (engine result arrives, admin reviews it).
type TimetableStatusEvent struct {
	TimetableID uuid.UUID `json:"timetable_id"`
	BatchID     uuid.UUID `json:"batch_id"`
	Status      string    `json:"status"`
}

type Client struct {
	ID      string
	UserID  uuid.UUID
	Batches map[uuid.UUID]bool
	Send    chan []byte
}

type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *BatchMessage
	mu         sync.RWMutex
}

type BatchMessage struct {
	BatchID uuid.UUID
	Event   Event
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *BatchMessage, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Event)
			for _, client := range h.clients {
				if client.Batches[msg.BatchID] {
					select {
					case client.Send <- data:
					default:
						// Client buffer full, skip
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) SubscribeToBatch(clientID string, batchID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		client.Batches[batchID] = true
	}
}

func (h *Hub) UnsubscribeFromBatch(clientID string, batchID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		delete(client.Batches, batchID)
	}
}

func (h *Hub) BroadcastTimetableStatus(batchID, timetableID uuid.UUID, status string) {
	h.broadcast <- &BatchMessage{
		BatchID: batchID,
		Event: Event{
			Type: "timetable_status",
			Data: TimetableStatusEvent{
				TimetableID: timetableID,
				BatchID:     batchID,
				Status:      status,
			},
		},
	}
}
