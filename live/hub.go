package live

import (
	"encoding/json"
	"sync"
)

// Client is one dashboard connection watching an event's live counters.
type Client struct {
	Send    chan []byte
	EventID string
	UserID  string
}

type broadcastMsg struct {
	EventID string
	Data    []byte
}

// Hub fans event updates out to every dashboard watching that event.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	stop       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		stop:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.EventID] == nil {
				h.rooms[c.EventID] = make(map[*Client]bool)
			}
			h.rooms[c.EventID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.EventID]; conns != nil {
				if conns[c] {
					delete(conns, c)
					close(c.Send)
				}
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.EventID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.EventID], c)
				}
			}
			h.mu.Unlock()

		case <-h.stop:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop closes every client channel and ends the Run loop.
func (h *Hub) Stop() {
	close(h.stop)
}

// Update is one live counter change pushed to dashboards.
type Update struct {
	Action  string `json:"action"`
	EventID string `json:"eventid"`
	Entity  string `json:"entity,omitempty"`
	ID      string `json:"id,omitempty"`
}

// Broadcast queues an update for everyone watching the event.
func (h *Hub) Broadcast(eventID string, update Update) {
	data, err := json.Marshal(update)
	if err != nil {
		return
	}
	h.broadcast <- broadcastMsg{EventID: eventID, Data: data}
}
