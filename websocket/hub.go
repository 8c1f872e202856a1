package websocket

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/google/uuid"
)

// writeWait bounds each event write so a stalled client cannot hold up the hub.
const writeWait = 5 * time.Second

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type Client struct {
	AdministratorID uuid.UUID
	QuizID          uuid.UUID
	Conn            Conn
}

// Hub fans quiz events out to the administrators watching each quiz. The
// subscriber map is only written from Run.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan models.QuizEvent
	done       chan struct{}
	stopOnce   sync.Once

	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}
}

func NewHub(buffer int) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan models.QuizEvent, buffer),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
	}
}

// Register and Unregister return immediately once Run has stopped.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		_ = c.Conn.Close()
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish queues an event without blocking. Events are dropped when the queue is full.
func (h *Hub) Publish(event models.QuizEvent) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("⚠️ Live monitor queue full, dropping %s event for quiz %s", event.Type, event.QuizID)
	}
}

func (h *Hub) Subscribers(quizID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[quizID])
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.stopOnce.Do(func() { close(h.done) })
			h.closeAll()
			return
		case client := <-h.register:
			log.Printf("Live monitor client registered: administrator %s on quiz %s", client.AdministratorID, client.QuizID)
			h.mu.Lock()
			if h.clients[client.QuizID] == nil {
				h.clients[client.QuizID] = make(map[*Client]struct{})
			}
			h.clients[client.QuizID][client] = struct{}{}
			h.mu.Unlock()
		case client := <-h.unregister:
			log.Printf("Live monitor client unregistered: administrator %s on quiz %s", client.AdministratorID, client.QuizID)
			h.remove(client)
		case event := <-h.broadcast:
			h.mu.RLock()
			targets := make([]*Client, 0, len(h.clients[event.QuizID]))
			for c := range h.clients[event.QuizID] {
				targets = append(targets, c)
			}
			h.mu.RUnlock()

			for _, c := range targets {
				err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err == nil {
					err = c.Conn.WriteJSON(event)
				}
				if err != nil {
					log.Printf("Error sending event to administrator %s: %v", c.AdministratorID, err)
					_ = c.Conn.Close()
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.QuizID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.QuizID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for quizID, set := range h.clients {
		for c := range set {
			_ = c.Conn.Close()
		}
		delete(h.clients, quizID)
	}
}
