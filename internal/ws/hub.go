package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope written to every socket.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

type delivery struct {
	userID  uuid.UUID
	message []byte
}

// Hub keeps the live connections of each user. Run owns the registry; the
// other methods only talk to it through channels.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	deliver    chan delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *log.Logger

	now func() time.Time
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		deliver:    make(chan delivery, 1024),
		register:   make(chan *Client),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
		now:        time.Now,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			total := len(set)
			h.mutex.Unlock()
			h.logger.Printf("WS connected | user_id=%s user_clients=%d", client.userID, total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case d := <-h.deliver:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients[d.userID]))
			for c := range h.clients[d.userID] {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- d.message:
				default:
					h.logger.Printf("WS slow client dropped | user_id=%s", d.userID)
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	set, ok := h.clients[client.userID]
	if ok {
		if _, present := set[client]; present {
			delete(set, client)
			close(client.send)
		}
		if len(set) == 0 {
			delete(h.clients, client.userID)
		}
	}
	h.mutex.Unlock()
	h.logger.Printf("WS disconnected | user_id=%s", client.userID)
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for userID, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, userID)
	}
}

// Register hands client to Run and blocks until Run accepts it. Once Run has
// exited it returns false and closes the client's send channel, so no client
// is left outside the registry with an open queue.
func (h *Hub) Register(client *Client) bool {
	if h == nil || client == nil {
		return false
	}
	select {
	case <-h.done:
		close(client.send)
		return false
	default:
	}
	select {
	case h.register <- client:
		return true
	case <-h.done:
		close(client.send)
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// NotifyUser queues event for all connections of userID. It never blocks; when
// the queue is full the event is dropped.
func (h *Hub) NotifyUser(userID uuid.UUID, event string, data any) {
	if h == nil || userID == uuid.Nil {
		return
	}
	b, err := json.Marshal(Event{
		Type:      event,
		Data:      data,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Printf("WS event marshal failed | event=%s err=%v", event, err)
		return
	}

	select {
	case h.deliver <- delivery{userID: userID, message: b}:
	default:
		h.logger.Printf("WS event dropped | event=%s user_id=%s reason=buffer_full", event, userID)
	}
}

func (h *Hub) ClientCount(userID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}
