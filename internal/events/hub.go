package events

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is the message pushed to connected viewers after a write.
type Event struct {
	Type string   `json:"type"`
	Slug string   `json:"slug,omitempty"`
	Keys []string `json:"keys,omitempty"`
}

// Hub fans write notifications out to every connected websocket client.
// Delivery is best-effort: a client that cannot be written to is dropped,
// never retried, and nothing queues for absent clients.
type Hub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	logger *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		conns:  make(map[*websocket.Conn]struct{}),
		logger: logger,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The hub only pushes; cross-origin viewers are expected.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeHTTP upgrades the request and registers the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	count := len(h.conns)
	h.mu.Unlock()
	h.logger.Printf("events client connected (%d total)", count)

	// Inbound messages are ignored; the read loop only notices closure.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()
}

// ScreenUpdated notifies clients that a screen document changed.
func (h *Hub) ScreenUpdated(slug string) {
	h.broadcast(Event{Type: "screen.updated", Slug: slug})
}

// SettingsUpdated notifies clients that settings keys changed.
func (h *Hub) SettingsUpdated(keys []string) {
	h.broadcast(Event{Type: "settings.updated", Keys: keys})
}

func (h *Hub) broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Printf("events client dropped: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[conn]; ok {
		conn.Close()
		delete(h.conns, conn)
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
