package preview

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// MessageType is the type of a message pushed to browsers.
type MessageType string

const (
	MessageSnapshot MessageType = "snapshot"
	MessageError    MessageType = "error"
)

// Message is sent to browsers via WebSocket.
type Message struct {
	Type  MessageType `json:"type"`
	Seq   uint64      `json:"seq"`
	HTML  string      `json:"html,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Hub manages WebSocket connections and fans messages out to them. The last
// snapshot is replayed to every new client.
type Hub struct {
	clients  map[*websocket.Conn]*sync.Mutex
	last     *Message
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHub creates a new hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]*sync.Mutex),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local preview only
			},
		},
		logger: logger,
	}
}

// HandleWebSocket upgrades the request and keeps the connection registered
// until the client disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	writeMu := &sync.Mutex{}
	h.mu.Lock()
	h.clients[conn] = writeMu
	last := h.last
	h.mu.Unlock()

	if last != nil {
		if data, err := json.Marshal(last); err == nil {
			writeMu.Lock()
			conn.WriteMessage(websocket.TextMessage, data)
			writeMu.Unlock()
		}
	}

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(conn)
}

// Broadcast sends msg to every connected client and remembers it for
// clients that connect later.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode preview message", "error", err)
		return
	}

	h.mu.Lock()
	h.last = &msg
	clients := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for conn, wmu := range h.clients {
		clients[conn] = wmu
	}
	h.mu.Unlock()

	for conn, wmu := range clients {
		wmu.Lock()
		err := conn.WriteMessage(websocket.TextMessage, data)
		wmu.Unlock()
		if err != nil {
			h.remove(conn)
		}
	}
}

// Last returns the most recently broadcast message.
func (h *Hub) Last() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.last == nil {
		return Message{}, false
	}
	return *h.last, true
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
	}
}
