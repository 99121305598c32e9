// internal/ws/hub.go
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/versehub/versehub/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// writeTimeout bounds a single outbound frame; a client that cannot keep
// up is dropped rather than stalling a broadcast.
const writeTimeout = 5 * time.Second

// Client is one live WebSocket connection. Username is empty for
// anonymous connections.
type Client struct {
	conn     *websocket.Conn
	Username string
	JoinedAt time.Time
}

// Message is the frame shape exchanged with clients.
type Message struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	From    string `json:"from,omitempty"`
}

// Hub tracks live connections and fans broadcast frames out to all of
// them. The clients map is only touched under the mutex.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*Client),
	}
}

// Register adds a connection to the hub and returns its client record.
func (h *Hub) Register(conn *websocket.Conn, username string) *Client {
	client := &Client{
		conn:     conn,
		Username: username,
		JoinedAt: time.Now().UTC(),
	}

	h.mu.Lock()
	h.clients[conn] = client
	count := len(h.clients)
	h.mu.Unlock()

	customLog.Printf("Hub: client registered (user=%q, connections=%d)", username, count)
	return client
}

// Unregister removes a connection from the hub. Closing the connection is
// the caller's responsibility.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	count := len(h.clients)
	h.mu.Unlock()

	customLog.Printf("Hub: client unregistered (connections=%d)", count)
}

// Broadcast sends a frame to every connected client. Send failures drop
// the failing client; the rest still receive the frame.
func (h *Hub) Broadcast(ctx context.Context, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		customLog.Warnf("Hub: failed to marshal broadcast frame: %v", err)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := conn.Write(writeCtx, websocket.MessageText, payload)
		cancel()
		if err != nil {
			customLog.Warnf("Hub: dropping client after failed broadcast write: %v", err)
			h.Unregister(conn)
			_ = conn.Close(websocket.StatusPolicyViolation, "write failed")
		}
	}
}

// Send writes a frame to a single connection.
func (h *Hub) Send(ctx context.Context, conn *websocket.Conn, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, payload)
}

// ConnectionCount returns the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
