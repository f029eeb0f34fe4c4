// Package progresshub fans engine events out to WebSocket observers so the
// presentation layer can mirror upload progress without polling the stores.
package progresshub

import (
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/flowdrop/flowdrop-go/types"
)

// Hub holds WebSocket connections and broadcasts progress events to all
// clients. Each connection carries its own write mutex: gorilla/websocket
// supports at most one concurrent writer per connection, and every upload
// goroutine broadcasts on its own ticks.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]*sync.Mutex
}

// New creates a new progress hub.
func New() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Register adds a WebSocket connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = &sync.Mutex{}
}

// Unregister removes a WebSocket connection from the hub.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// ClientCount reports the number of registered observers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends the event as JSON to all registered connections.
// Implements transfer.Broadcaster.
func (h *Hub) Broadcast(event *types.ProgressEvent) {
	if event == nil {
		return
	}
	payload, err := sonic.Marshal(event)
	if err != nil {
		return
	}

	type client struct {
		conn *websocket.Conn
		wmu  *sync.Mutex
	}
	h.mu.RLock()
	clients := make([]client, 0, len(h.conns))
	for c, wmu := range h.conns {
		clients = append(clients, client{conn: c, wmu: wmu})
	}
	h.mu.RUnlock()

	for _, cl := range clients {
		cl.wmu.Lock()
		_ = cl.conn.WriteMessage(websocket.TextMessage, payload)
		cl.wmu.Unlock()
	}
}
