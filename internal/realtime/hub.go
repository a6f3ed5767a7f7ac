package realtime

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// hub tracks connected WebSocket clients and fans events out to them.
type hub struct {
	mu      sync.RWMutex
	clients map[string]*clientConn
	log     *zap.Logger
}

type clientConn struct {
	conn *websocket.Conn
	// send serializes writes; gorilla-style connections allow one writer.
	send chan []byte
	done chan struct{}
}

func newHub(log *zap.Logger) *hub {
	return &hub{
		clients: make(map[string]*clientConn),
		log:     log,
	}
}

func (h *hub) add(id string, conn *websocket.Conn) *clientConn {
	c := &clientConn{
		conn: conn,
		send: make(chan []byte, 16),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()

	h.log.Info("realtime client connected",
		zap.String("clientID", id),
		zap.Int("clients", h.count()))
	return c
}

func (h *hub) remove(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	h.mu.Unlock()

	if ok {
		close(c.done)
		h.log.Info("realtime client disconnected", zap.String("clientID", id))
	}
}

// broadcast queues the payload for every connected client. Slow clients
// have their queue skipped rather than blocking the bus.
func (h *hub) broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.log.Warn("dropping event for slow realtime client", zap.String("clientID", id))
		}
	}
}

func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// closeAll disconnects every client, used on shutdown.
func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		close(c.done)
		c.conn.Close()
		delete(h.clients, id)
	}
}
