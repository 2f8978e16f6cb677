package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/orps-game/orps-server/internal/models"
)

const (
	outBufferSize = 32
	writeTimeout  = 5 * time.Second
)

// client is a single websocket connection with a buffered outbound queue,
// drained by its own write pump.
type client struct {
	conn *websocket.Conn
	out  chan []byte
}

// Hub tracks live connections per user uuid and fans events out to their
// recipients. Recipients with no connection (bots, departed users, the
// server sentinel) are skipped silently.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*client]struct{}
	log     *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		log:     log,
	}
}

// Conn is a registered connection handle, used to unregister on disconnect.
type Conn struct {
	userUUID string
	cl       *client
}

// Register attaches a websocket connection to a user and starts its write
// pump. A user may hold several connections at once; each gets every event.
func (h *Hub) Register(userUUID string, ws *websocket.Conn) *Conn {
	cl := &client{conn: ws, out: make(chan []byte, outBufferSize)}

	h.mu.Lock()
	if h.clients[userUUID] == nil {
		h.clients[userUUID] = make(map[*client]struct{})
	}
	h.clients[userUUID][cl] = struct{}{}
	h.mu.Unlock()

	go cl.writePump()

	return &Conn{userUUID: userUUID, cl: cl}
}

// Unregister detaches the connection and stops its write pump.
func (h *Hub) Unregister(conn *Conn) {
	h.mu.Lock()
	if set, ok := h.clients[conn.userUUID]; ok {
		if _, ok := set[conn.cl]; ok {
			delete(set, conn.cl)
			close(conn.cl.out)
		}
		if len(set) == 0 {
			delete(h.clients, conn.userUUID)
		}
	}
	h.mu.Unlock()
}

// Deliver serializes the event once and queues it on every recipient
// connection. Writes never block the caller: a connection whose queue is
// full drops the event.
func (h *Hub) Deliver(event models.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Errorf("failed to marshal event %s: %v", event.ID, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, uuid := range event.Recipients {
		for cl := range h.clients[uuid] {
			select {
			case cl.out <- payload:
			default:
				h.log.Warnf("dropping event %s for %s: outbound queue full", event.ID, uuid)
			}
		}
	}
}

func (cl *client) writePump() {
	for payload := range cl.out {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := cl.conn.Write(ctx, websocket.MessageText, payload)
		cancel()
		if err != nil {
			return
		}
	}
}
