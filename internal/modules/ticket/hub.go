package ticket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // configure in prod
}

// WSEvent is a real-time event pushed to ticket participants.
type WSEvent struct {
	Type     string      `json:"type"`
	TicketID int64       `json:"ticket_id"`
	Payload  interface{} `json:"payload,omitempty"`
}

const EventNewMessage = "new_message"

// connection represents a single WebSocket client watching one ticket.
type connection struct {
	userID   int64
	ticketID int64
	conn     *websocket.Conn
	send     chan []byte
}

// Hub manages the live connections per ticket.
type Hub struct {
	mu      sync.RWMutex
	tickets map[int64]map[*connection]bool
}

func NewHub() *Hub {
	return &Hub{tickets: make(map[int64]map[*connection]bool)}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.tickets[c.ticketID] == nil {
		h.tickets[c.ticketID] = make(map[*connection]bool)
	}
	h.tickets[c.ticketID][c] = true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.tickets[c.ticketID]; ok && conns[c] {
		delete(conns, c)
		close(c.send)
		if len(conns) == 0 {
			delete(h.tickets, c.ticketID)
		}
	}
}

// BroadcastToTicket pushes an event to every participant connected to the
// ticket. Slow consumers are dropped rather than blocking the sender.
func (h *Hub) BroadcastToTicket(ticketID int64, event *WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.tickets[ticketID] {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ServeWS upgrades the request and pumps events until the client leaves.
// Access must be checked by the caller before upgrading.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID, ticketID int64) error {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &connection{
		userID:   userID,
		ticketID: ticketID,
		conn:     ws,
		send:     make(chan []byte, 32),
	}
	h.register(c)

	go c.writePump()
	go c.readPump(h)
	return nil
}

func (c *connection) readPump(h *Hub) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// The feed is one-way; client frames are drained and ignored.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
