package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"arena-server/logging"
)

const (
	// WebSocket heartbeat settings to detect disconnected clients.
	pingInterval = 10 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second

	// maxMessageSize bounds inbound frames; input messages are tiny.
	maxMessageSize = 512
)

// Client wraps one WebSocket connection. The simulation goroutine never
// touches the connection itself; it pushes outbound frames onto send and
// addresses the client through its opaque id.
type Client struct {
	id       string // opaque connection handle
	playerID int    // assigned by the simulation loop on registration
	conn     *websocket.Conn
	send     chan []byte
	done     chan struct{}
}

// NewClient wraps an upgraded connection with a fresh connection handle.
func NewClient(conn *websocket.Conn, sendBuffer int) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

// enqueue pushes an outbound frame without blocking. A false return means
// the client's buffer was full and the frame was not queued.
func (c *Client) enqueue(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// ReadPump reads frames from the connection and hands them to the server's
// message handler until the connection drops, then requests unregistration.
func (c *Client) ReadPump(s *ArenaServer) {
	defer func() {
		s.unregister <- c
		close(c.done)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Log.Warnf("conn %s: read error: %v", c.id, err)
			}
			return
		}
		s.handleClientMessage(c, payload)
	}
}

// WritePump drains the send channel onto the connection and keeps the
// heartbeat alive. It exits when the channel closes, the write fails, or
// ReadPump signals done.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
