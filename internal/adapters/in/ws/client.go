package ws

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// DefaultSendBuffer is the number of frames queued per client before
	// updates for it are dropped.
	DefaultSendBuffer = 16
)

// Client is one WebSocket connection. Frames for it are queued on send and
// written by WritePump; topics is guarded by the hub's lock.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	topics map[kernel.UUID]struct{}
	remote string

	// principal is the zero value on relays without authentication.
	principal user.Principal
}

func NewClient(conn *websocket.Conn, remote string, sendBuffer int) *Client {
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return &Client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		topics: make(map[kernel.UUID]struct{}),
		remote: remote,
	}
}

// enqueue reports false when the queue is full. send is never closed, so a
// late broadcast to a departed client cannot panic.
func (c *Client) enqueue(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// Pending returns the number of queued frames.
func (c *Client) Pending() int {
	return len(c.send)
}

// WritePump writes queued frames and keeps the connection alive with pings
// until Close is called or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump hands every inbound message to dispatch until the peer goes away.
func (c *Client) ReadPump(dispatch func(data []byte)) error {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return err
			}
			return nil
		}
		dispatch(data)
	}
}

// Close stops WritePump. It must be called once.
func (c *Client) Close() {
	close(c.done)
}
