package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"skill-match/internal/logging"
	"skill-match/internal/session"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Client pumps frames between one websocket connection and its session.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	session *session.Session
	logger  logging.Logger

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, logger logging.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		logger: logging.OrNop(logger),
		send:   make(chan []byte, sendBuffer),
	}
}

// Attach binds the session whose events this client writes.
func (c *Client) Attach(s *session.Session) {
	c.session = s
	c.logger = c.logger.With("session_id", s.ID())
}

func (c *Client) SessionID() string {
	if c.session == nil {
		return ""
	}
	return c.session.ID()
}

// Emit queues a session event. Events are dropped when the buffer is full
// or the client is gone.
func (c *Client) Emit(evt session.Event) {
	b, err := json.Marshal(evt)
	if err != nil {
		c.logger.Error(context.Background(), "ws encode event failed", "type", evt.Type, "error", err)
		return
	}
	if !c.enqueue(b) {
		c.logger.Warn(context.Background(), "ws event dropped", "type", evt.Type)
	}
}

func (c *Client) enqueue(b []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// ReadPump decodes inbound messages until the connection fails, then
// closes the session.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		if c.session != nil {
			c.session.Close()
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg session.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn(context.Background(), "ws read failed", "error", err)
			}
			return
		}
		if c.session == nil {
			continue
		}
		if err := c.session.Handle(msg); err != nil {
			c.logger.Debug(c.session.Context(), "ws message rejected", "type", msg.Type, "error", err)
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
