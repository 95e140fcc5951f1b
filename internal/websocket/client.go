package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Role tags a connection's declared audience at connect time.
type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

// Client is one live connection to the hub. Pin scopes it to a session's
// audiences; PlayerID is empty for admin viewers.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	log  zerolog.Logger

	// sendMu guards send against a teardown racing with an in-flight
	// SendEvent from a dispatch goroutine.
	sendMu sync.Mutex
	send   chan []byte
	closed bool

	Pin      string
	PlayerID string
	Role     Role
}

// NewClient wraps an upgraded connection. Call ReadPump and WritePump in
// separate goroutines to start traffic.
func NewClient(hub *Hub, conn *websocket.Conn, pin, playerID string, role Role, log zerolog.Logger) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		log:      log,
		Pin:      pin,
		PlayerID: playerID,
		Role:     role,
	}
}

// ReadPump relays inbound messages to the hub until the connection dies,
// then unregisters the client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn().Err(err).Msg("Unexpected close")
			}
			return
		}
		c.hub.Inbound <- &ClientRequest{Client: c, Raw: raw}
	}
}

// WritePump drains the send channel onto the wire and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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

// SendEvent queues a typed event for delivery. Events to a client whose
// send buffer is full are dropped rather than blocking the hub, and events
// to a torn-down client are dropped silently.
func (c *Client) SendEvent(v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		c.log.Error().Err(err).Msg("Marshal event failed")
		return
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- payload:
	default:
		c.log.Warn().Str("pin", c.Pin).Msg("Send buffer full, dropping event")
	}
}

// closeSend shuts the send channel exactly once. Safe to call concurrently
// with SendEvent and safe to call twice.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// SendError reports a rejected request back to this connection only.
func (c *Client) SendError(msg string) {
	c.SendEvent(ErrorEvent{Event: EventError, Error: msg})
}
