package game

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// WebSocket heartbeat settings to detect disconnected clients
	PING_INTERVAL = 10 * time.Second // Frequency of sending ping messages
	PONG_WAIT     = 60 * time.Second // Time to wait for a pong before considering the client gone
	WRITE_WAIT    = 10 * time.Second // Per-frame write deadline
)

// Client represents a single connected websocket client.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	playerID string
	session  *Session
	done     chan struct{}
}

// NewClient wraps an upgraded connection.
func NewClient(conn *websocket.Conn, playerID string) *Client {
	return &Client{
		conn:     conn,
		send:     make(chan []byte, 256),
		playerID: playerID,
		done:     make(chan struct{}),
	}
}

// trySend queues a frame without blocking; a full send buffer drops the
// frame (the next snapshot supersedes it anyway).
func (c *Client) trySend(b []byte) {
	select {
	case c.send <- b:
	default:
		log.Printf("Client %s: send buffer full, dropping frame", c.playerID)
	}
}

// readPump reads frames until the connection dies, handing each one to the
// server's message handler. It unregisters the client on exit.
func (c *Client) readPump(server *GameServer) {
	defer func() {
		server.unregister <- c
		close(c.done)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(PONG_WAIT))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(PONG_WAIT))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Client %s: unexpected websocket close: %v", c.playerID, err)
			}
			break
		}
		server.handleClientMessage(c, message)
	}
}

// writePump drains the send channel onto the wire and keeps the heartbeat
// going. Terminates on write error or when readPump signals done.
func (c *Client) writePump() {
	ticker := time.NewTicker(PING_INTERVAL)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(WRITE_WAIT))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Client %s: write error: %v", c.playerID, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(WRITE_WAIT))
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
