package notifications

import (
	"context"
	"sync"
	"time"

	"elfatih/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// Viewers only send control frames.
	maxMessageSize = 1024
	sendBufferSize = 64

	hubLabel = "feedback"
)

// Client is one websocket viewer of a post's feedback feed.
type Client struct {
	hub  *FeedbackHub
	Conn *websocket.Conn

	// Send is closed by the hub when the client is dropped.
	Send chan []byte

	PostID uint
	UserID uint // zero for anonymous viewers

	mu     sync.Mutex
	closed bool
}

func newClient(hub *FeedbackHub, conn *websocket.Conn, postID, userID uint) *Client {
	return &Client{
		hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, sendBufferSize),
		PostID: postID,
		UserID: userID,
	}
}

// close shuts the send queue once. It reports whether this call did it.
func (c *Client) close() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.closed = true
	close(c.Send)
	return true
}

// TrySend queues message without blocking. Frames carry absolute counters,
// so dropping one under backpressure loses nothing the next frame won't fix.
func (c *Client) TrySend(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		observability.WebSocketBackpressureDrops.WithLabelValues(hubLabel, "closed").Inc()
		return false
	}
	select {
	case c.Send <- message:
		return true
	default:
		observability.WebSocketBackpressureDrops.WithLabelValues(hubLabel, "full").Inc()
		return false
	}
}

// Serve runs the connection until the peer leaves or the hub drops the
// client. Writes happen on a separate goroutine; Serve itself reads.
func (c *Client) Serve() {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.writeLoop()
	}()

	c.readLoop()
	c.hub.UnregisterClient(c)
	<-done
}

func (c *Client) readLoop() {
	c.Conn.SetReadLimit(maxMessageSize)
	extend := func(string) error { return c.Conn.SetReadDeadline(time.Now().Add(pongWait)) }
	_ = extend("")
	c.Conn.SetPongHandler(extend)

	for {
		_, _, err := c.Conn.ReadMessage()
		if err == nil {
			continue
		}
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
			c.hub.logger.Error(context.Background(), c.PostID, err)
		}
		return
	}
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer func() { _ = c.Conn.Close() }()

	write := func(kind int, payload []byte) error {
		_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		return c.Conn.WriteMessage(kind, payload)
	}

	for {
		var err error
		select {
		case msg, ok := <-c.Send:
			if !ok {
				_ = write(websocket.CloseMessage, []byte{})
				return
			}
			err = write(websocket.TextMessage, msg)
		case <-ticker.C:
			err = write(websocket.PingMessage, nil)
		}
		if err != nil {
			c.hub.logger.Left(context.Background(), c.PostID, c.UserID, "write failed")
			return
		}
	}
}
