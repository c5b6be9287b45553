package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"elfatih/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	maxConnsPerPost = 500
	maxTotalConns   = 10000
)

var (
	// ErrHubFull is returned when the process-wide connection cap is reached.
	ErrHubFull = errors.New("server connection limit reached")
	// ErrPostFeedFull is returned when a single post has too many watchers.
	ErrPostFeedFull = errors.New("post connection limit reached")
	// ErrHubClosed is returned by Register after Shutdown.
	ErrHubClosed = errors.New("feedback hub is shut down")
)

// FeedbackHub maps postID -> connected clients.
type FeedbackHub struct {
	mu         sync.RWMutex
	conns      map[uint]map[*Client]struct{}
	totalConns int
	closed     bool
	logger     *observability.FeedLogger
}

// NewFeedbackHub creates an empty hub.
func NewFeedbackHub() *FeedbackHub {
	return &FeedbackHub{
		conns:  make(map[uint]map[*Client]struct{}),
		logger: observability.NewFeedLogger("feedback"),
	}
}

// Register attaches conn to the feed of postID.
func (h *FeedbackHub) Register(postID, userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if h.totalConns >= maxTotalConns {
		return nil, ErrHubFull
	}

	m, ok := h.conns[postID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[postID] = m
	}
	if len(m) >= maxConnsPerPost {
		return nil, ErrPostFeedFull
	}

	client := newClient(h, conn, postID, userID)
	m[client] = struct{}{}
	h.totalConns++
	observability.WebSocketConnectionsTotal.Inc()
	h.logger.Joined(context.Background(), postID, userID)

	return client, nil
}

// UnregisterClient removes client and closes its send channel. Safe to call twice.
func (h *FeedbackHub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.conns[client.PostID]
	if !ok {
		return
	}
	if _, exists := m[client]; !exists {
		return
	}
	delete(m, client)
	if len(m) == 0 {
		delete(h.conns, client.PostID)
	}
	h.totalConns--
	client.close()
	observability.WebSocketConnectionsTotal.Dec()
	h.logger.Left(context.Background(), client.PostID, client.UserID, "unregistered")
}

// Broadcast sends message to every watcher of postID.
func (h *FeedbackHub) Broadcast(postID uint, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.conns[postID]; ok {
		data := []byte(message)
		for c := range clients {
			c.TrySend(data)
		}
	}
}

// Watchers reports how many clients follow postID.
func (h *FeedbackHub) Watchers(postID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[postID])
}

// StartWiring subscribes the hub to the notifier so events published by any
// instance reach locally connected clients.
func (h *FeedbackHub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartFeedbackSubscriber(ctx, func(channel, payload string) {
		postID, err := parseFeedbackChannel(channel)
		if err != nil {
			h.logger.Error(ctx, 0, err)
			return
		}
		h.Broadcast(postID, payload)
	})
}

func parseFeedbackChannel(channel string) (uint, error) {
	if !strings.HasPrefix(channel, feedbackChannelPrefix) {
		return 0, fmt.Errorf("unexpected channel %q", channel)
	}
	var postID uint
	if _, err := fmt.Sscanf(channel, feedbackChannelPrefix+"%d", &postID); err != nil {
		return 0, err
	}
	return postID, nil
}

// Shutdown sends a close frame to every client and drops all registrations.
func (h *FeedbackHub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true

	for postID, clients := range h.conns {
		for client := range clients {
			client.close()
			observability.WebSocketConnectionsTotal.Dec()
			if client.Conn == nil {
				continue
			}
			if err := client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
				h.logger.Error(ctx, postID, err)
			}
			if err := client.Conn.Close(); err != nil {
				h.logger.Error(ctx, postID, err)
			}
			h.logger.Left(ctx, postID, client.UserID, "shutdown")
		}
	}
	h.conns = make(map[uint]map[*Client]struct{})
	h.totalConns = 0
	return nil
}
