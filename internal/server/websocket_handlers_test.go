package server

import (
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"elfatih/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackFeedDisabled(t *testing.T) {
	t.Run("flag off", func(t *testing.T) {
		ts := newTestServer(t, testOptions{withRedis: true})
		admin := ts.admin(t)
		post := ts.createPost(t, admin.token, "Quiet post")

		resp := ts.do(t, http.MethodGet, "/api/v1/ws/posts/"+itoa(post.ID)+"/feedback", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Live feedback is disabled", errorBody(t, resp).Error)
	})

	t.Run("no redis", func(t *testing.T) {
		ts := newTestServer(t, testOptions{featureFlags: "live_feedback=on"})
		resp := ts.do(t, http.MethodGet, "/api/v1/ws/posts/1/feedback", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestFeedbackFeedUpgradeChecks(t *testing.T) {
	ts := newTestServer(t, testOptions{withRedis: true, featureFlags: "live_feedback=on"})
	admin := ts.admin(t)
	post := ts.createPost(t, admin.token, "Live post")

	resp := ts.do(t, http.MethodGet, "/api/v1/ws/posts/9999/feedback", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/v1/ws/posts/"+itoa(post.ID)+"/feedback", "", nil)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/v1/ws/posts/"+itoa(post.ID)+"/feedback?token=bogus", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestFeedbackFeedStreamsCounters(t *testing.T) {
	ts := newTestServer(t, testOptions{withRedis: true, featureFlags: "live_feedback=on"})
	admin := ts.admin(t)
	viewer := ts.user(t)
	post := ts.createPost(t, admin.token, "Streamed post")

	resp := ts.do(t, http.MethodPost, "/api/v1/posts/"+itoa(post.ID)+"/feedback", viewer.token,
		map[string]string{"feedback_type": "positive"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = ts.app.Listener(ln) }()
	t.Cleanup(func() { _ = ts.app.Shutdown() })

	url := "ws://" + ln.Addr().String() + "/api/v1/ws/posts/" + itoa(post.ID) + "/feedback?token=" + viewer.token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	readEvent := func() notifications.FeedbackEvent {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		var ev notifications.FeedbackEvent
		require.NoError(t, json.Unmarshal(msg, &ev))
		return ev
	}

	snapshot := readEvent()
	assert.Equal(t, "snapshot", snapshot.Action)
	assert.Equal(t, post.ID, snapshot.PostID)
	assert.Equal(t, int64(1), snapshot.PositiveFeedbacks)
	assert.Equal(t, 1, ts.feedbackHub.Watchers(post.ID))

	payload, err := json.Marshal(notifications.FeedbackEvent{
		Type:              notifications.EventFeedbackUpdated,
		PostID:            post.ID,
		PositiveFeedbacks: 1,
		NegativeFeedbacks: 4,
		Action:            "upsert",
	})
	require.NoError(t, err)
	ts.feedbackHub.Broadcast(post.ID, string(payload))

	update := readEvent()
	assert.Equal(t, "upsert", update.Action)
	assert.Equal(t, int64(4), update.NegativeFeedbacks)
}
