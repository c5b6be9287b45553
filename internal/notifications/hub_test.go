package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func TestFeedbackChannel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "post_feedback:1", FeedbackChannel(1))
	assert.Equal(t, "post_feedback:420", FeedbackChannel(420))

	id, err := parseFeedbackChannel("post_feedback:420")
	require.NoError(t, err)
	assert.Equal(t, uint(420), id)

	_, err = parseFeedbackChannel("chat:conv:1")
	assert.Error(t, err)
	_, err = parseFeedbackChannel("post_feedback:abc")
	assert.Error(t, err)
}

func TestFeedbackHub_BroadcastReachesOnlyThatPost(t *testing.T) {
	hub := NewFeedbackHub()

	a, err := hub.Register(1, 10, nil)
	require.NoError(t, err)
	b, err := hub.Register(2, 11, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, hub.Watchers(1))

	hub.Broadcast(1, `{"type":"feedback_updated"}`)

	select {
	case msg := <-a.Send:
		assert.JSONEq(t, `{"type":"feedback_updated"}`, string(msg))
	default:
		t.Fatal("expected message for post 1 watcher")
	}
	assert.Len(t, b.Send, 0)

	require.NoError(t, hub.Shutdown(context.Background()))
}

func TestFeedbackHub_UnregisterClosesSendOnce(t *testing.T) {
	hub := NewFeedbackHub()
	c, err := hub.Register(5, 0, nil)
	require.NoError(t, err)

	hub.UnregisterClient(c)
	hub.UnregisterClient(c)

	_, open := <-c.Send
	assert.False(t, open)
	assert.Equal(t, 0, hub.Watchers(5))

	// TrySend on a closed client must not panic.
	assert.False(t, c.TrySend([]byte("late")))
}

func TestFeedbackHub_PerPostLimit(t *testing.T) {
	hub := NewFeedbackHub()
	for i := 0; i < maxConnsPerPost; i++ {
		_, err := hub.Register(9, uint(i), nil)
		require.NoError(t, err)
	}
	_, err := hub.Register(9, 0, nil)
	assert.ErrorIs(t, err, ErrPostFeedFull)

	_, err = hub.Register(10, 0, nil)
	assert.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))
	_, err = hub.Register(10, 0, nil)
	assert.ErrorIs(t, err, ErrHubClosed)
}

func TestClient_TrySendDropsWhenBufferFull(t *testing.T) {
	hub := NewFeedbackHub()
	c, err := hub.Register(3, 0, nil)
	require.NoError(t, err)

	for i := 0; i < sendBufferSize; i++ {
		require.True(t, c.TrySend([]byte("x")))
	}
	assert.False(t, c.TrySend([]byte("overflow")))
}

func TestFeedbackHub_StartWiringForwardsPublishedEvents(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewFeedbackHub()
	notifier := NewNotifier(rdb)
	require.NoError(t, hub.StartWiring(ctx, notifier))

	client, err := hub.Register(42, 7, nil)
	require.NoError(t, err)

	require.NoError(t, notifier.PublishFeedback(context.Background(), FeedbackEvent{
		PostID:            42,
		PositiveFeedbacks: 3,
		NegativeFeedbacks: 1,
		Action:            "upsert",
		FeedbackType:      "like",
	}))

	var got []byte
	assert.Eventually(t, func() bool {
		select {
		case got = <-client.Send:
			return true
		default:
			return false
		}
	}, testEventuallyTimeout, testPollInterval)

	var event FeedbackEvent
	require.NoError(t, json.Unmarshal(got, &event))
	assert.Equal(t, EventFeedbackUpdated, event.Type)
	assert.Equal(t, uint(42), event.PostID)
	assert.Equal(t, int64(3), event.PositiveFeedbacks)
	assert.Equal(t, int64(1), event.NegativeFeedbacks)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishFeedback(context.Background(), FeedbackEvent{PostID: 1}))
	assert.NoError(t, n.StartFeedbackSubscriber(context.Background(), func(string, string) {}))

	var nilNotifier *Notifier
	assert.NoError(t, nilNotifier.PublishFeedback(context.Background(), FeedbackEvent{PostID: 1}))
}

func TestNotifier_SubscriberStopsOnCancel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())

	payloads := make(chan string, 4)
	require.NoError(t, n.StartFeedbackSubscriber(ctx, func(_ string, payload string) {
		payloads <- payload
	}))

	require.NoError(t, n.PublishFeedback(context.Background(), FeedbackEvent{PostID: 1, Action: "before"}))
	assert.Eventually(t, func() bool { return len(payloads) >= 1 }, testEventuallyTimeout, testPollInterval)

	cancel()
	time.Sleep(20 * time.Millisecond)
	for len(payloads) > 0 {
		<-payloads
	}

	require.NoError(t, n.PublishFeedback(context.Background(), FeedbackEvent{PostID: 1, Action: "after"}))
	assert.Never(t, func() bool { return len(payloads) > 0 }, 10*testPollInterval, testPollInterval)
}
