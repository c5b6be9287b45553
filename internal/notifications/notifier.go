// Package notifications fans post feedback changes out to websocket subscribers.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	feedbackChannelPrefix  = "post_feedback:"
	feedbackChannelPattern = feedbackChannelPrefix + "*"

	// EventFeedbackUpdated is the envelope type pushed after a feedback write commits.
	EventFeedbackUpdated = "feedback_updated"
)

// FeedbackChannel returns the Redis channel carrying events for one post.
func FeedbackChannel(postID uint) string {
	return fmt.Sprintf("%s%d", feedbackChannelPrefix, postID)
}

// FeedbackEvent is the JSON envelope delivered to feed subscribers.
type FeedbackEvent struct {
	Type              string    `json:"type"`
	PostID            uint      `json:"post_id"`
	PositiveFeedbacks int64     `json:"positive_feedbacks"`
	NegativeFeedbacks int64     `json:"negative_feedbacks"`
	Action            string    `json:"action"`
	FeedbackType      string    `json:"feedback_type,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
}

// Notifier publishes feedback events into Redis.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier. A nil client turns every call into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishFeedback marshals event and publishes it on the post's channel.
func (n *Notifier) PublishFeedback(ctx context.Context, event FeedbackEvent) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	if event.Type == "" {
		event.Type = EventFeedbackUpdated
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal feedback event: %w", err)
	}
	return n.rdb.Publish(ctx, FeedbackChannel(event.PostID), string(payload)).Err()
}

// StartFeedbackSubscriber subscribes to every post feedback channel and calls
// onMessage for each message until ctx is cancelled.
func (n *Notifier) StartFeedbackSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, feedbackChannelPattern)
	// Wait for the subscription to be confirmed so early publishes are not lost.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", feedbackChannelPattern, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in FeedbackSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
