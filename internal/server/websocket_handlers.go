package server

import (
	"encoding/json"
	"errors"
	"log"

	"elfatih/internal/featureflags"
	"elfatih/internal/models"
	"elfatih/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	localPostID   = "postID"
	localViewerID = "viewerID"
	localSnapshot = "feedbackSnapshot"
)

// websocketAuth verifies a token when one is supplied. Anonymous viewers may
// still watch a public feed.
func (s *Server) websocketAuth() fiber.Handler {
	verify := s.authenticator.WebSocket()
	return func(c *fiber.Ctx) error {
		if c.Query("token") == "" && c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		return verify(c)
	}
}

// FeedbackFeedUpgrade validates the post and the upgrade request before the
// websocket handshake.
func (s *Server) FeedbackFeedUpgrade(c *fiber.Ctx) error {
	postID, ok := pathID(c)
	if !ok {
		return nil
	}
	if s.feedbackHub == nil || !s.featureFlags.Enabled(featureflags.LiveFeedback, callerID(c)) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			&models.AppError{Code: models.CodeNotFound, Message: "Live feedback is disabled"})
	}
	post, err := s.postService.Get(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	snapshot, err := json.Marshal(notifications.FeedbackEvent{
		Type:              notifications.EventFeedbackUpdated,
		PostID:            post.ID,
		PositiveFeedbacks: int64(post.PositiveFeedbacks),
		NegativeFeedbacks: int64(post.NegativeFeedbacks),
		Action:            "snapshot",
		OccurredAt:        post.UpdatedAt.UTC(),
	})
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}
	c.Locals(localPostID, post.ID)
	c.Locals(localViewerID, callerID(c))
	c.Locals(localSnapshot, snapshot)
	return c.Next()
}

// FeedbackFeedHandler streams counter snapshots for one post. The first frame
// is the current state; later frames follow every committed feedback change.
func (s *Server) FeedbackFeedHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		postID, _ := conn.Locals(localPostID).(uint)
		userID, _ := conn.Locals(localViewerID).(uint)

		client, err := s.feedbackHub.Register(postID, userID, conn)
		if err != nil {
			if !errors.Is(err, notifications.ErrHubClosed) {
				log.Printf("feedback feed: register post %d: %v", postID, err)
			}
			msg, _ := json.Marshal(fiber.Map{"error": err.Error()})
			_ = conn.WriteMessage(websocket.TextMessage, msg)
			_ = conn.Close()
			return
		}

		if snapshot, ok := conn.Locals(localSnapshot).([]byte); ok {
			client.TrySend(snapshot)
		}

		client.Serve()
	})
}
