package server

import (
	"github.com/gofiber/fiber/v2"
)

// FeedbackRequest is the body of POST /posts/:id/feedback.
type FeedbackRequest struct {
	FeedbackType string `json:"feedback_type"`
}

// UpsertFeedback handles POST /api/v1/posts/:id/feedback
// @Summary Like or dislike a post
// @Description A second call with the other type switches the reaction. Counters stay consistent with the feedback rows.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body FeedbackRequest true "positive or negative"
// @Success 200 {object} object{message=string,created=bool,feedback=models.PostFeedback,counters=models.FeedbackCounters}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/feedback [post]
func (s *Server) UpsertFeedback(c *fiber.Ctx) error {
	postID, ok := pathID(c)
	if !ok {
		return nil
	}
	var req FeedbackRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	outcome, err := s.feedbackService.Upsert(c.UserContext(), postID, actorFrom(c).UserID, req.FeedbackType)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Feedback added successfully",
		"created":  outcome.Created,
		"feedback": outcome.Feedback,
		"counters": outcome.Counters,
	})
}

// RemoveFeedback handles DELETE /api/v1/posts/:id/feedback
// @Summary Withdraw own reaction
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string,post_id=int,counters=models.FeedbackCounters}
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/feedback [delete]
func (s *Server) RemoveFeedback(c *fiber.Ctx) error {
	postID, ok := pathID(c)
	if !ok {
		return nil
	}
	counters, err := s.feedbackService.Remove(c.UserContext(), postID, actorFrom(c).UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Feedback removed successfully",
		"post_id":  postID,
		"counters": counters,
	})
}

// CheckFeedback handles GET /api/v1/posts/:id/feedback/check
// @Summary Whether the caller reacted to a post
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{post_id=int,user_id=int,has_feedback=bool,feedback_type=string,feedback_date=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/feedback/check [get]
func (s *Server) CheckFeedback(c *fiber.Ctx) error {
	postID, ok := pathID(c)
	if !ok {
		return nil
	}
	userID := actorFrom(c).UserID
	check, err := s.feedbackService.Check(c.UserContext(), postID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"post_id":       postID,
		"user_id":       userID,
		"has_feedback":  check.HasFeedback,
		"feedback_type": check.FeedbackType,
		"feedback_date": check.FeedbackDate,
	})
}
