package service

import (
	"context"
	"time"

	"elfatih/internal/featureflags"
	"elfatih/internal/middleware"
	"elfatih/internal/models"
	"elfatih/internal/notifications"
	"elfatih/internal/observability"
	"elfatih/internal/repository"
)

// Feedback actions carried by published events.
const (
	FeedbackActionUpsert = "upsert"
	FeedbackActionRemove = "remove"
)

// FeedbackCheck reports whether a user has reacted to a post.
type FeedbackCheck struct {
	HasFeedback  bool                 `json:"has_feedback"`
	FeedbackType *models.FeedbackType `json:"feedback_type"`
	FeedbackDate *time.Time           `json:"feedback_date"`
}

// FeedbackOutcome is the result of an upsert.
type FeedbackOutcome struct {
	Feedback *models.PostFeedback
	Created  bool
	Counters models.FeedbackCounters
}

type FeedbackService struct {
	posts    repository.PostRepository
	feedback repository.FeedbackRepository
	notifier *notifications.Notifier
	flags    *featureflags.Manager
}

func NewFeedbackService(
	posts repository.PostRepository,
	feedback repository.FeedbackRepository,
	notifier *notifications.Notifier,
	flags *featureflags.Manager,
) *FeedbackService {
	return &FeedbackService{posts: posts, feedback: feedback, notifier: notifier, flags: flags}
}

func (s *FeedbackService) requireActivePost(ctx context.Context, postID uint) error {
	post, err := s.posts.GetMeta(ctx, postID)
	if err != nil {
		return translate(err, "Post")
	}
	if !post.IsActive {
		return models.NewValidationError("Cannot give feedback to inactive post")
	}
	return nil
}

// Upsert records or changes userID's reaction to postID.
func (s *FeedbackService) Upsert(ctx context.Context, postID, userID uint, rawType string) (*FeedbackOutcome, error) {
	feedbackType, err := models.ParseFeedbackType(rawType)
	if err != nil {
		return nil, err
	}
	if err := s.requireActivePost(ctx, postID); err != nil {
		return nil, err
	}

	res, err := s.feedback.Upsert(ctx, postID, userID, feedbackType)
	if err != nil {
		return nil, translate(err, "Post")
	}
	observability.FeedbackMutations.WithLabelValues(FeedbackActionUpsert, string(feedbackType)).Inc()
	s.publish(ctx, res.Counters, FeedbackActionUpsert, feedbackType)

	return &FeedbackOutcome{Feedback: res.Feedback, Created: res.Created, Counters: res.Counters}, nil
}

// Remove deletes userID's reaction to postID.
func (s *FeedbackService) Remove(ctx context.Context, postID, userID uint) (*models.FeedbackCounters, error) {
	if _, err := s.posts.GetMeta(ctx, postID); err != nil {
		return nil, translate(err, "Post")
	}
	counters, removed, err := s.feedback.Remove(ctx, postID, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &models.AppError{Code: models.CodeNotFound, Message: "No feedback found to remove"}
		}
		return nil, models.NewInternalError(err)
	}
	observability.FeedbackMutations.WithLabelValues(FeedbackActionRemove, string(removed)).Inc()
	s.publish(ctx, *counters, FeedbackActionRemove, removed)
	return counters, nil
}

func (s *FeedbackService) Check(ctx context.Context, postID, userID uint) (*FeedbackCheck, error) {
	if _, err := s.posts.GetMeta(ctx, postID); err != nil {
		return nil, translate(err, "Post")
	}
	fb, err := s.feedback.Get(ctx, postID, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return &FeedbackCheck{}, nil
		}
		return nil, models.NewInternalError(err)
	}
	created := fb.CreatedAt
	return &FeedbackCheck{HasFeedback: true, FeedbackType: &fb.FeedbackType, FeedbackDate: &created}, nil
}

// Reconcile recomputes the post counters from the feedback rows.
func (s *FeedbackService) Reconcile(ctx context.Context, postID uint) (*models.FeedbackCounters, error) {
	counters, err := s.feedback.Reconcile(ctx, postID)
	if err != nil {
		return nil, translate(err, "Post")
	}
	s.publish(ctx, *counters, "reconcile", "")
	return counters, nil
}

// publish runs after commit. Failures are logged only.
func (s *FeedbackService) publish(ctx context.Context, c models.FeedbackCounters, action string, t models.FeedbackType) {
	if !s.flags.Enabled(featureflags.LiveFeedback, 0) {
		return
	}
	err := s.notifier.PublishFeedback(ctx, notifications.FeedbackEvent{
		PostID:            c.PostID,
		PositiveFeedbacks: int64(c.PositiveFeedbacks),
		NegativeFeedbacks: int64(c.NegativeFeedbacks),
		Action:            action,
		FeedbackType:      string(t),
	})
	if err != nil && middleware.Logger != nil {
		middleware.Logger.WarnContext(ctx, "publish feedback event failed",
			"post_id", c.PostID, "action", action, "error", err)
	}
}
