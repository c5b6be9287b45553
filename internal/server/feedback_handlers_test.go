package server

import (
	"net/http"
	"testing"

	"elfatih/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedbackReply struct {
	Message  string                  `json:"message"`
	Created  bool                    `json:"created"`
	Feedback models.PostFeedback     `json:"feedback"`
	Counters models.FeedbackCounters `json:"counters"`
}

type feedbackCheck struct {
	PostID       uint                 `json:"post_id"`
	UserID       uint                 `json:"user_id"`
	HasFeedback  bool                 `json:"has_feedback"`
	FeedbackType *models.FeedbackType `json:"feedback_type"`
}

func TestFeedbackFlow(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)
	alice := ts.user(t)
	bob := ts.user(t)
	post := ts.createPost(t, admin.token, "Rate me")
	path := "/api/v1/posts/" + itoa(post.ID) + "/feedback"

	send := func(token, kind string) feedbackReply {
		t.Helper()
		resp := ts.do(t, http.MethodPost, path, token, map[string]string{"feedback_type": kind})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var out feedbackReply
		decodeBody(t, resp, &out)
		return out
	}

	first := send(alice.token, "positive")
	assert.Equal(t, "Feedback added successfully", first.Message)
	assert.True(t, first.Created)
	assert.Equal(t, 1, first.Counters.PositiveFeedbacks)

	send(bob.token, "positive")
	switched := send(alice.token, "negative")
	assert.False(t, switched.Created)
	assert.Equal(t, models.FeedbackNegative, switched.Feedback.FeedbackType)
	assert.Equal(t, 1, switched.Counters.PositiveFeedbacks)
	assert.Equal(t, 1, switched.Counters.NegativeFeedbacks)

	// Repeating the same reaction changes nothing.
	again := send(alice.token, "negative")
	assert.Equal(t, 1, again.Counters.NegativeFeedbacks)

	resp := ts.do(t, http.MethodGet, path+"/check", alice.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var check feedbackCheck
	decodeBody(t, resp, &check)
	assert.True(t, check.HasFeedback)
	require.NotNil(t, check.FeedbackType)
	assert.Equal(t, models.FeedbackNegative, *check.FeedbackType)
	assert.Equal(t, alice.user.ID, check.UserID)

	resp = ts.do(t, http.MethodGet, "/api/v1/posts/with-feedback", alice.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list postList
	decodeBody(t, resp, &list)
	require.Len(t, list.Posts, 1)
	require.NotNil(t, list.Posts[0].UserFeedback)
	assert.Equal(t, models.FeedbackNegative, *list.Posts[0].UserFeedback)
	assert.Equal(t, 1, list.Posts[0].PositiveFeedbacks)

	resp = ts.do(t, http.MethodDelete, path, alice.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var removed struct {
		Message  string                  `json:"message"`
		PostID   uint                    `json:"post_id"`
		Counters models.FeedbackCounters `json:"counters"`
	}
	decodeBody(t, resp, &removed)
	assert.Equal(t, "Feedback removed successfully", removed.Message)
	assert.Equal(t, post.ID, removed.PostID)
	assert.Zero(t, removed.Counters.NegativeFeedbacks)
	assert.Equal(t, 1, removed.Counters.PositiveFeedbacks)

	resp = ts.do(t, http.MethodDelete, path, alice.token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No feedback found to remove", errorBody(t, resp).Error)

	resp = ts.do(t, http.MethodGet, path+"/check", alice.token, nil)
	decodeBody(t, resp, &check)
	assert.False(t, check.HasFeedback)
	assert.Nil(t, check.FeedbackType)

	resp = ts.do(t, http.MethodGet, "/api/v1/posts/"+itoa(post.ID), "", nil)
	var stored PostResponse
	decodeBody(t, resp, &stored)
	assert.Equal(t, 1, stored.PositiveFeedbacks)
	assert.Zero(t, stored.NegativeFeedbacks)
}

func TestFeedbackValidation(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)
	acct := ts.user(t)
	post := ts.createPost(t, admin.token, "Strict post")
	path := "/api/v1/posts/" + itoa(post.ID) + "/feedback"

	resp := ts.do(t, http.MethodPost, path, acct.token, map[string]string{"feedback_type": "meh"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// A body with an undeclared field is rejected before anything is stored.
	resp = ts.do(t, http.MethodPost, path, acct.token, map[string]any{"feedback_type": "positive", "bogus": 1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var stored models.Post
	require.NoError(t, ts.db.First(&stored, post.ID).Error)
	assert.Zero(t, stored.PositiveFeedbacks)
	var rows int64
	require.NoError(t, ts.db.Model(&models.PostFeedback{}).Where("post_id = ?", post.ID).Count(&rows).Error)
	assert.Zero(t, rows)

	resp = ts.do(t, http.MethodPost, path, "", map[string]string{"feedback_type": "positive"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/api/v1/posts/9999/feedback", acct.token, map[string]string{"feedback_type": "positive"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = ts.do(t, http.MethodPut, "/api/v1/posts/"+itoa(post.ID), admin.token, map[string]any{"is_active": false})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, path, acct.token, map[string]string{"feedback_type": "positive"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cannot give feedback to inactive post", errorBody(t, resp).Error)
}

func TestReconcileFeedback(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)
	acct := ts.user(t)
	post := ts.createPost(t, admin.token, "Drifted counters")

	resp := ts.do(t, http.MethodPost, "/api/v1/posts/"+itoa(post.ID)+"/feedback", acct.token, map[string]string{"feedback_type": "positive"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, ts.db.Model(&models.Post{}).Where("id = ?", post.ID).
		Updates(map[string]any{"positive_feedbacks": 7, "negative_feedbacks": 3}).Error)

	resp = ts.do(t, http.MethodPost, "/api/v1/admin/posts/"+itoa(post.ID)+"/reconcile-feedback", admin.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var counters models.FeedbackCounters
	decodeBody(t, resp, &counters)
	assert.Equal(t, 1, counters.PositiveFeedbacks)
	assert.Zero(t, counters.NegativeFeedbacks)
}
