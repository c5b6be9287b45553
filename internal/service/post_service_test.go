package service

import (
	"context"
	"testing"

	"elfatih/internal/models"
	"elfatih/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngUpload(t *testing.T, name string, w, h int) ImageUpload {
	return ImageUpload{Filename: name, ContentType: "image/png", Content: testutil.PNG(t, w, h)}
}

func TestPostService_CreateCompleteBuildsOrderedSections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cover := pngUpload(t, "cover.png", 40, 20)
	post, err := f.posts.CreateComplete(ctx, CompletePostInput{
		Post: CreatePostInput{Header: "Launch"},
		Manifest: `[
			{"type": "image", "order_index": 1, "content": "diagram.png"},
			{"type": "text", "order_index": 0, "content": "Hello there"}
		]`,
		Cover:  &cover,
		Images: []ImageUpload{pngUpload(t, "diagram.png", 30, 30)},
	})
	require.NoError(t, err)
	assert.True(t, post.HasImage())
	assert.True(t, post.IsActive)

	got, err := f.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, models.SectionText, got.Sections[0].SectionType)
	assert.Equal(t, 0, got.Sections[0].OrderIndex)
	assert.Equal(t, models.SectionImage, got.Sections[1].SectionType)
	assert.Equal(t, 1, got.Sections[1].OrderIndex)

	blob, err := f.posts.SectionImage(ctx, got.Sections[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", blob.ContentType)
	assert.Equal(t, "diagram.png", blob.Filename)

	_, err = f.posts.SectionImage(ctx, got.Sections[0].ID)
	requireAppError(t, err, models.CodeNotFound)
}

func TestPostService_CreateCompleteRollsBackOnBadEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]struct {
		manifest string
		contains string
	}{
		"missing file":  {`[{"type":"text","content":"ok"},{"type":"image","content":"absent.png"}]`, "Image file 'absent.png' not found in uploaded images"},
		"unknown type":  {`[{"type":"audio","content":"x"}]`, "Invalid section type"},
		"empty text":    {`[{"type":"text","content":"   "}]`, "section 0"},
		"bad video url": {`[{"type":"text","content":"ok"},{"type":"video","content":"ftp://x"}]`, "section 1"},
		"broken json":   {`[{"type":`, "Invalid sections JSON"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.posts.CreateComplete(ctx, CompletePostInput{
				Post:     CreatePostInput{Header: "Broken"},
				Manifest: tc.manifest,
			})
			appErr := requireAppError(t, err, models.CodeValidation)
			assert.Contains(t, appErr.Message, tc.contains)
		})
	}

	posts, err := f.posts.List(ctx, 0, 100, false)
	require.NoError(t, err)
	assert.Empty(t, posts)
	var sections int64
	require.NoError(t, f.db.Model(&models.PostSection{}).Count(&sections).Error)
	assert.Zero(t, sections)
}

func TestPostService_SectionsAndImages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.posts.Create(ctx, CreatePostInput{Header: "  News  ", Description: strPtr("A long enough description")})
	require.NoError(t, err)
	assert.Equal(t, "News", post.Header)

	_, err = f.posts.Create(ctx, CreatePostInput{Header: "Hi"})
	requireAppError(t, err, models.CodeValidation)

	video, err := f.posts.AddVideoSection(ctx, post.ID, "https://example.com/v.mp4", "v.mp4", 2)
	require.NoError(t, err)
	text, err := f.posts.AddTextSection(ctx, post.ID, "body", 1)
	require.NoError(t, err)
	_, err = f.posts.AddTextSection(ctx, 999, "body", 0)
	assert.Equal(t, "Post not found", requireAppError(t, err, models.CodeNotFound).Message)

	_, err = f.posts.UpdateSectionOrder(ctx, video.ID, 0)
	require.NoError(t, err)
	got, err := f.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, video.ID, got.Sections[0].ID)
	assert.Equal(t, text.ID, got.Sections[1].ID)

	_, err = f.posts.RemoveImage(ctx, post.ID)
	assert.Equal(t, "Post image not found", requireAppError(t, err, models.CodeNotFound).Message)

	withImage, err := f.posts.SetImage(ctx, post.ID, pngUpload(t, "c.png", 10, 10))
	require.NoError(t, err)
	assert.True(t, withImage.HasImage())
	blob, err := f.posts.Image(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "c.png", blob.Filename)

	_, err = f.posts.SetImage(ctx, post.ID, ImageUpload{Filename: "x.txt", ContentType: "text/plain", Content: []byte("x")})
	requireAppError(t, err, models.CodeValidation)

	cleared, err := f.posts.RemoveImage(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, cleared.HasImage())

	require.NoError(t, f.posts.DeleteSection(ctx, text.ID))
	err = f.posts.DeleteSection(ctx, text.ID)
	requireAppError(t, err, models.CodeNotFound)
}

func TestPostService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.registerUser(t)

	post, err := f.posts.Create(ctx, CreatePostInput{Header: "Original"})
	require.NoError(t, err)
	_, err = f.posts.AddTextSection(ctx, post.ID, "body", 0)
	require.NoError(t, err)
	_, err = f.feedback.Upsert(ctx, post.ID, user.ID, "positive")
	require.NoError(t, err)

	inactive := false
	updated, err := f.posts.Update(ctx, post.ID, UpdatePostInput{Header: strPtr("Renamed"), IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Header)
	assert.False(t, updated.IsActive)

	_, err = f.posts.Update(ctx, post.ID, UpdatePostInput{Description: strPtr("short")})
	requireAppError(t, err, models.CodeValidation)

	active, err := f.posts.List(ctx, 0, 10, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, f.posts.Delete(ctx, post.ID))
	_, err = f.posts.Get(ctx, post.ID)
	requireAppError(t, err, models.CodeNotFound)

	var sections, feedbacks int64
	require.NoError(t, f.db.Model(&models.PostSection{}).Count(&sections).Error)
	require.NoError(t, f.db.Model(&models.PostFeedback{}).Count(&feedbacks).Error)
	assert.Zero(t, sections)
	assert.Zero(t, feedbacks)

	err = f.posts.Delete(ctx, post.ID)
	requireAppError(t, err, models.CodeNotFound)
}

func TestPostService_ListWithFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.registerUser(t)

	liked, err := f.posts.Create(ctx, CreatePostInput{Header: "Liked"})
	require.NoError(t, err)
	_, err = f.posts.Create(ctx, CreatePostInput{Header: "Untouched"})
	require.NoError(t, err)
	_, err = f.feedback.Upsert(ctx, liked.ID, user.ID, "positive")
	require.NoError(t, err)

	items, err := f.posts.ListWithFeedback(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		if item.Post.ID == liked.ID {
			require.NotNil(t, item.UserFeedback)
			assert.Equal(t, models.FeedbackPositive, *item.UserFeedback)
			assert.Equal(t, 1, item.Post.PositiveFeedbacks)
		} else {
			assert.Nil(t, item.UserFeedback)
		}
	}
}
