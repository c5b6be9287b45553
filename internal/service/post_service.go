package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"elfatih/internal/models"
	"elfatih/internal/observability"
	"elfatih/internal/repository"
	"elfatih/internal/storage"
	"elfatih/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// CreatePostInput is the payload for a new post.
type CreatePostInput struct {
	Header      string  `json:"header" validate:"required,min=3,max=200"`
	Description *string `json:"description" validate:"omitnil,min=10,max=5000"`
}

func (in *CreatePostInput) normalize() {
	in.Header = strings.TrimSpace(in.Header)
	in.Description = trimOptional(in.Description)
}

// UpdatePostInput is a partial post update. An empty description clears it.
type UpdatePostInput struct {
	Header      *string `json:"header" validate:"omitnil,min=3,max=200"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// trimOptional trims s and maps blank values to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Blob is a stored binary with the metadata needed to serve it.
type Blob struct {
	Data        []byte
	Filename    string
	ContentType string
}

// PostWithFeedback pairs a post with the caller's own feedback, if any.
type PostWithFeedback struct {
	Post         models.Post
	UserFeedback *models.FeedbackType
}

// SectionManifestEntry is one element of the complete-post manifest. For
// image entries Content names an uploaded file; for video entries it is the
// URL.
type SectionManifestEntry struct {
	Type       string `json:"type"`
	OrderIndex int    `json:"order_index"`
	Content    string `json:"content"`
}

// CompletePostInput creates a post, its cover and all of its sections at once.
type CompletePostInput struct {
	Post     CreatePostInput
	Manifest string
	Cover    *ImageUpload
	Images   []ImageUpload
}

type PostService struct {
	posts    repository.PostRepository
	sections repository.SectionRepository
	feedback repository.FeedbackRepository
	images   *ImageService
	mirror   *storage.Replicator
}

func NewPostService(
	posts repository.PostRepository,
	sections repository.SectionRepository,
	feedback repository.FeedbackRepository,
	images *ImageService,
	mirror *storage.Replicator,
) *PostService {
	return &PostService{posts: posts, sections: sections, feedback: feedback, images: images, mirror: mirror}
}

func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	post := &models.Post{Header: in.Header, Description: in.Description, IsActive: true}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	post.Sections = []models.PostSection{}
	return post, nil
}

// Get returns the post with its sections in display order.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Post")
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context, skip, limit int, activeOnly bool) ([]models.Post, error) {
	posts, err := s.posts.List(ctx, skip, limit, activeOnly)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListWithFeedback lists active posts annotated with userID's feedback.
func (s *PostService) ListWithFeedback(ctx context.Context, userID uint, skip, limit int) ([]PostWithFeedback, error) {
	posts, err := s.List(ctx, skip, limit, true)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	types, err := s.feedback.TypesForUser(ctx, userID, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	out := make([]PostWithFeedback, 0, len(posts))
	for _, p := range posts {
		item := PostWithFeedback{Post: p}
		if t, ok := types[p.ID]; ok {
			item.UserFeedback = &t
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *PostService) Update(ctx context.Context, id uint, in UpdatePostInput) (*models.Post, error) {
	if in.Header != nil {
		h := strings.TrimSpace(*in.Header)
		in.Header = &h
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Header != nil {
		fields["header"] = *in.Header
	}
	if in.Description != nil {
		desc := trimOptional(in.Description)
		if desc != nil {
			if n := len([]rune(*desc)); n < 10 || n > 5000 {
				return nil, models.NewValidationError("description must be 10-5000 characters")
			}
			fields["description"] = *desc
		} else {
			fields["description"] = nil
		}
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if len(fields) > 0 {
		if err := s.posts.Update(ctx, id, fields); err != nil {
			return nil, translate(err, "Post")
		}
	}
	return s.Get(ctx, id)
}

// Delete removes the post, its sections and its feedback.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	sections, err := s.sections.ListByPost(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return translate(err, "Post")
	}
	s.mirror.DeleteImage(ctx, storage.KindPost, id)
	for _, sec := range sections {
		if sec.SectionType == models.SectionImage {
			s.mirror.DeleteImage(ctx, storage.KindSection, sec.ID)
		}
	}
	return nil
}

// SetImage runs upload through the image pipeline and stores it as the cover.
func (s *PostService) SetImage(ctx context.Context, id uint, upload ImageUpload) (*models.Post, error) {
	if _, err := s.posts.GetMeta(ctx, id); err != nil {
		return nil, translate(err, "Post")
	}
	img, err := s.images.Process(ctx, ImageTargetPost, upload)
	if err != nil {
		return nil, err
	}
	if err := s.posts.Update(ctx, id, map[string]any{
		"image_data":         img.Data,
		"image_filename":     img.Filename,
		"image_content_type": img.ContentType,
	}); err != nil {
		return nil, translate(err, "Post")
	}
	s.mirror.UploadImage(ctx, storage.KindPost, id, img.Data)
	return s.Get(ctx, id)
}

func (s *PostService) RemoveImage(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.HasImage() {
		return nil, notFound("Post image")
	}
	if err := s.posts.Update(ctx, id, map[string]any{
		"image_data":         nil,
		"image_filename":     nil,
		"image_content_type": nil,
	}); err != nil {
		return nil, translate(err, "Post")
	}
	s.mirror.DeleteImage(ctx, storage.KindPost, id)
	return s.Get(ctx, id)
}

// Image returns the stored cover.
func (s *PostService) Image(ctx context.Context, id uint) (*Blob, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.HasImage() {
		return nil, notFound("Post image")
	}
	return &Blob{
		Data:        post.ImageData,
		Filename:    derefOr(post.ImageFilename, fmt.Sprintf("post_%d_image.jpg", id)),
		ContentType: derefOr(post.ImageContentType, ProcessedContentType),
	}, nil
}

func derefOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func (s *PostService) addSection(ctx context.Context, postID uint, order int, content models.SectionContent) (*models.PostSection, error) {
	if _, err := s.posts.GetMeta(ctx, postID); err != nil {
		return nil, translate(err, "Post")
	}
	section, err := models.NewPostSection(postID, order, content)
	if err != nil {
		return nil, err
	}
	if err := s.sections.Create(ctx, section); err != nil {
		return nil, translate(err, "Post")
	}
	return section, nil
}

func (s *PostService) AddTextSection(ctx context.Context, postID uint, text string, order int) (*models.PostSection, error) {
	return s.addSection(ctx, postID, order, models.TextContent{Text: text})
}

func (s *PostService) AddVideoSection(ctx context.Context, postID uint, url, filename string, order int) (*models.PostSection, error) {
	return s.addSection(ctx, postID, order, models.VideoContent{URL: url, Filename: strings.TrimSpace(filename)})
}

func (s *PostService) AddImageSection(ctx context.Context, postID uint, upload ImageUpload, order int) (*models.PostSection, error) {
	if _, err := s.posts.GetMeta(ctx, postID); err != nil {
		return nil, translate(err, "Post")
	}
	img, err := s.images.Process(ctx, ImageTargetSection, upload)
	if err != nil {
		return nil, err
	}
	section, err := s.addSection(ctx, postID, order, models.ImageContent{
		Data:        img.Data,
		Filename:    img.Filename,
		ContentType: img.ContentType,
	})
	if err != nil {
		return nil, err
	}
	s.mirror.UploadImage(ctx, storage.KindSection, section.ID, img.Data)
	return section, nil
}

func (s *PostService) UpdateSectionOrder(ctx context.Context, id uint, order int) (*models.PostSection, error) {
	if err := s.sections.UpdateOrder(ctx, id, order); err != nil {
		return nil, translate(err, "Section")
	}
	section, err := s.sections.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Section")
	}
	return section, nil
}

func (s *PostService) DeleteSection(ctx context.Context, id uint) error {
	section, err := s.sections.GetByID(ctx, id)
	if err != nil {
		return translate(err, "Section")
	}
	if err := s.sections.Delete(ctx, id); err != nil {
		return translate(err, "Section")
	}
	if section.SectionType == models.SectionImage {
		s.mirror.DeleteImage(ctx, storage.KindSection, id)
	}
	return nil
}

func (s *PostService) SectionImage(ctx context.Context, id uint) (*Blob, error) {
	section, err := s.sections.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Section")
	}
	if section.SectionType != models.SectionImage || len(section.ImageData) == 0 {
		return nil, notFound("Section image")
	}
	return &Blob{
		Data:        section.ImageData,
		Filename:    derefOr(section.ImageFilename, fmt.Sprintf("section_%d_image.jpg", id)),
		ContentType: derefOr(section.ImageContentType, ProcessedContentType),
	}, nil
}

// ParseSectionManifest decodes the JSON array sent with a complete post.
func ParseSectionManifest(raw string) ([]SectionManifestEntry, error) {
	var entries []SectionManifestEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, models.NewValidationError("Invalid sections JSON: " + err.Error())
	}
	return entries, nil
}

// CreateComplete builds the post and every manifest section atomically.
// All uploads go through the image pipeline before anything is written, so
// any bad entry leaves no rows behind.
func (s *PostService) CreateComplete(ctx context.Context, in CompletePostInput) (_ *models.Post, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService", "CreateComplete")
	defer span.Finish(&err)

	in.Post.normalize()
	if err := validation.Struct(in.Post); err != nil {
		return nil, err
	}
	entries, err := ParseSectionManifest(in.Manifest)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("post.sections", len(entries)))

	post := &models.Post{Header: in.Post.Header, Description: in.Post.Description, IsActive: true}
	if in.Cover != nil && len(in.Cover.Content) > 0 {
		cover, err := s.images.Process(ctx, ImageTargetPost, *in.Cover)
		if err != nil {
			return nil, err
		}
		post.ImageData = cover.Data
		post.ImageFilename = &cover.Filename
		post.ImageContentType = &cover.ContentType
	}

	uploads := make(map[string]ImageUpload, len(in.Images))
	for _, up := range in.Images {
		if _, seen := uploads[up.Filename]; !seen {
			uploads[up.Filename] = up
		}
	}

	sections := make([]*models.PostSection, 0, len(entries))
	for i, entry := range entries {
		section, err := s.buildManifestSection(ctx, entry, uploads)
		if err != nil {
			return nil, manifestError(i, err)
		}
		sections = append(sections, section)
	}

	if err := s.posts.CreateWithSections(ctx, post, sections); err != nil {
		return nil, models.NewInternalError(err)
	}

	if post.HasImage() {
		s.mirror.UploadImage(ctx, storage.KindPost, post.ID, post.ImageData)
	}
	for _, sec := range post.Sections {
		if sec.SectionType == models.SectionImage {
			s.mirror.UploadImage(ctx, storage.KindSection, sec.ID, sec.ImageData)
		}
	}
	return post, nil
}

func (s *PostService) buildManifestSection(ctx context.Context, entry SectionManifestEntry, uploads map[string]ImageUpload) (*models.PostSection, error) {
	t, err := models.ParseSectionType(entry.Type)
	if err != nil {
		return nil, models.NewValidationError("Invalid section type")
	}
	switch t {
	case models.SectionText:
		return models.NewPostSection(0, entry.OrderIndex, models.TextContent{Text: entry.Content})
	case models.SectionVideo:
		return models.NewPostSection(0, entry.OrderIndex, models.VideoContent{URL: entry.Content})
	default:
		up, ok := uploads[entry.Content]
		if !ok {
			return nil, models.NewValidationError(fmt.Sprintf("Image file '%s' not found in uploaded images", entry.Content))
		}
		img, err := s.images.Process(ctx, ImageTargetSection, up)
		if err != nil {
			return nil, err
		}
		return models.NewPostSection(0, entry.OrderIndex, models.ImageContent{
			Data:        img.Data,
			Filename:    img.Filename,
			ContentType: img.ContentType,
		})
	}
}

func manifestError(index int, err error) error {
	msg := err.Error()
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == models.CodeInternal {
			return err
		}
		msg = appErr.Message
	}
	return models.NewValidationError(fmt.Sprintf("section %d: %s", index, msg))
}
