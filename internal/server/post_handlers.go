package server

import (
	"elfatih/internal/models"
	"elfatih/internal/service"

	"github.com/gofiber/fiber/v2"
)

// TextSectionRequest is the body of POST /posts/:id/sections/text.
type TextSectionRequest struct {
	TextContent string `json:"text_content"`
	OrderIndex  int    `json:"order_index"`
}

// VideoSectionRequest is the body of POST /posts/:id/sections/video.
type VideoSectionRequest struct {
	VideoURL      string `json:"video_url"`
	VideoFilename string `json:"video_filename"`
	OrderIndex    int    `json:"order_index"`
}

// CreatedSection summarizes one section built by POST /posts/complete.
type CreatedSection struct {
	ID         uint               `json:"id"`
	Type       models.SectionType `json:"type"`
	OrderIndex int                `json:"order_index"`
	Filename   *string            `json:"filename,omitempty"`
	ImageURL   *string            `json:"image_url,omitempty"`
	VideoURL   *string            `json:"video_url,omitempty"`
}

func includeImagesParam(c *fiber.Ctx) bool {
	return queryBool(c, "include_images", queryBool(c, "include_image_data", false))
}

// ListPosts handles GET /api/v1/posts
// @Summary List active posts
// @Tags posts
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Param include_images query bool false "Embed base64 cover images"
// @Success 200 {object} object{posts=[]PostResponse,count=int,skip=int,limit=int}
// @Router /posts [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPaginationLimit)
	posts, err := s.postService.List(c.UserContext(), page.Skip, page.Limit, true)
	if err != nil {
		return respondServiceError(c, err)
	}
	out := s.toPostResponses(posts, includeImagesParam(c))
	return c.JSON(fiber.Map{
		"posts": out,
		"count": len(out),
		"skip":  page.Skip,
		"limit": page.Limit,
	})
}

// ListPostsWithFeedback handles GET /api/v1/posts/with-feedback
// @Summary List active posts with the caller's feedback
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Param include_images query bool false "Embed base64 cover images"
// @Success 200 {object} object{posts=[]PostResponse,count=int,skip=int,limit=int}
// @Router /posts/with-feedback [get]
func (s *Server) ListPostsWithFeedback(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPaginationLimit)
	items, err := s.postService.ListWithFeedback(c.UserContext(), actorFrom(c).UserID, page.Skip, page.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	includeImages := includeImagesParam(c)
	out := make([]PostResponse, 0, len(items))
	for i := range items {
		resp := s.toPostResponse(&items[i].Post, includeImages)
		resp.UserFeedback = items[i].UserFeedback
		out = append(out, resp)
	}
	return c.JSON(fiber.Map{
		"posts": out,
		"count": len(out),
		"skip":  page.Skip,
		"limit": page.Limit,
	})
}

// GetPost handles GET /api/v1/posts/:id
// @Summary Get post with sections
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Param include_images query bool false "Embed base64 cover image"
// @Success 200 {object} PostResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	post, err := s.postService.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(s.toPostResponse(post, includeImagesParam(c)))
}

// CreatePost handles POST /api/v1/posts
// @Summary Create post (admin)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreatePostInput true "Post"
// @Success 201 {object} PostResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var in service.CreatePostInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	post, err := s.postService.Create(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s.toPostResponse(post, false))
}

// CreateCompletePost handles POST /api/v1/posts/complete
// @Summary Create post with cover and sections in one request (admin)
// @Description sections is a JSON array of {type, order_index, content}. Image entries name a file uploaded in images. Any bad entry rejects the whole request.
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param header formData string true "Header"
// @Param description formData string false "Description"
// @Param sections formData string true "Section manifest (JSON)"
// @Param main_image formData file false "Cover image"
// @Param images formData file false "Section images"
// @Success 201 {object} object{message=string,post=PostResponse,sections_created=int,created_sections=[]CreatedSection}
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/complete [post]
func (s *Server) CreateCompletePost(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Expected multipart/form-data body"))
	}

	in := service.CompletePostInput{
		Post:     service.CreatePostInput{Header: c.FormValue("header")},
		Manifest: c.FormValue("sections"),
	}
	if desc := c.FormValue("description"); desc != "" {
		in.Post.Description = &desc
	}
	if in.Manifest == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("sections is required"))
	}

	if files := form.File["main_image"]; len(files) > 0 {
		cover, err := loadFileHeader(files[0])
		if err != nil {
			return respondServiceError(c, err)
		}
		in.Cover = cover
	}
	for _, fh := range form.File["images"] {
		upload, err := loadFileHeader(fh)
		if err != nil {
			return respondServiceError(c, err)
		}
		in.Images = append(in.Images, *upload)
	}

	created, err := s.postService.CreateComplete(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}

	summary := make([]CreatedSection, 0, len(created.Sections))
	for _, sec := range created.Sections {
		entry := CreatedSection{ID: sec.ID, Type: sec.SectionType, OrderIndex: sec.OrderIndex}
		switch sec.SectionType {
		case models.SectionImage:
			entry.Filename = sec.ImageFilename
			entry.ImageURL = strRef(sectionImageURL(sec.ID))
		case models.SectionVideo:
			entry.VideoURL = sec.VideoURL
		}
		summary = append(summary, entry)
	}

	// Re-read so sections come back in display order.
	post, err := s.postService.Get(c.UserContext(), created.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":          "Complete post created successfully",
		"post":             s.toPostResponse(post, false),
		"sections_created": len(summary),
		"created_sections": summary,
	})
}

// UpdatePost handles PUT /api/v1/posts/:id
// @Summary Update post (admin)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body service.UpdatePostInput true "Fields to change"
// @Success 200 {object} PostResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in service.UpdatePostInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	post, err := s.postService.Update(c.UserContext(), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(s.toPostResponse(post, false))
}

// DeletePost handles DELETE /api/v1/posts/:id
// @Summary Delete post with its sections and feedback (admin)
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	if err := s.postService.Delete(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPostImage handles GET /api/v1/posts/:id/image
// @Summary Post cover image
// @Tags posts
// @Produce image/jpeg
// @Param id path int true "Post ID"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/image [get]
func (s *Server) GetPostImage(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	blob, err := s.postService.Image(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return sendBlob(c, blob, true)
}

// SetPostImage handles PUT /api/v1/posts/:id/image
// @Summary Replace post cover image (admin)
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param image formData file true "Image"
// @Success 200 {object} PostResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/{id}/image [put]
func (s *Server) SetPostImage(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	upload, err := requireUpload(c, "image")
	if err != nil {
		return respondServiceError(c, err)
	}
	post, err := s.postService.SetImage(c.UserContext(), id, *upload)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(s.toPostResponse(post, false))
}

// RemovePostImage handles DELETE /api/v1/posts/:id/image
// @Summary Remove post cover image (admin)
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/image [delete]
func (s *Server) RemovePostImage(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	post, err := s.postService.RemoveImage(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(s.toPostResponse(post, false))
}

// AddTextSection handles POST /api/v1/posts/:id/sections/text
// @Summary Add text section (admin)
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body TextSectionRequest true "Section"
// @Success 201 {object} SectionResponse
// @Router /posts/{id}/sections/text [post]
func (s *Server) AddTextSection(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var req TextSectionRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	section, err := s.postService.AddTextSection(c.UserContext(), id, req.TextContent, req.OrderIndex)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSectionResponse(section))
}

// AddImageSection handles POST /api/v1/posts/:id/sections/image
// @Summary Add image section (admin)
// @Tags sections
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param image formData file true "Image"
// @Param order_index formData int false "Position"
// @Success 201 {object} SectionResponse
// @Router /posts/{id}/sections/image [post]
func (s *Server) AddImageSection(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	upload, err := requireUpload(c, "image")
	if err != nil {
		return respondServiceError(c, err)
	}
	order, err := formInt(c, "order_index")
	if err != nil {
		return respondServiceError(c, err)
	}
	section, err := s.postService.AddImageSection(c.UserContext(), id, *upload, order)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSectionResponse(section))
}

// AddVideoSection handles POST /api/v1/posts/:id/sections/video
// @Summary Add video section (admin)
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body VideoSectionRequest true "Section"
// @Success 201 {object} SectionResponse
// @Router /posts/{id}/sections/video [post]
func (s *Server) AddVideoSection(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var req VideoSectionRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	section, err := s.postService.AddVideoSection(c.UserContext(), id, req.VideoURL, req.VideoFilename, req.OrderIndex)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSectionResponse(section))
}

// GetSectionImage handles GET /api/v1/posts/sections/:id/image
// @Summary Section image
// @Tags sections
// @Produce image/jpeg
// @Param id path int true "Section ID"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/sections/{id}/image [get]
func (s *Server) GetSectionImage(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	blob, err := s.postService.SectionImage(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return sendBlob(c, blob, true)
}

// UpdateSectionOrder handles PUT /api/v1/posts/sections/:id/order?new_order=
// @Summary Move section (admin)
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Param new_order query int true "New order index"
// @Success 200 {object} object{message=string,section=object{id=int,order_index=int}}
// @Router /posts/sections/{id}/order [put]
func (s *Server) UpdateSectionOrder(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	if c.Query("new_order") == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("new_order is required"))
	}
	order := c.QueryInt("new_order", -1)
	if order < 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("new_order must be a non-negative integer"))
	}
	section, err := s.postService.UpdateSectionOrder(c.UserContext(), id, order)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Section order updated successfully",
		"section": fiber.Map{"id": section.ID, "order_index": section.OrderIndex},
	})
}

// DeleteSection handles DELETE /api/v1/posts/sections/:id
// @Summary Delete section (admin)
// @Tags sections
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/sections/{id} [delete]
func (s *Server) DeleteSection(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	if err := s.postService.DeleteSection(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
