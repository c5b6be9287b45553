package models

import (
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// SectionType tags which payload a PostSection carries.
type SectionType string

const (
	SectionText  SectionType = "text"
	SectionImage SectionType = "image"
	SectionVideo SectionType = "video"
)

const (
	MaxTextSectionLength = 10000
	MaxVideoURLLength    = 500
	MaxFilenameLength    = 255
)

// ParseSectionType validates a raw section type tag.
func ParseSectionType(raw string) (SectionType, error) {
	switch t := SectionType(strings.ToLower(strings.TrimSpace(raw))); t {
	case SectionText, SectionImage, SectionVideo:
		return t, nil
	default:
		return "", NewValidationError("section type must be one of text, image, video")
	}
}

// PostSection is one ordered content block of a post. Only the columns that
// belong to SectionType are populated; use NewPostSection to build one.
type PostSection struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	PostID           uint        `gorm:"not null;index:idx_post_sections_order,priority:1" json:"post_id"`
	SectionType      SectionType `gorm:"size:10;not null" json:"section_type"`
	OrderIndex       int         `gorm:"not null;default:0;index:idx_post_sections_order,priority:2" json:"order_index"`
	TextContent      *string     `gorm:"type:text" json:"text_content"`
	ImageData        []byte      `json:"-"`
	ImageFilename    *string     `gorm:"size:255" json:"image_filename"`
	ImageContentType *string     `gorm:"size:100" json:"image_content_type"`
	VideoURL         *string     `gorm:"size:500" json:"video_url"`
	VideoFilename    *string     `gorm:"size:255" json:"video_filename"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// SectionContent is the payload of a section. Exactly one implementation
// exists per SectionType.
type SectionContent interface {
	Type() SectionType
	Validate() error
	apply(s *PostSection)
}

// TextContent is the payload of a text section.
type TextContent struct {
	Text string
}

func (TextContent) Type() SectionType { return SectionText }

func (c TextContent) Validate() error {
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return NewValidationError("text content cannot be empty")
	}
	if utf8.RuneCountInString(text) > MaxTextSectionLength {
		return NewValidationError("text content must be at most 10000 characters")
	}
	return nil
}

func (c TextContent) apply(s *PostSection) {
	text := strings.TrimSpace(c.Text)
	s.TextContent = &text
}

// ImageContent is the payload of an image section. Data is expected to be
// the output of the image pipeline.
type ImageContent struct {
	Data        []byte
	Filename    string
	ContentType string
}

func (ImageContent) Type() SectionType { return SectionImage }

func (c ImageContent) Validate() error {
	if len(c.Data) == 0 {
		return NewValidationError("image data cannot be empty")
	}
	if c.ContentType == "" {
		return NewValidationError("image content type is required")
	}
	if len(c.Filename) > MaxFilenameLength {
		return NewValidationError("image filename is too long")
	}
	return nil
}

func (c ImageContent) apply(s *PostSection) {
	filename := c.Filename
	contentType := c.ContentType
	s.ImageData = c.Data
	s.ImageFilename = &filename
	s.ImageContentType = &contentType
}

// VideoContent is the payload of a video section.
type VideoContent struct {
	URL      string
	Filename string
}

func (VideoContent) Type() SectionType { return SectionVideo }

func (c VideoContent) Validate() error {
	raw := strings.TrimSpace(c.URL)
	if raw == "" {
		return NewValidationError("video url is required")
	}
	if len(raw) > MaxVideoURLLength {
		return NewValidationError("video url must be at most 500 characters")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewValidationError("video url must be an absolute http(s) url")
	}
	if len(c.Filename) > MaxFilenameLength {
		return NewValidationError("video filename is too long")
	}
	return nil
}

func (c VideoContent) apply(s *PostSection) {
	raw := strings.TrimSpace(c.URL)
	s.VideoURL = &raw
	if c.Filename != "" {
		filename := c.Filename
		s.VideoFilename = &filename
	}
}

// NewPostSection validates content and returns a section whose columns are
// populated for the content's type only.
func NewPostSection(postID uint, orderIndex int, content SectionContent) (*PostSection, error) {
	if content == nil {
		return nil, NewValidationError("section content is required")
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}
	s := &PostSection{
		PostID:      postID,
		SectionType: content.Type(),
		OrderIndex:  orderIndex,
	}
	content.apply(s)
	return s, nil
}

var errMixedSectionPayload = errors.New("section carries fields of more than one type")

// Content reconstructs the typed payload of a stored section.
func (s *PostSection) Content() (SectionContent, error) {
	hasText := s.TextContent != nil
	hasImage := len(s.ImageData) > 0
	hasVideo := s.VideoURL != nil

	switch s.SectionType {
	case SectionText:
		if hasImage || hasVideo || !hasText {
			return nil, errMixedSectionPayload
		}
		return TextContent{Text: *s.TextContent}, nil
	case SectionImage:
		if hasText || hasVideo || !hasImage {
			return nil, errMixedSectionPayload
		}
		return ImageContent{Data: s.ImageData, Filename: deref(s.ImageFilename), ContentType: deref(s.ImageContentType)}, nil
	case SectionVideo:
		if hasText || hasImage || !hasVideo {
			return nil, errMixedSectionPayload
		}
		return VideoContent{URL: *s.VideoURL, Filename: deref(s.VideoFilename)}, nil
	default:
		return nil, errors.New("unknown section type")
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
