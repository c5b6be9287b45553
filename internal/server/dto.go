package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"elfatih/internal/models"
	"elfatih/internal/service"
)

// decodeStrictJSON decodes body into dst and rejects unknown fields and
// trailing data.
func decodeStrictJSON(body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// PostResponse is the JSON view of a post.
type PostResponse struct {
	ID                uint                 `json:"id"`
	Header            string               `json:"header"`
	Description       *string              `json:"description"`
	ImageURL          *string              `json:"image_url"`
	ImageFilename     *string              `json:"image_filename"`
	ImageData         *string              `json:"image_data,omitempty"`
	ImageInfo         *service.ImageInfo   `json:"image_info,omitempty"`
	PositiveFeedbacks int                  `json:"positive_feedbacks"`
	NegativeFeedbacks int                  `json:"negative_feedbacks"`
	IsActive          bool                 `json:"is_active"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	Sections          []SectionResponse    `json:"sections,omitempty"`
	UserFeedback      *models.FeedbackType `json:"user_feedback,omitempty"`
}

// SectionResponse is the JSON view of a post section. Image bytes are only
// reachable through ImageURL.
type SectionResponse struct {
	ID            uint               `json:"id"`
	PostID        uint               `json:"post_id"`
	SectionType   models.SectionType `json:"section_type"`
	OrderIndex    int                `json:"order_index"`
	TextContent   *string            `json:"text_content,omitempty"`
	ImageURL      *string            `json:"image_url,omitempty"`
	ImageFilename *string            `json:"image_filename,omitempty"`
	VideoURL      *string            `json:"video_url,omitempty"`
	VideoFilename *string            `json:"video_filename,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// DeviceResponse is the JSON view of a device.
type DeviceResponse struct {
	ID            uint      `json:"id"`
	DeviceName    string    `json:"device_name"`
	Version       string    `json:"version"`
	Description   *string   `json:"description"`
	ImageURL      *string   `json:"image_url"`
	ImageFilename *string   `json:"image_filename"`
	ImageData     *string   `json:"image_data"`
	QRCodeURL     *string   `json:"qr_code_url"`
	QRCodeData    *string   `json:"qr_code_data"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DeviceListResponse is one page of devices.
type DeviceListResponse struct {
	Devices    []DeviceResponse `json:"devices"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        *models.User `json:"user"`
}

func strRef(s string) *string { return &s }

func postImageURL(id uint) string    { return fmt.Sprintf("%s/posts/%d/image", apiPrefix, id) }
func sectionImageURL(id uint) string { return fmt.Sprintf("%s/posts/sections/%d/image", apiPrefix, id) }
func deviceImageURL(id uint) string  { return fmt.Sprintf("%s/devices/%d/image", apiPrefix, id) }
func deviceQRCodeURL(id uint) string { return fmt.Sprintf("%s/devices/%d/qr-code", apiPrefix, id) }

func (s *Server) toPostResponse(p *models.Post, includeImages bool) PostResponse {
	out := PostResponse{
		ID:                p.ID,
		Header:            p.Header,
		Description:       p.Description,
		ImageFilename:     p.ImageFilename,
		PositiveFeedbacks: p.PositiveFeedbacks,
		NegativeFeedbacks: p.NegativeFeedbacks,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.HasImage() {
		out.ImageURL = strRef(postImageURL(p.ID))
		if includeImages {
			out.ImageData = strRef(service.DataURL(p.ImageData, derefString(p.ImageContentType)))
			info := s.images.Info(p.ImageData)
			out.ImageInfo = &info
		}
	}
	if len(p.Sections) > 0 {
		out.Sections = make([]SectionResponse, 0, len(p.Sections))
		for i := range p.Sections {
			out.Sections = append(out.Sections, toSectionResponse(&p.Sections[i]))
		}
	}
	return out
}

func (s *Server) toPostResponses(posts []models.Post, includeImages bool) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, s.toPostResponse(&posts[i], includeImages))
	}
	return out
}

func toSectionResponse(sec *models.PostSection) SectionResponse {
	out := SectionResponse{
		ID:            sec.ID,
		PostID:        sec.PostID,
		SectionType:   sec.SectionType,
		OrderIndex:    sec.OrderIndex,
		TextContent:   sec.TextContent,
		ImageFilename: sec.ImageFilename,
		VideoURL:      sec.VideoURL,
		VideoFilename: sec.VideoFilename,
		CreatedAt:     sec.CreatedAt,
	}
	if sec.SectionType == models.SectionImage && len(sec.ImageData) > 0 {
		out.ImageURL = strRef(sectionImageURL(sec.ID))
	}
	return out
}

func toDeviceResponse(d *models.Device, includeImages bool) DeviceResponse {
	out := DeviceResponse{
		ID:            d.ID,
		DeviceName:    d.DeviceName,
		Version:       d.Version,
		Description:   d.Description,
		ImageFilename: d.ImageFilename,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.HasImage() {
		out.ImageURL = strRef(deviceImageURL(d.ID))
		if includeImages {
			out.ImageData = strRef(service.DataURL(d.ImageData, derefString(d.ImageContentType)))
		}
	}
	if d.HasQRCode() {
		out.QRCodeURL = strRef(deviceQRCodeURL(d.ID))
		out.QRCodeData = strRef(service.DataURL(d.QRCodeData, service.QRContentType))
	}
	return out
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
