package models

import (
	"time"
)

// Post is an article made of ordered sections with an optional cover image.
type Post struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	Header            string        `gorm:"size:200;not null" json:"header"`
	Description       *string       `gorm:"type:text" json:"description"`
	ImageData         []byte        `json:"-"`
	ImageFilename     *string       `gorm:"size:255" json:"image_filename"`
	ImageContentType  *string       `gorm:"size:100" json:"image_content_type"`
	PositiveFeedbacks int           `gorm:"not null;default:0" json:"positive_feedbacks"`
	NegativeFeedbacks int           `gorm:"not null;default:0" json:"negative_feedbacks"`
	IsActive          bool          `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	Sections          []PostSection `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"sections"`
}

// HasImage reports whether a cover image is stored inline.
func (p *Post) HasImage() bool {
	return len(p.ImageData) > 0
}

// TotalFeedbacks is the sum of both counters.
func (p *Post) TotalFeedbacks() int {
	return p.PositiveFeedbacks + p.NegativeFeedbacks
}
