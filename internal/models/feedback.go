package models

import (
	"strings"
	"time"
)

// FeedbackType is a user's reaction to a post.
type FeedbackType string

const (
	FeedbackPositive FeedbackType = "positive"
	FeedbackNegative FeedbackType = "negative"
)

// ParseFeedbackType validates a raw feedback type.
func ParseFeedbackType(raw string) (FeedbackType, error) {
	switch t := FeedbackType(strings.ToLower(strings.TrimSpace(raw))); t {
	case FeedbackPositive, FeedbackNegative:
		return t, nil
	default:
		return "", NewValidationError("feedback_type must be 'positive' or 'negative'")
	}
}

// PostFeedback records one user's reaction to one post.
type PostFeedback struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	PostID       uint         `gorm:"not null;uniqueIndex:idx_post_feedbacks_post_user,priority:1" json:"post_id"`
	UserID       uint         `gorm:"not null;uniqueIndex:idx_post_feedbacks_post_user,priority:2;index" json:"user_id"`
	FeedbackType FeedbackType `gorm:"size:10;not null" json:"feedback_type"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Post         *Post        `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	User         *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// FeedbackCounters is a snapshot of a post's aggregate reactions.
type FeedbackCounters struct {
	PostID            uint `json:"post_id"`
	PositiveFeedbacks int  `json:"positive_feedbacks"`
	NegativeFeedbacks int  `json:"negative_feedbacks"`
}
