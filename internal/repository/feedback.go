package repository

import (
	"context"
	"errors"
	"fmt"

	"elfatih/internal/models"

	"gorm.io/gorm"
)

// FeedbackResult describes the outcome of an upsert.
type FeedbackResult struct {
	Feedback *models.PostFeedback
	Created  bool
	// Previous is the type replaced by the upsert; empty when Created.
	Previous models.FeedbackType
	Counters models.FeedbackCounters
}

// FeedbackRepository owns every write to post feedback rows and the post
// counters derived from them.
type FeedbackRepository interface {
	Get(ctx context.Context, postID, userID uint) (*models.PostFeedback, error)
	TypesForUser(ctx context.Context, userID uint, postIDs []uint) (map[uint]models.FeedbackType, error)
	Upsert(ctx context.Context, postID, userID uint, feedbackType models.FeedbackType) (*FeedbackResult, error)
	Remove(ctx context.Context, postID, userID uint) (*models.FeedbackCounters, models.FeedbackType, error)
	Reconcile(ctx context.Context, postID uint) (*models.FeedbackCounters, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Get(ctx context.Context, postID, userID uint) (*models.PostFeedback, error) {
	var fb models.PostFeedback
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&fb).Error
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *feedbackRepository) TypesForUser(ctx context.Context, userID uint, postIDs []uint) (map[uint]models.FeedbackType, error) {
	out := make(map[uint]models.FeedbackType, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var rows []models.PostFeedback
	if err := readDB(r.db).WithContext(ctx).
		Select("post_id", "feedback_type").
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PostID] = row.FeedbackType
	}
	return out, nil
}

// Upsert records the user's feedback and moves the post counters in the same
// transaction. A concurrent first insert for the same pair loses the unique
// index race and is retried once as an update.
func (r *feedbackRepository) Upsert(ctx context.Context, postID, userID uint, feedbackType models.FeedbackType) (*FeedbackResult, error) {
	var result *FeedbackResult
	run := func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res, err := upsertFeedback(tx, postID, userID, feedbackType)
			if err != nil {
				return err
			}
			result = res
			return nil
		})
	}

	err := run()
	if err != nil && isDuplicate(err) {
		err = run()
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func upsertFeedback(tx *gorm.DB, postID, userID uint, feedbackType models.FeedbackType) (*FeedbackResult, error) {
	var existing models.PostFeedback
	err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
	switch {
	case err == nil:
		previous := existing.FeedbackType
		if err := adjustCounter(tx, postID, previous, -1); err != nil {
			return nil, err
		}
		if err := adjustCounter(tx, postID, feedbackType, 1); err != nil {
			return nil, err
		}
		if err := tx.Model(&existing).Updates(map[string]any{"feedback_type": feedbackType}).Error; err != nil {
			return nil, err
		}
		existing.FeedbackType = feedbackType
		counters, err := readCounters(tx, postID)
		if err != nil {
			return nil, err
		}
		return &FeedbackResult{Feedback: &existing, Previous: previous, Counters: *counters}, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		fb := &models.PostFeedback{PostID: postID, UserID: userID, FeedbackType: feedbackType}
		if err := tx.Create(fb).Error; err != nil {
			return nil, err
		}
		if err := adjustCounter(tx, postID, feedbackType, 1); err != nil {
			return nil, err
		}
		counters, err := readCounters(tx, postID)
		if err != nil {
			return nil, err
		}
		return &FeedbackResult{Feedback: fb, Created: true, Counters: *counters}, nil

	default:
		return nil, err
	}
}

// Remove deletes the user's feedback and decrements the matching counter,
// never below zero. It returns gorm.ErrRecordNotFound when there is nothing
// to remove.
func (r *feedbackRepository) Remove(ctx context.Context, postID, userID uint) (*models.FeedbackCounters, models.FeedbackType, error) {
	var (
		counters *models.FeedbackCounters
		removed  models.FeedbackType
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.PostFeedback
		if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error; err != nil {
			return err
		}
		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}
		if err := adjustCounter(tx, postID, existing.FeedbackType, -1); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		c, err := readCounters(tx, postID)
		if err != nil {
			return err
		}
		counters, removed = c, existing.FeedbackType
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return counters, removed, nil
}

// Reconcile recomputes both counters from the feedback rows.
func (r *feedbackRepository) Reconcile(ctx context.Context, postID uint) (*models.FeedbackCounters, error) {
	var counters *models.FeedbackCounters
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []struct {
			FeedbackType models.FeedbackType
			Total        int
		}
		if err := tx.Model(&models.PostFeedback{}).
			Select("feedback_type, COUNT(*) AS total").
			Where("post_id = ?", postID).
			Group("feedback_type").
			Scan(&rows).Error; err != nil {
			return err
		}
		fields := map[string]any{"positive_feedbacks": 0, "negative_feedbacks": 0}
		for _, row := range rows {
			fields[counterColumn(row.FeedbackType)] = row.Total
		}
		res := tx.Model(&models.Post{}).Where("id = ?", postID).UpdateColumns(fields)
		if err := affected(res); err != nil {
			return err
		}
		c, err := readCounters(tx, postID)
		if err != nil {
			return err
		}
		counters = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counters, nil
}

func counterColumn(t models.FeedbackType) string {
	if t == models.FeedbackNegative {
		return "negative_feedbacks"
	}
	return "positive_feedbacks"
}

// adjustCounter moves one post counter by delta. Decrements are floored at
// zero. Callers must already be inside a transaction.
func adjustCounter(tx *gorm.DB, postID uint, t models.FeedbackType, delta int) error {
	column := counterColumn(t)
	var expr any
	if delta >= 0 {
		expr = gorm.Expr(column+" + ?", delta)
	} else {
		expr = gorm.Expr(fmt.Sprintf("CASE WHEN %[1]s >= ? THEN %[1]s - ? ELSE 0 END", column), -delta, -delta)
	}
	res := tx.Model(&models.Post{}).Where("id = ?", postID).UpdateColumn(column, expr)
	return affected(res)
}

func readCounters(tx *gorm.DB, postID uint) (*models.FeedbackCounters, error) {
	var counters models.FeedbackCounters
	res := tx.Model(&models.Post{}).
		Select("id AS post_id, positive_feedbacks, negative_feedbacks").
		Where("id = ?", postID).
		Scan(&counters)
	if err := affected(res); err != nil {
		return nil, err
	}
	return &counters, nil
}
