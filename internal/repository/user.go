// Package repository persists users, posts, sections, feedback and devices
// through gorm, with the read replica and Redis cache in front where useful.
package repository

import (
	"context"
	"errors"

	"elfatih/internal/cache"
	"elfatih/internal/models"
	"elfatih/internal/observability"

	"gorm.io/gorm"
)

// MaxUserPageSize caps List.
const MaxUserPageSize = 100

// UserRepository stores accounts. The GetBy lookups other than GetByID
// return nil, nil for a missing user.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.User, error)
	ListAdmins(ctx context.Context) ([]models.User, error)
	Stats(ctx context.Context) (*models.UserStats, error)
}

type userRepository struct {
	db    *gorm.DB
	audit *observability.AuditLogger
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, audit: observability.NewAuditLogger("user")}
}

// GetByID is served from the cache when possible. Cached users carry no
// password hash; use GetByUsername for credential checks.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := cache.Fetch(ctx, cache.UserKey(id), cache.UserTTL, func(ctx context.Context) (models.User, error) {
		var u models.User
		return u, appErr(readDB(r.db).WithContext(ctx).First(&u, id).Error, "User", id)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) findOne(ctx context.Context, column, value string) (*models.User, error) {
	var found []models.User
	err := readDB(r.db).WithContext(ctx).Where(column+" = ?", value).Limit(1).Find(&found).Error
	if err != nil || len(found) == 0 {
		return nil, appErr(err, "User", value)
	}
	return &found[0], nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username", username)
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	return r.findOne(ctx, "phone", phone)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if isDuplicate(err) {
		return models.NewConflictError("User already exists")
	}
	// gorm skips zero-valued fields that carry a default on insert.
	if err == nil && !user.IsActive {
		err = r.db.WithContext(ctx).Model(user).Update("is_active", false).Error
	}
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.UserStatsKey)
	r.audit.Created(ctx, user.ID, "user_type", user.UserType)
	return nil
}

// Update writes only the given columns so a cached, hash-less user can never
// overwrite the stored password.
func (r *userRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := affected(r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields))
	if isDuplicate(err) {
		return models.NewConflictError("Username, email or phone already registered")
	}
	if err != nil {
		return appErr(err, "User", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

// Delete removes the user together with their feedback, keeping post
// counters in step with the removed rows.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var feedbacks []models.PostFeedback
		if err := tx.Where("user_id = ?", id).Find(&feedbacks).Error; err != nil {
			return err
		}
		for _, fb := range feedbacks {
			if err := adjustCounter(tx, fb.PostID, fb.FeedbackType, -1); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.PostFeedback{}).Error; err != nil {
			return err
		}
		return affected(tx.Delete(&models.User{}, id))
	})
	if err != nil {
		if !IsNotFound(err) {
			r.audit.Failed(ctx, "delete", err)
		}
		return appErr(err, "User", id)
	}
	cache.InvalidateUser(ctx, id)
	r.audit.Deleted(ctx, id)
	return nil
}

func (r *userRepository) List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.User, error) {
	offset, limit = clampPage(offset, limit, MaxUserPageSize)
	q := readDB(r.db).WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var page []models.User
	if err := q.Find(&page).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return page, nil
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]models.User, error) {
	var admins []models.User
	err := readDB(r.db).WithContext(ctx).Where("user_type = ?", models.RoleAdmin).Order("id ASC").Find(&admins).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return admins, nil
}

func (r *userRepository) Stats(ctx context.Context) (*models.UserStats, error) {
	stats, err := cache.Fetch(ctx, cache.UserStatsKey, cache.UserStatsTTL, func(ctx context.Context) (models.UserStats, error) {
		var s models.UserStats
		err := readDB(r.db).WithContext(ctx).Raw(`
SELECT
  COUNT(*) AS total_users,
  COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) AS active_users,
  COALESCE(SUM(CASE WHEN user_type = ? THEN 1 ELSE 0 END), 0) AS admin_users
FROM users`, models.RoleAdmin).Scan(&s).Error
		return s, err
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	stats.InactiveUsers = stats.TotalUsers - stats.ActiveUsers
	stats.RegularUsers = stats.TotalUsers - stats.AdminUsers
	return &stats, nil
}
