package repository

import (
	"context"
	"errors"

	"elfatih/internal/models"
	"elfatih/internal/observability"

	"gorm.io/gorm"
)

// MaxPostPageSize caps List.
const MaxPostPageSize = 100

// SectionOrder is the canonical section ordering. Ties on order_index fall
// back to insertion order.
const SectionOrder = "order_index ASC, id ASC"

// PostRepository stores posts. Errors are raw gorm errors; IsNotFound
// recognizes a missing row.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	CreateWithSections(ctx context.Context, post *models.Post, sections []*models.PostSection) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetMeta(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.Post, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db    *gorm.DB
	audit *observability.AuditLogger
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, audit: observability.NewAuditLogger("post")}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Sections").Create(post).Error; err != nil {
		return err
	}
	r.audit.Created(ctx, post.ID)
	return nil
}

// CreateWithSections inserts the post and every section in one transaction.
// Section PostIDs are assigned from the new post.
func (r *postRepository) CreateWithSections(ctx context.Context, post *models.Post, sections []*models.PostSection) error {
	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Sections").Create(post).Error; err != nil || len(sections) == 0 {
			return err
		}
		for _, s := range sections {
			s.PostID = post.ID
		}
		return tx.Create(sections).Error
	})
	if txErr != nil {
		return txErr
	}
	post.Sections = make([]models.PostSection, len(sections))
	for i, s := range sections {
		post.Sections[i] = *s
	}
	r.audit.Created(ctx, post.ID, "sections", len(sections))
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	ordered := func(db *gorm.DB) *gorm.DB { return db.Order(SectionOrder) }
	return firstPost(readDB(r.db).WithContext(ctx).Preload("Sections", ordered), id)
}

// GetMeta loads the scalar columns of a post without blobs or sections.
func (r *postRepository) GetMeta(ctx context.Context, id uint) (*models.Post, error) {
	q := readDB(r.db).WithContext(ctx).
		Select("id", "header", "positive_feedbacks", "negative_feedbacks", "is_active", "created_at", "updated_at")
	return firstPost(q, id)
}

func firstPost(q *gorm.DB, id uint) (*models.Post, error) {
	post := new(models.Post)
	if err := q.First(post, id).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// List returns posts newest first, without sections.
func (r *postRepository) List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.Post, error) {
	offset, limit = clampPage(offset, limit, MaxPostPageSize)
	q := readDB(r.db).WithContext(ctx).Order("id DESC").Offset(offset).Limit(limit)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var page []models.Post
	if err := q.Find(&page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (r *postRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return affected(r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(fields))
}

// Delete removes the post with its feedback and sections. The explicit
// child deletes keep behaviour identical when FK cascades are off.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostFeedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostSection{}).Error; err != nil {
			return err
		}
		return affected(tx.Delete(&models.Post{}, id))
	})
	if err != nil {
		return err
	}
	r.audit.Deleted(ctx, id)
	return nil
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
