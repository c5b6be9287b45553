package repository

import (
	"context"

	"elfatih/internal/models"

	"gorm.io/gorm"
)

// SectionRepository stores individual post sections.
type SectionRepository interface {
	Create(ctx context.Context, section *models.PostSection) error
	GetByID(ctx context.Context, id uint) (*models.PostSection, error)
	ListByPost(ctx context.Context, postID uint) ([]models.PostSection, error)
	UpdateOrder(ctx context.Context, id uint, orderIndex int) error
	Delete(ctx context.Context, id uint) error
}

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Create(ctx context.Context, section *models.PostSection) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *sectionRepository) GetByID(ctx context.Context, id uint) (*models.PostSection, error) {
	var section models.PostSection
	if err := readDB(r.db).WithContext(ctx).First(&section, id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) ListByPost(ctx context.Context, postID uint) ([]models.PostSection, error) {
	var sections []models.PostSection
	err := readDB(r.db).WithContext(ctx).
		Where("post_id = ?", postID).
		Order(SectionOrder).
		Find(&sections).Error
	return sections, err
}

func (r *sectionRepository) UpdateOrder(ctx context.Context, id uint, orderIndex int) error {
	res := r.db.WithContext(ctx).Model(&models.PostSection{}).
		Where("id = ?", id).
		Updates(map[string]any{"order_index": orderIndex})
	return affected(res)
}

func (r *sectionRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.PostSection{}, id)
	return affected(res)
}
