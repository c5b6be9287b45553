package database

import "elfatih/internal/models"

// PersistentModels lists every table GORM manages. Order matters: a model
// comes after the ones its foreign keys point at.
func PersistentModels() []any {
	return []any{
		new(models.User),
		new(models.Device),
		new(models.Post),
		new(models.PostSection),
		new(models.PostFeedback),
	}
}
