package repository

import (
	"errors"
	"strings"

	"elfatih/internal/database"
	"elfatih/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// readDB prefers the replica handle for list and count queries.
func readDB(primary *gorm.DB) *gorm.DB {
	if replica := database.GetReadDB(); replica != nil {
		return replica
	}
	return primary
}

// isDuplicate reports whether err came from a unique index. Drivers
// disagree on how they say so.
func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return false
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return true
	case errors.As(err, &pgErr):
		return pgErr.Code == pgUniqueViolation
	}
	// sqlite says "UNIQUE constraint failed"; sqlmock errors are plain text.
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"duplicate key", "unique constraint", pgUniqueViolation} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func clampPage(offset, limit, maxLimit int) (int, int) {
	if limit <= 0 {
		limit = maxLimit
	}
	return max(offset, 0), min(limit, maxLimit)
}

// appErr maps a gorm error onto the API error model. A missing row becomes
// a not found error for resource.
func appErr(err error, resource string, id any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFoundError(resource, id)
	default:
		return models.NewInternalError(err)
	}
}

// affected turns a write that matched no rows into gorm.ErrRecordNotFound.
func affected(res *gorm.DB) error {
	if res.Error == nil && res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return res.Error
}
