package service

import (
	"elfatih/internal/models"
	"elfatih/internal/repository"
)

func notFound(what string) *models.AppError {
	return &models.AppError{Code: models.CodeNotFound, Message: what + " not found"}
}

// translate maps repository errors onto AppErrors. AppErrors pass through.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if models.CodeOf(err) != "" {
		return err
	}
	if repository.IsNotFound(err) {
		return notFound(what)
	}
	return models.NewInternalError(err)
}
