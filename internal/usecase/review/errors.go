package review

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
)

var (
	errBarbershopNotFound = httperr.ErrNotFound("barbershop_not_found", "Barbería no encontrada")
	errReviewNotFound     = httperr.ErrNotFound("review_not_found", "Reseña no encontrada")
	errDuplicateReview    = httperr.ErrBusiness("duplicate_review", "Ya has reseñado esta barbería")
	errNotAuthor          = httperr.ErrForbidden("forbidden", "Solo el autor puede editar la reseña")
	errForbidden          = httperr.ErrForbidden("forbidden", "No tienes permisos para realizar esta acción")
	errEmptyReply         = httperr.ErrBusiness("invalid_request", "La respuesta no puede estar vacía")
)

func notFound(err error, nf error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nf
	}
	return err
}
