package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type Repository interface {
	GetBarbershopByID(ctx context.Context, id uuid.UUID) (*models.Barbershop, error)

	// CreateWithAggregate inserts r and folds its rating into the shop
	// average in the same transaction.
	CreateWithAggregate(ctx context.Context, r *models.Review) error

	GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error)

	// UpdateWithAggregate saves r and, when the rating changed, re-weights
	// the shop average in the same transaction.
	UpdateWithAggregate(ctx context.Context, r *models.Review, oldRating int) error

	SaveReply(ctx context.Context, r *models.Review) error
	ListByBarbershop(ctx context.Context, barbershopID uuid.UUID, skip, limit int) ([]models.Review, error)
}
