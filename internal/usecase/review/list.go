package review

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/review"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type ListBarbershopReviews struct {
	repo domain.Repository
}

func NewListBarbershopReviews(repo domain.Repository) *ListBarbershopReviews {
	return &ListBarbershopReviews{repo: repo}
}

// Execute lists newest first. An unknown shop is a 404.
func (uc *ListBarbershopReviews) Execute(
	ctx context.Context,
	barbershopID uuid.UUID,
	skip int,
	limit int,
) ([]models.Review, error) {

	if _, err := uc.repo.GetBarbershopByID(ctx, barbershopID); err != nil {
		return nil, notFound(err, errBarbershopNotFound)
	}

	return uc.repo.ListByBarbershop(ctx, barbershopID, skip, limit)
}
