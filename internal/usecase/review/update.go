package review

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/review"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type UpdateReviewInput struct {
	Caller   *models.User
	ReviewID uuid.UUID
	Rating   *int
	Comment  *string
}

type UpdateReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateReview(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateReview {
	return &UpdateReview{
		repo:  repo,
		audit: audit,
	}
}

// Execute lets the author change rating and comment. A rating change
// re-weights the shop average.
func (uc *UpdateReview) Execute(
	ctx context.Context,
	in UpdateReviewInput,
) (*models.Review, error) {

	rv, err := uc.repo.GetReview(ctx, in.ReviewID)
	if err != nil {
		return nil, notFound(err, errReviewNotFound)
	}

	if rv.ClientID != in.Caller.ID {
		return nil, errNotAuthor
	}

	oldRating := rv.Rating

	if in.Rating != nil {
		if err := domain.ValidateRating(*in.Rating); err != nil {
			return nil, err
		}
		rv.Rating = *in.Rating
	}
	if in.Comment != nil {
		rv.Comment = strings.TrimSpace(*in.Comment)
	}

	if err := uc.repo.UpdateWithAggregate(ctx, rv, oldRating); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: audit.Ref(rv.BarbershopID),
		UserID:       audit.Ref(in.Caller.ID),
		Action:       "review_updated",
		Entity:       "review",
		EntityID:     audit.Ref(rv.ID),
	})

	return rv, nil
}
