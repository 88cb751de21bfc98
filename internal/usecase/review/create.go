package review

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/review"
	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type CreateReviewInput struct {
	Client        *models.User
	BarbershopID  uuid.UUID
	AppointmentID *uuid.UUID
	Rating        int
	Comment       string
}

type CreateReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateReview(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateReview {
	return &CreateReview{
		repo:  repo,
		audit: audit,
	}
}

// Execute stores the review and folds its rating into the shop average.
// A second review by the same client for the same shop is rejected and
// leaves the average untouched.
func (uc *CreateReview) Execute(
	ctx context.Context,
	in CreateReviewInput,
) (*models.Review, error) {

	if err := domain.ValidateRating(in.Rating); err != nil {
		return nil, err
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, notFound(err, errBarbershopNotFound)
	}

	rv := &models.Review{
		BarbershopID:  shop.ID,
		ClientID:      in.Client.ID,
		AppointmentID: in.AppointmentID,
		Rating:        in.Rating,
		Comment:       strings.TrimSpace(in.Comment),
	}

	if err := uc.repo.CreateWithAggregate(ctx, rv); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, errDuplicateReview
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: audit.Ref(shop.ID),
		UserID:       audit.Ref(in.Client.ID),
		Action:       "review_created",
		Entity:       "review",
		EntityID:     audit.Ref(rv.ID),
		Metadata:     map[string]int{"calificacion": rv.Rating},
	})

	return rv, nil
}
