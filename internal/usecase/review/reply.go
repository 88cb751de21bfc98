package review

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	"github.com/BruksfildServices01/nextbarber-api/internal/authz"
	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/review"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type ReplyReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReplyReview(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ReplyReview {
	return &ReplyReview{
		repo:  repo,
		audit: audit,
	}
}

// Execute sets (or replaces) the shop's public answer to a review.
func (uc *ReplyReview) Execute(
	ctx context.Context,
	caller *models.User,
	reviewID uuid.UUID,
	reply string,
) (*models.Review, error) {

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, errEmptyReply
	}

	rv, err := uc.repo.GetReview(ctx, reviewID)
	if err != nil {
		return nil, notFound(err, errReviewNotFound)
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, rv.BarbershopID)
	if err != nil {
		return nil, notFound(err, errBarbershopNotFound)
	}

	if !authz.CanManageShop(caller, shop) {
		return nil, errForbidden
	}

	now := time.Now().UTC()
	rv.ShopReply = reply
	rv.RepliedAt = &now

	if err := uc.repo.SaveReply(ctx, rv); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: audit.Ref(shop.ID),
		UserID:       audit.Ref(caller.ID),
		Action:       "review_replied",
		Entity:       "review",
		EntityID:     audit.Ref(rv.ID),
	})

	return rv, nil
}
