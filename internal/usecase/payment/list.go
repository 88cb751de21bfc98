package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/authz"
	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/payment"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type ListBarbershopPayments struct {
	repo domain.Repository
}

func NewListBarbershopPayments(repo domain.Repository) *ListBarbershopPayments {
	return &ListBarbershopPayments{repo: repo}
}

func (uc *ListBarbershopPayments) Execute(
	ctx context.Context,
	caller *models.User,
	barbershopID uuid.UUID,
) ([]models.Payment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, notFound(err, errBarbershopNotFound)
	}

	if !authz.CanManageShop(caller, shop) {
		return nil, errForbidden
	}

	return uc.repo.ListByBarbershop(ctx, shop.ID)
}

type ListPayments struct {
	repo domain.Repository
}

func NewListPayments(repo domain.Repository) *ListPayments {
	return &ListPayments{repo: repo}
}

func (uc *ListPayments) Execute(
	ctx context.Context,
	status string,
	skip int,
	limit int,
) ([]models.Payment, error) {
	if status != "" && !domain.Status(status).Valid() {
		return nil, errInvalidStatus
	}
	return uc.repo.List(ctx, status, skip, limit)
}
