package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type Repository interface {
	GetBarbershopByID(ctx context.Context, id uuid.UUID) (*models.Barbershop, error)

	// CreateAndExtend inserts p and, in the same transaction, sets the
	// shop's expiry to periodEnd, reactivating it if it was suspended.
	CreateAndExtend(ctx context.Context, p *models.Payment) error

	GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error)

	// Save updates p; with extend set it also applies the shop extension.
	Save(ctx context.Context, p *models.Payment, extend bool) error

	ListByBarbershop(ctx context.Context, barbershopID uuid.UUID) ([]models.Payment, error)
	List(ctx context.Context, status string, skip, limit int) ([]models.Payment, error)
}

// ExtendUntil is the expiry a completed payment grants.
func ExtendUntil(p *models.Payment) time.Time {
	return p.PeriodEnd.UTC()
}
