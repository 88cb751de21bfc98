package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/payment"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type RegisterPaymentInput struct {
	Caller       *models.User
	BarbershopID uuid.UUID
	Amount       decimal.Decimal
	Method       string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	ExternalRef  string
	InvoiceURL   string
	Notes        string
}

type RegisterPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRegisterPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RegisterPayment {
	return &RegisterPayment{
		repo:  repo,
		audit: audit,
	}
}

// Execute records a manual payment as completed. The shop's expiry moves to
// the period end and a suspended shop becomes active again.
func (uc *RegisterPayment) Execute(
	ctx context.Context,
	in RegisterPaymentInput,
) (*models.Payment, error) {

	if !domain.Method(in.Method).Valid() {
		return nil, errInvalidMethod
	}
	if !in.Amount.IsPositive() {
		return nil, errInvalidAmount
	}
	if !in.PeriodEnd.After(in.PeriodStart) {
		return nil, errInvalidPeriod
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, notFound(err, errBarbershopNotFound)
	}

	p := &models.Payment{
		BarbershopID: shop.ID,
		RecordedBy:   audit.Ref(in.Caller.ID),
		Amount:       in.Amount,
		Method:       in.Method,
		Status:       string(domain.StatusCompleted),
		PeriodStart:  in.PeriodStart.UTC(),
		PeriodEnd:    in.PeriodEnd.UTC(),
		ExternalRef:  in.ExternalRef,
		InvoiceURL:   in.InvoiceURL,
		Notes:        in.Notes,
		PaidAt:       time.Now().UTC(),
	}

	if err := uc.repo.CreateAndExtend(ctx, p); err != nil {
		return nil, notFound(err, errBarbershopNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: audit.Ref(shop.ID),
		UserID:       audit.Ref(in.Caller.ID),
		Action:       "payment_registered",
		Entity:       "payment",
		EntityID:     audit.Ref(p.ID),
		Metadata: map[string]string{
			"monto":       p.Amount.StringFixed(2),
			"periodo_fin": p.PeriodEnd.Format(time.RFC3339),
		},
	})

	return p, nil
}
