package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/payment"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type UpdatePaymentInput struct {
	Caller      *models.User
	PaymentID   uuid.UUID
	Status      *string
	ExternalRef *string
	InvoiceURL  *string
	Notes       *string
}

type UpdatePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdatePayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdatePayment {
	return &UpdatePayment{
		repo:  repo,
		audit: audit,
	}
}

// Execute applies any subset of fields. Moving a payment into completado
// extends the shop the same way registering one does.
func (uc *UpdatePayment) Execute(
	ctx context.Context,
	in UpdatePaymentInput,
) (*models.Payment, error) {

	p, err := uc.repo.GetPayment(ctx, in.PaymentID)
	if err != nil {
		return nil, notFound(err, errPaymentNotFound)
	}

	old := domain.Status(p.Status)
	extend := false

	if in.Status != nil {
		next := domain.Status(*in.Status)
		if !next.Valid() {
			return nil, errInvalidStatus
		}
		extend = domain.ExtendsShop(old, next)
		p.Status = string(next)
	}
	if in.ExternalRef != nil {
		p.ExternalRef = *in.ExternalRef
	}
	if in.InvoiceURL != nil {
		p.InvoiceURL = *in.InvoiceURL
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}

	if err := uc.repo.Save(ctx, p, extend); err != nil {
		return nil, notFound(err, errBarbershopNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: audit.Ref(p.BarbershopID),
		UserID:       audit.Ref(in.Caller.ID),
		Action:       "payment_updated",
		Entity:       "payment",
		EntityID:     audit.Ref(p.ID),
		Metadata:     map[string]string{"estado_anterior": string(old), "estado": p.Status},
	})

	return p, nil
}
