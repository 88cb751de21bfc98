package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/appointment"
	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
	"github.com/BruksfildServices01/nextbarber-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Client       *models.User
	BarbershopID uuid.UUID
	ServiceID    uuid.UUID
	BarberID     *uuid.UUID
	ScheduledAt  string
	Notes        string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Service (source of the price/duration snapshot)
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, notFound(err, errServiceNotFound)
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, notFound(err, errBarbershopNotFound)
	}

	if svc.BarbershopID != shop.ID {
		return nil, httperr.ErrBusiness("service_not_in_barbershop", "El servicio no pertenece a esta barbería")
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness("service_inactive", "El servicio no está disponible")
	}

	// --------------------------------------------------
	// Barber (optional)
	// --------------------------------------------------
	if in.BarberID != nil {
		if _, err := uc.repo.GetBarber(ctx, shop.ID, *in.BarberID); err != nil {
			return nil, notFound(err, errBarberNotInShop)
		}
	}

	// --------------------------------------------------
	// Date/time in the shop's time zone
	// --------------------------------------------------
	at, err := timezone.ParseDateTime(in.ScheduledAt, shop.Timezone)
	if err != nil {
		return nil, errInvalidDateTime
	}

	ap := domain.New(in.Client.ID, svc, in.BarberID, at, in.Notes)
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: audit.Ref(shop.ID),
		UserID:       audit.Ref(in.Client.ID),
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     audit.Ref(ap.ID),
	})

	return ap, nil
}
