package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	"github.com/BruksfildServices01/nextbarber-api/internal/authz"
	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/appointment"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
	"github.com/BruksfildServices01/nextbarber-api/internal/timezone"
)

type UpdateAppointmentInput struct {
	Caller        *models.User
	AppointmentID uuid.UUID

	BarberID    *uuid.UUID
	ScheduledAt *string
	Status      *string
	Notes       *string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute applies any subset of fields. Status values are checked against
// the known set but transitions are not restricted.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, notFound(err, errAppointmentNotFound)
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, ap.BarbershopID)
	if err != nil {
		return nil, notFound(err, errBarbershopNotFound)
	}

	if !authz.CanActOnAppointment(in.Caller, shop, ap) {
		return nil, errForbidden
	}

	if in.Status != nil {
		if !domain.Status(*in.Status).Valid() {
			return nil, errInvalidStatus
		}
		ap.Status = *in.Status
	}

	if in.BarberID != nil {
		if _, err := uc.repo.GetBarber(ctx, shop.ID, *in.BarberID); err != nil {
			return nil, notFound(err, errBarberNotInShop)
		}
		ap.BarberID = in.BarberID
	}

	if in.ScheduledAt != nil {
		at, err := timezone.ParseDateTime(*in.ScheduledAt, shop.Timezone)
		if err != nil {
			return nil, errInvalidDateTime
		}
		ap.ScheduledAt = at
	}

	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: audit.Ref(shop.ID),
		UserID:       audit.Ref(in.Caller.ID),
		Action:       "appointment_updated",
		Entity:       "appointment",
		EntityID:     audit.Ref(ap.ID),
		Metadata:     map[string]string{"estado": ap.Status},
	})

	return ap, nil
}
