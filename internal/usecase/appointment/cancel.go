package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	"github.com/BruksfildServices01/nextbarber-api/internal/authz"
	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/appointment"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancels the appointment. Cancelling twice is not an error; the
// second call reports changed=false.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	caller *models.User,
	appointmentID uuid.UUID,
) (ap *models.Appointment, changed bool, err error) {

	ap, err = uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, false, notFound(err, errAppointmentNotFound)
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, ap.BarbershopID)
	if err != nil {
		return nil, false, notFound(err, errBarbershopNotFound)
	}

	if !authz.CanCancelAppointment(caller, ap) {
		return nil, false, errForbidden
	}

	if !domain.Cancel(ap, time.Now().UTC()) {
		return ap, false, nil
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, false, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: audit.Ref(shop.ID),
		UserID:       audit.Ref(caller.ID),
		Action:       "appointment_cancelled",
		Entity:       "appointment",
		EntityID:     audit.Ref(ap.ID),
	})

	return ap, true, nil
}
