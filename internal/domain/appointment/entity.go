package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// New books svc, copying its duration and price onto the appointment.
func New(clientID uuid.UUID, svc *models.Service, barberID *uuid.UUID, at time.Time, notes string) *models.Appointment {
	return &models.Appointment{
		BarbershopID: svc.BarbershopID,
		ClientID:     clientID,
		BarberID:     barberID,
		ServiceID:    svc.ID,
		ScheduledAt:  at.UTC(),
		DurationMin:  svc.DurationMin,
		TotalPrice:   svc.Price,
		Status:       string(InitialStatus()),
		Notes:        notes,
	}
}

// Cancel is idempotent. It reports whether anything changed.
func Cancel(ap *models.Appointment, now time.Time) bool {
	if Status(ap.Status) == StatusCancelled {
		return false
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return true
}
