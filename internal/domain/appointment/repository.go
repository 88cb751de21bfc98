package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Status string
}

type Repository interface {
	// -------- Lookups --------
	GetBarbershopByID(ctx context.Context, id uuid.UUID) (*models.Barbershop, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	GetBarber(ctx context.Context, barbershopID, barberID uuid.UUID) (*models.Barber, error)

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Listing --------
	ListByClient(ctx context.Context, clientID uuid.UUID, status string) ([]models.Appointment, error)
	ListByBarbershop(ctx context.Context, barbershopID uuid.UUID, f ListFilter) ([]models.Appointment, error)
}
