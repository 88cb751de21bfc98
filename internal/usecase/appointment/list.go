package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/authz"
	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/appointment"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
	"github.com/BruksfildServices01/nextbarber-api/internal/timezone"
)

const dateLayout = "2006-01-02"

// ======================================================
// Client's own appointments
// ======================================================

type ListMyAppointments struct {
	repo domain.Repository
}

func NewListMyAppointments(repo domain.Repository) *ListMyAppointments {
	return &ListMyAppointments{repo: repo}
}

// Execute lists newest first.
func (uc *ListMyAppointments) Execute(
	ctx context.Context,
	client *models.User,
	status string,
) ([]models.Appointment, error) {
	return uc.repo.ListByClient(ctx, client.ID, status)
}

// ======================================================
// Shop agenda
// ======================================================

type ListBarbershopAppointmentsInput struct {
	Caller       *models.User
	BarbershopID uuid.UUID

	// Date selects one whole day (YYYY-MM-DD) in the shop's time zone and
	// takes precedence over From/To.
	Date   string
	From   string
	To     string
	Status string
}

type ListBarbershopAppointments struct {
	repo domain.Repository
}

func NewListBarbershopAppointments(repo domain.Repository) *ListBarbershopAppointments {
	return &ListBarbershopAppointments{repo: repo}
}

// Execute lists oldest first.
func (uc *ListBarbershopAppointments) Execute(
	ctx context.Context,
	in ListBarbershopAppointmentsInput,
) ([]models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, notFound(err, errBarbershopNotFound)
	}

	if !authz.CanManageShop(in.Caller, shop) {
		return nil, errForbidden
	}

	f := domain.ListFilter{Status: in.Status}

	if in.Date != "" {
		start, end, err := timezone.DayBounds(in.Date, shop.Timezone)
		if err != nil {
			return nil, errInvalidDateTime
		}
		f.From, f.To = &start, &end
	} else {
		if in.From != "" {
			from, err := timezone.ParseDateTime(in.From, shop.Timezone)
			if err != nil {
				return nil, errInvalidDateTime
			}
			f.From = &from
		}
		if len(in.To) == len(dateLayout) {
			// a bare date includes that whole day
			_, end, err := timezone.DayBounds(in.To, shop.Timezone)
			if err != nil {
				return nil, errInvalidDateTime
			}
			f.To = &end
		} else if in.To != "" {
			to, err := timezone.ParseDateTime(in.To, shop.Timezone)
			if err != nil {
				return nil, errInvalidDateTime
			}
			f.To = &to
		}
	}

	return uc.repo.ListByBarbershop(ctx, shop.ID, f)
}
