package appointment

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/appointment"
	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type fakeRepo struct {
	shops        map[uuid.UUID]*models.Barbershop
	services     map[uuid.UUID]*models.Service
	barbers      map[uuid.UUID]*models.Barber
	appointments map[uuid.UUID]*models.Appointment
	updates      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops:        map[uuid.UUID]*models.Barbershop{},
		services:     map[uuid.UUID]*models.Service{},
		barbers:      map[uuid.UUID]*models.Barber{},
		appointments: map[uuid.UUID]*models.Appointment{},
	}
}

func (f *fakeRepo) GetBarbershopByID(_ context.Context, id uuid.UUID) (*models.Barbershop, error) {
	if s, ok := f.shops[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetBarber(_ context.Context, shopID, id uuid.UUID) (*models.Barber, error) {
	if b, ok := f.barbers[id]; ok && b.BarbershopID == shopID {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = uuid.New()
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	if ap, ok := f.appointments[id]; ok {
		cp := *ap
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.updates++
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) ListByClient(context.Context, uuid.UUID, string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeRepo) ListByBarbershop(_ context.Context, _ uuid.UUID, _ domain.ListFilter) ([]models.Appointment, error) {
	return nil, nil
}

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

type fixture struct {
	repo    *fakeRepo
	audit   *audit.Dispatcher
	owner   *models.User
	client  *models.User
	shop    *models.Barbershop
	service *models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:   newFakeRepo(),
		audit:  audit.NewDispatcher(nopSink{}, zap.NewNop()),
		owner:  &models.User{ID: uuid.New(), Role: models.RoleShopAdmin},
		client: &models.User{ID: uuid.New(), Role: models.RoleClient},
	}
	t.Cleanup(func() { f.audit.Close(context.Background()) })

	f.shop = &models.Barbershop{ID: uuid.New(), OwnerID: f.owner.ID, Timezone: "America/Bogota"}
	f.service = &models.Service{
		ID:           uuid.New(),
		BarbershopID: f.shop.ID,
		Price:        decimal.RequireFromString("30000"),
		DurationMin:  40,
		Active:       true,
	}
	f.repo.shops[f.shop.ID] = f.shop
	f.repo.services[f.service.ID] = f.service
	return f
}

func (f *fixture) book(t *testing.T) *models.Appointment {
	t.Helper()
	ap, err := NewCreateAppointment(f.repo, f.audit).Execute(context.Background(), CreateAppointmentInput{
		Client:       f.client,
		BarbershopID: f.shop.ID,
		ServiceID:    f.service.ID,
		ScheduledAt:  "2026-06-01T10:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return ap
}

func statusOf(err error) int {
	if be, ok := err.(httperr.BusinessError); ok {
		return be.HTTPStatus()
	}
	return 0
}

func TestCreate_SnapshotsServiceAndStartsPending(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t)

	f.service.Price = decimal.RequireFromString("50000")
	f.service.DurationMin = 60

	stored := f.repo.appointments[ap.ID]
	if stored.DurationMin != 40 || !stored.TotalPrice.Equal(decimal.RequireFromString("30000")) {
		t.Fatalf("snapshot changed: %+v", stored)
	}
	if stored.Status != string(domain.StatusPending) {
		t.Fatalf("status = %q", stored.Status)
	}
	// 10:00 in Bogota
	if stored.ScheduledAt.Hour() != 15 {
		t.Fatalf("scheduled at = %v", stored.ScheduledAt)
	}
}

func TestCreate_Errors(t *testing.T) {
	f := newFixture(t)
	otherShop := &models.Barbershop{ID: uuid.New(), OwnerID: uuid.New()}
	f.repo.shops[otherShop.ID] = otherShop

	cases := []struct {
		name   string
		in     CreateAppointmentInput
		status int
	}{
		{"unknown service", CreateAppointmentInput{BarbershopID: f.shop.ID, ServiceID: uuid.New(), ScheduledAt: "2026-06-01T10:00"}, http.StatusNotFound},
		{"unknown shop", CreateAppointmentInput{BarbershopID: uuid.New(), ServiceID: f.service.ID, ScheduledAt: "2026-06-01T10:00"}, http.StatusNotFound},
		{"service of another shop", CreateAppointmentInput{BarbershopID: otherShop.ID, ServiceID: f.service.ID, ScheduledAt: "2026-06-01T10:00"}, http.StatusBadRequest},
		{"bad date", CreateAppointmentInput{BarbershopID: f.shop.ID, ServiceID: f.service.ID, ScheduledAt: "ayer"}, http.StatusBadRequest},
		{"foreign barber", CreateAppointmentInput{BarbershopID: f.shop.ID, ServiceID: f.service.ID, BarberID: ptr(uuid.New()), ScheduledAt: "2026-06-01T10:00"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		tc.in.Client = f.client
		_, err := NewCreateAppointment(f.repo, f.audit).Execute(context.Background(), tc.in)
		if got := statusOf(err); got != tc.status {
			t.Fatalf("%s: status = %d (err %v), want %d", tc.name, got, err, tc.status)
		}
	}
}

func TestCancel_IdempotentAndScoped(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t)
	uc := NewCancelAppointment(f.repo, f.audit)

	otherClient := &models.User{ID: uuid.New(), Role: models.RoleClient}
	if _, _, err := uc.Execute(context.Background(), otherClient, ap.ID); statusOf(err) != http.StatusForbidden {
		t.Fatalf("other client cancel err = %v", err)
	}

	got, changed, err := uc.Execute(context.Background(), f.client, ap.ID)
	if err != nil || !changed || got.Status != string(domain.StatusCancelled) {
		t.Fatalf("first cancel: changed=%v err=%v ap=%+v", changed, err, got)
	}

	got, changed, err = uc.Execute(context.Background(), f.client, ap.ID)
	if err != nil || changed || got.Status != string(domain.StatusCancelled) {
		t.Fatalf("second cancel: changed=%v err=%v ap=%+v", changed, err, got)
	}
	if f.repo.updates != 1 {
		t.Fatalf("updates = %d, want 1", f.repo.updates)
	}
}

func TestCancel_AnyAdminRole(t *testing.T) {
	f := newFixture(t)
	uc := NewCancelAppointment(f.repo, f.audit)

	admins := []*models.User{
		{ID: uuid.New(), Role: models.RoleShopAdmin},
		{ID: uuid.New(), Role: models.RoleSuperAdmin},
	}
	for _, admin := range admins {
		ap := f.book(t)
		got, changed, err := uc.Execute(context.Background(), admin, ap.ID)
		if err != nil || !changed || got.Status != string(domain.StatusCancelled) {
			t.Fatalf("%s cancel: changed=%v err=%v", admin.Role, changed, err)
		}
	}
}

func TestUpdate_AnyStatusButKnownValues(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t)
	uc := NewUpdateAppointment(f.repo, f.audit)

	for _, s := range []string{"completada", "pendiente"} {
		status := s
		got, err := uc.Execute(context.Background(), UpdateAppointmentInput{Caller: f.owner, AppointmentID: ap.ID, Status: &status})
		if err != nil || got.Status != status {
			t.Fatalf("set %s: err=%v ap=%+v", status, err, got)
		}
	}

	bogus := "borrada"
	if _, err := uc.Execute(context.Background(), UpdateAppointmentInput{Caller: f.owner, AppointmentID: ap.ID, Status: &bogus}); statusOf(err) != http.StatusBadRequest {
		t.Fatalf("bogus status err = %v", err)
	}

	if _, err := uc.Execute(context.Background(), UpdateAppointmentInput{Caller: &models.User{ID: uuid.New(), Role: models.RoleShopAdmin}, AppointmentID: ap.ID}); statusOf(err) != http.StatusForbidden {
		t.Fatalf("other admin err = %v", err)
	}
}

func TestListBarbershop_RequiresManager(t *testing.T) {
	f := newFixture(t)
	uc := NewListBarbershopAppointments(f.repo)

	if _, err := uc.Execute(context.Background(), ListBarbershopAppointmentsInput{Caller: f.client, BarbershopID: f.shop.ID}); statusOf(err) != http.StatusForbidden {
		t.Fatalf("client listing err = %v", err)
	}
	if _, err := uc.Execute(context.Background(), ListBarbershopAppointmentsInput{Caller: f.owner, BarbershopID: f.shop.ID, Date: "2026-06-01"}); err != nil {
		t.Fatalf("owner listing: %v", err)
	}
	if _, err := uc.Execute(context.Background(), ListBarbershopAppointmentsInput{Caller: f.owner, BarbershopID: f.shop.ID, Date: "01/06/2026"}); statusOf(err) != http.StatusBadRequest {
		t.Fatalf("bad date err = %v", err)
	}
}

func ptr[T any](v T) *T { return &v }
