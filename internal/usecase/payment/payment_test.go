package payment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	"github.com/BruksfildServices01/nextbarber-api/internal/config"
	"github.com/BruksfildServices01/nextbarber-api/internal/db"
	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/infra/repository"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

type fixture struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	repo  *repository.PaymentGormRepository
	admin *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := db.NewDB(config.DBConfig{
		URL: fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", t.Name()),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &fixture{
		db:    gdb,
		audit: audit.NewDispatcher(nopSink{}, zap.NewNop()),
		repo:  repository.NewPaymentGormRepository(gdb),
		admin: &models.User{Email: "root@example.com", Name: "Root", Role: models.RoleSuperAdmin, Active: true, PasswordHash: "x"},
	}
	t.Cleanup(func() { f.audit.Close(context.Background()) })

	if err := gdb.Create(f.admin).Error; err != nil {
		t.Fatalf("admin: %v", err)
	}
	return f
}

func (f *fixture) shop(t *testing.T, status string) *models.Barbershop {
	t.Helper()
	shop := &models.Barbershop{OwnerID: f.admin.ID, Name: "Barbería", Address: "Calle 1", Status: status, Plan: "basico"}
	if err := f.db.Create(shop).Error; err != nil {
		t.Fatalf("shop: %v", err)
	}
	return shop
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) *models.Barbershop {
	t.Helper()
	var shop models.Barbershop
	if err := f.db.First(&shop, "id = ?", id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	return &shop
}

func period() (time.Time, time.Time) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func TestRegisterPayment_ReactivatesSuspendedShop(t *testing.T) {
	f := newFixture(t)
	shop := f.shop(t, "suspendida")
	start, end := period()

	p, err := NewRegisterPayment(f.repo, f.audit).Execute(context.Background(), RegisterPaymentInput{
		Caller:       f.admin,
		BarbershopID: shop.ID,
		Amount:       decimal.RequireFromString("99000"),
		Method:       "nequi",
		PeriodStart:  start,
		PeriodEnd:    end,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if p.Status != "completado" || p.RecordedBy == nil || *p.RecordedBy != f.admin.ID {
		t.Fatalf("payment = %+v", p)
	}

	got := f.reload(t, shop.ID)
	if got.Status != "activa" {
		t.Fatalf("status = %q, want activa", got.Status)
	}
	if got.ExpiresAt == nil || !got.ExpiresAt.Equal(end) {
		t.Fatalf("expires at = %v, want %v", got.ExpiresAt, end)
	}
}

func TestRegisterPayment_KeepsOtherStatuses(t *testing.T) {
	f := newFixture(t)
	shop := f.shop(t, "pendiente")
	start, end := period()

	_, err := NewRegisterPayment(f.repo, f.audit).Execute(context.Background(), RegisterPaymentInput{
		Caller: f.admin, BarbershopID: shop.ID, Amount: decimal.NewFromInt(10), Method: "efectivo", PeriodStart: start, PeriodEnd: end,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := f.reload(t, shop.ID); got.Status != "pendiente" {
		t.Fatalf("status = %q, want pendiente", got.Status)
	}
}

func TestRegisterPayment_Validation(t *testing.T) {
	f := newFixture(t)
	shop := f.shop(t, "activa")
	start, end := period()
	uc := NewRegisterPayment(f.repo, f.audit)

	cases := []struct {
		name string
		in   RegisterPaymentInput
		code string
	}{
		{"method", RegisterPaymentInput{BarbershopID: shop.ID, Amount: decimal.NewFromInt(1), Method: "bitcoin", PeriodStart: start, PeriodEnd: end}, "invalid_payment_method"},
		{"amount", RegisterPaymentInput{BarbershopID: shop.ID, Amount: decimal.Zero, Method: "pse", PeriodStart: start, PeriodEnd: end}, "invalid_amount"},
		{"period", RegisterPaymentInput{BarbershopID: shop.ID, Amount: decimal.NewFromInt(1), Method: "pse", PeriodStart: end, PeriodEnd: start}, "invalid_period"},
		{"shop", RegisterPaymentInput{BarbershopID: uuid.New(), Amount: decimal.NewFromInt(1), Method: "pse", PeriodStart: start, PeriodEnd: end}, "barbershop_not_found"},
	}
	for _, tc := range cases {
		tc.in.Caller = f.admin
		if _, err := uc.Execute(context.Background(), tc.in); !httperr.IsBusiness(err, tc.code) {
			t.Fatalf("%s: err = %v, want %s", tc.name, err, tc.code)
		}
	}
}

func TestUpdatePayment_CompletingExtendsShop(t *testing.T) {
	f := newFixture(t)
	shop := f.shop(t, "suspendida")
	start, end := period()

	p := &models.Payment{
		BarbershopID: shop.ID,
		Amount:       decimal.NewFromInt(50000),
		Method:       "transferencia",
		Status:       "pendiente",
		PeriodStart:  start,
		PeriodEnd:    end,
		PaidAt:       start,
	}
	if err := f.db.Create(p).Error; err != nil {
		t.Fatalf("payment: %v", err)
	}

	uc := NewUpdatePayment(f.repo, f.audit)
	ref := "TRX-1"
	if _, err := uc.Execute(context.Background(), UpdatePaymentInput{Caller: f.admin, PaymentID: p.ID, ExternalRef: &ref}); err != nil {
		t.Fatalf("update ref: %v", err)
	}
	if got := f.reload(t, shop.ID); got.Status != "suspendida" || got.ExpiresAt != nil {
		t.Fatalf("shop changed without completion: %+v", got)
	}

	done := "completado"
	if _, err := uc.Execute(context.Background(), UpdatePaymentInput{Caller: f.admin, PaymentID: p.ID, Status: &done}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	got := f.reload(t, shop.ID)
	if got.Status != "activa" || got.ExpiresAt == nil || !got.ExpiresAt.Equal(end) {
		t.Fatalf("shop = %s / %v", got.Status, got.ExpiresAt)
	}

	bogus := "perdido"
	if _, err := uc.Execute(context.Background(), UpdatePaymentInput{Caller: f.admin, PaymentID: p.ID, Status: &bogus}); !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("bogus status err = %v", err)
	}
}
