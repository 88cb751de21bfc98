package review

import (
	"context"
	"fmt"
	"net/http"
	"testing"

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
	repo  *repository.ReviewGormRepository
	owner *models.User
	shop  *models.Barbershop
}

func newFixture(t *testing.T, avg string, count int) *fixture {
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
		repo:  repository.NewReviewGormRepository(gdb),
		owner: &models.User{Email: "owner@example.com", Name: "Owner", Role: models.RoleShopAdmin, Active: true, PasswordHash: "x"},
	}
	t.Cleanup(func() { f.audit.Close(context.Background()) })

	if err := gdb.Create(f.owner).Error; err != nil {
		t.Fatalf("owner: %v", err)
	}
	f.shop = &models.Barbershop{
		OwnerID:      f.owner.ID,
		Name:         "Barbería Centro",
		Address:      "Calle 1",
		Status:       "activa",
		Plan:         "basico",
		RatingAvg:    decimal.RequireFromString(avg),
		TotalReviews: count,
	}
	if err := gdb.Create(f.shop).Error; err != nil {
		t.Fatalf("shop: %v", err)
	}
	return f
}

func (f *fixture) client(t *testing.T, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: "Cliente", Role: models.RoleClient, Active: true, PasswordHash: "x"}
	if err := f.db.Create(u).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	return u
}

func (f *fixture) reload(t *testing.T) *models.Barbershop {
	t.Helper()
	var shop models.Barbershop
	if err := f.db.First(&shop, "id = ?", f.shop.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	return &shop
}

func TestCreateReview_FoldsIntoAverage(t *testing.T) {
	f := newFixture(t, "4.0", 3)
	c := f.client(t, "a@example.com")

	_, err := NewCreateReview(f.repo, f.audit).Execute(context.Background(), CreateReviewInput{
		Client:       c,
		BarbershopID: f.shop.ID,
		Rating:       5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	shop := f.reload(t)
	if !shop.RatingAvg.Equal(decimal.RequireFromString("4.3")) || shop.TotalReviews != 4 {
		t.Fatalf("aggregate = %s/%d, want 4.3/4", shop.RatingAvg, shop.TotalReviews)
	}
}

func TestCreateReview_DuplicateLeavesAggregate(t *testing.T) {
	f := newFixture(t, "0", 0)
	c := f.client(t, "a@example.com")
	uc := NewCreateReview(f.repo, f.audit)

	in := CreateReviewInput{Client: c, BarbershopID: f.shop.ID, Rating: 4}
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("first: %v", err)
	}

	in.Rating = 1
	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "duplicate_review") {
		t.Fatalf("second err = %v, want duplicate_review", err)
	}

	shop := f.reload(t)
	if !shop.RatingAvg.Equal(decimal.RequireFromString("4")) || shop.TotalReviews != 1 {
		t.Fatalf("aggregate = %s/%d, want 4/1", shop.RatingAvg, shop.TotalReviews)
	}
}

func TestCreateReview_Validation(t *testing.T) {
	f := newFixture(t, "0", 0)
	c := f.client(t, "a@example.com")
	uc := NewCreateReview(f.repo, f.audit)

	_, err := uc.Execute(context.Background(), CreateReviewInput{Client: c, BarbershopID: f.shop.ID, Rating: 6})
	if !httperr.IsBusiness(err, "invalid_rating") {
		t.Fatalf("rating 6 err = %v", err)
	}

	_, err = uc.Execute(context.Background(), CreateReviewInput{Client: c, BarbershopID: uuid.New(), Rating: 3})
	if be, ok := err.(httperr.BusinessError); !ok || be.HTTPStatus() != http.StatusNotFound {
		t.Fatalf("unknown shop err = %v", err)
	}
}

func TestUpdateReview_ReweightsAndRequiresAuthor(t *testing.T) {
	f := newFixture(t, "0", 0)
	a := f.client(t, "a@example.com")
	b := f.client(t, "b@example.com")
	create := NewCreateReview(f.repo, f.audit)

	rv, err := create.Execute(context.Background(), CreateReviewInput{Client: a, BarbershopID: f.shop.ID, Rating: 5})
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	if _, err := create.Execute(context.Background(), CreateReviewInput{Client: b, BarbershopID: f.shop.ID, Rating: 3}); err != nil {
		t.Fatalf("create b: %v", err)
	}

	update := NewUpdateReview(f.repo, f.audit)
	one := 1
	if _, err := update.Execute(context.Background(), UpdateReviewInput{Caller: b, ReviewID: rv.ID, Rating: &one}); !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("non-author err = %v", err)
	}
	if _, err := update.Execute(context.Background(), UpdateReviewInput{Caller: a, ReviewID: rv.ID, Rating: &one}); err != nil {
		t.Fatalf("update: %v", err)
	}

	// (4.0*2 - 5 + 1) / 2 = 2.0
	shop := f.reload(t)
	if !shop.RatingAvg.Equal(decimal.RequireFromString("2")) || shop.TotalReviews != 2 {
		t.Fatalf("aggregate = %s/%d, want 2/2", shop.RatingAvg, shop.TotalReviews)
	}
}

func TestReplyReview_ShopManagerOnly(t *testing.T) {
	f := newFixture(t, "0", 0)
	c := f.client(t, "a@example.com")

	rv, err := NewCreateReview(f.repo, f.audit).Execute(context.Background(), CreateReviewInput{Client: c, BarbershopID: f.shop.ID, Rating: 4})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	reply := NewReplyReview(f.repo, f.audit)
	if _, err := reply.Execute(context.Background(), c, rv.ID, "gracias"); !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("client reply err = %v", err)
	}

	got, err := reply.Execute(context.Background(), f.owner, rv.ID, "  ¡Gracias por venir!  ")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if got.ShopReply != "¡Gracias por venir!" || got.RepliedAt == nil {
		t.Fatalf("reply not stored: %+v", got)
	}
}
