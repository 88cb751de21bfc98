package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/payment"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Barbershop, error) {
	return findBarbershop(ctx, r.db, id)
}

func (r *PaymentGormRepository) CreateAndExtend(
	ctx context.Context,
	p *models.Payment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return extendBarbershop(tx, p.BarbershopID, domain.ExtendUntil(p))
	})
}

func (r *PaymentGormRepository) GetPayment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentGormRepository) Save(
	ctx context.Context,
	p *models.Payment,
	extend bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		if !extend {
			return nil
		}
		return extendBarbershop(tx, p.BarbershopID, domain.ExtendUntil(p))
	})
}

func (r *PaymentGormRepository) ListByBarbershop(
	ctx context.Context,
	barbershopID uuid.UUID,
) ([]models.Payment, error) {

	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("paid_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentGormRepository) List(
	ctx context.Context,
	status string,
	skip int,
	limit int,
) ([]models.Payment, error) {

	q := r.db.WithContext(ctx).Model(&models.Payment{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var payments []models.Payment
	if err := q.
		Order("paid_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Compile-time check
var _ domain.Repository = (*PaymentGormRepository)(nil)
