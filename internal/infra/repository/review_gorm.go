package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/nextbarber-api/internal/domain/review"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Barbershop, error) {
	return findBarbershop(ctx, r.db, id)
}

func (r *ReviewGormRepository) CreateWithAggregate(
	ctx context.Context,
	rv *models.Review,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rv).Error; err != nil {
			return err
		}

		// One statement over the stored values; no read-modify-write.
		return tx.Model(&models.Barbershop{}).
			Where("id = ?", rv.BarbershopID).
			Updates(map[string]any{
				"rating_avg":    gorm.Expr("ROUND((rating_avg * total_reviews + ?) / (total_reviews + 1.0), 1)", rv.Rating),
				"total_reviews": gorm.Expr("total_reviews + 1"),
			}).Error
	})
}

func (r *ReviewGormRepository) GetReview(
	ctx context.Context,
	id uuid.UUID,
) (*models.Review, error) {

	var rv models.Review
	if err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewGormRepository) UpdateWithAggregate(
	ctx context.Context,
	rv *models.Review,
	oldRating int,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rv).Error; err != nil {
			return err
		}
		if rv.Rating == oldRating {
			return nil
		}

		return tx.Model(&models.Barbershop{}).
			Where("id = ? AND total_reviews > 0", rv.BarbershopID).
			Update(
				"rating_avg",
				gorm.Expr("ROUND((rating_avg * total_reviews - ? + ?) / (total_reviews * 1.0), 1)", oldRating, rv.Rating),
			).Error
	})
}

func (r *ReviewGormRepository) SaveReply(
	ctx context.Context,
	rv *models.Review,
) error {
	return r.db.WithContext(ctx).
		Model(rv).
		Select("shop_reply", "replied_at").
		Updates(rv).Error
}

func (r *ReviewGormRepository) ListByBarbershop(
	ctx context.Context,
	barbershopID uuid.UUID,
	skip int,
	limit int,
) ([]models.Review, error) {

	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Compile-time check
var _ domain.Repository = (*ReviewGormRepository)(nil)
