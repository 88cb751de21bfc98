package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/domain/barbershop"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

func findBarbershop(ctx context.Context, db *gorm.DB, id uuid.UUID) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// extendBarbershop moves the shop's expiry to until and reactivates it if it
// was suspended, in one statement.
func extendBarbershop(tx *gorm.DB, shopID uuid.UUID, until time.Time) error {
	res := tx.Model(&models.Barbershop{}).
		Where("id = ?", shopID).
		Updates(map[string]any{
			"expires_at": until.UTC(),
			"status": gorm.Expr(
				"CASE WHEN status = ? THEN ? ELSE status END",
				string(barbershop.StatusSuspended),
				string(barbershop.StatusActive),
			),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
