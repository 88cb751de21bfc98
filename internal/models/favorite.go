package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a plain join row; removing one deletes it.
type Favorite struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"usuario_id"`
	BarbershopID uuid.UUID `gorm:"type:uuid;primaryKey" json:"barberia_id"`
	CreatedAt    time.Time `json:"created_at"`
}
