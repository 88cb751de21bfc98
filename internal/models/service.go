package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID uuid.UUID `gorm:"type:uuid;not null;index" json:"barberia_id"`

	Name        string          `gorm:"size:255;not null" json:"nombre"`
	Description string          `gorm:"type:text" json:"descripcion"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"precio"`
	DurationMin int             `gorm:"not null" json:"duracion_minutos"`
	Category    string          `gorm:"size:100" json:"categoria"`
	Active      bool            `gorm:"not null" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	newID(&s.ID)
	return nil
}
