package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID uuid.UUID `gorm:"type:uuid;not null;index" json:"barberia_id"`

	Name        string          `gorm:"size:255;not null" json:"nombre"`
	Description string          `gorm:"type:text" json:"descripcion"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"precio"`
	Stock       int             `gorm:"not null" json:"stock"`
	Category    string          `gorm:"size:100" json:"categoria"`
	ImageURL    string          `gorm:"size:500" json:"imagen_url"`
	Images      datatypes.JSON  `json:"imagenes"`
	Active      bool            `gorm:"not null" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	newID(&p.ID)
	return nil
}
