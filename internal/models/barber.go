package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Barber struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID uuid.UUID `gorm:"type:uuid;not null;index" json:"barberia_id"`

	Name        string         `gorm:"size:255;not null" json:"nombre"`
	Phone       string         `gorm:"size:20" json:"telefono"`
	Email       string         `gorm:"size:255" json:"email"`
	PhotoURL    string         `gorm:"size:500" json:"foto_url"`
	Description string         `gorm:"type:text" json:"descripcion"`
	Schedule    datatypes.JSON `json:"horario"`
	Active      bool           `gorm:"not null" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barber) BeforeCreate(*gorm.DB) error {
	newID(&b.ID)
	return nil
}
