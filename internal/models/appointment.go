package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BarbershopID uuid.UUID  `gorm:"type:uuid;not null;index" json:"barberia_id"`
	ClientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"cliente_id"`
	BarberID     *uuid.UUID `gorm:"type:uuid;index" json:"barbero_id"`
	ServiceID    uuid.UUID  `gorm:"type:uuid;not null" json:"servicio_id"`

	ScheduledAt time.Time `gorm:"not null;index" json:"fecha_hora"`

	// Snapshot of the service at booking time.
	DurationMin int             `gorm:"not null" json:"duracion_minutos"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"precio_total"`

	Status      string     `gorm:"size:20;not null;index" json:"estado"`
	Notes       string     `gorm:"type:text" json:"notas"`
	CancelledAt *time.Time `json:"cancelada_en"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	newID(&a.ID)
	return nil
}
