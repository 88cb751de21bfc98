package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID uuid.UUID  `gorm:"type:uuid;not null;index" json:"barberia_id"`
	RecordedBy   *uuid.UUID `gorm:"type:uuid" json:"registrado_por"`

	Amount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"monto"`
	Method string          `gorm:"size:20;not null" json:"metodo_pago"`
	Status string          `gorm:"size:20;not null;index" json:"estado"`

	PeriodStart time.Time `gorm:"not null" json:"periodo_inicio"`
	PeriodEnd   time.Time `gorm:"not null" json:"periodo_fin"`

	ExternalRef string `gorm:"size:255" json:"referencia_externa"`
	InvoiceURL  string `gorm:"size:500" json:"factura_url"`
	Notes       string `gorm:"type:text" json:"notas"`

	PaidAt    time.Time `gorm:"not null;index" json:"fecha_pago"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	newID(&p.ID)
	return nil
}
