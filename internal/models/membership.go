package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Membership is a subscription plan. Name matches Barbershop.Plan.
type Membership struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name             string          `gorm:"size:50;uniqueIndex;not null" json:"nombre"`
	MonthlyPrice     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"precio_mensual"`
	AppointmentLimit *int            `json:"limite_citas_mes"`
	BarberLimit      *int            `json:"limite_barberos"`

	HasEcommerce         bool `gorm:"not null" json:"tiene_ecommerce"`
	HasAdvancedAnalytics bool `gorm:"not null" json:"tiene_analytics_avanzados"`
	HasPushNotifications bool `gorm:"not null" json:"tiene_notificaciones_push"`
	SearchPriority       int  `gorm:"not null" json:"prioridad_busqueda"`
	MapHighlight         bool `gorm:"not null" json:"destacado_mapa"`

	Features datatypes.JSON `json:"caracteristicas"`
	Active   bool           `gorm:"not null" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Membership) BeforeCreate(*gorm.DB) error {
	newID(&m.ID)
	return nil
}
