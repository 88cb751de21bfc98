package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is unique per (client, barbershop).
type Review struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BarbershopID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_client_shop,priority:2" json:"barberia_id"`
	ClientID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_client_shop,priority:1" json:"cliente_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid" json:"cita_id"`

	Rating    int        `gorm:"not null" json:"calificacion"`
	Comment   string     `gorm:"type:text" json:"comentario"`
	ShopReply string     `gorm:"type:text" json:"respuesta_barberia"`
	RepliedAt *time.Time `json:"fecha_respuesta"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	newID(&r.ID)
	return nil
}
