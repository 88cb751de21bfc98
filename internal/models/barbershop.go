package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Barbershop struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"propietario_id"`

	Name        string   `gorm:"size:255;not null" json:"nombre"`
	Description string   `gorm:"type:text" json:"descripcion"`
	Address     string   `gorm:"size:500;not null" json:"direccion"`
	Phone       string   `gorm:"size:20" json:"telefono"`
	Email       string   `gorm:"size:255" json:"email"`
	Latitude    *float64 `json:"latitud"`
	Longitude   *float64 `json:"longitud"`
	TaxID       string   `gorm:"size:50" json:"nit"`
	Timezone    string   `gorm:"size:64" json:"zona_horaria"`

	Schedule datatypes.JSON `json:"horario"`

	Status    string     `gorm:"size:20;not null;index" json:"estado"`
	Plan      string     `gorm:"size:20;not null" json:"plan_membresia"`
	ExpiresAt *time.Time `json:"fecha_vencimiento"`

	RatingAvg    decimal.Decimal `gorm:"type:numeric(2,1);not null;default:0" json:"calificacion_promedio"`
	TotalReviews int             `gorm:"not null;default:0" json:"total_resenas"`

	LogoURL string         `gorm:"size:500" json:"logo_url"`
	Photos  datatypes.JSON `json:"fotos"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barbershop) BeforeCreate(*gorm.DB) error {
	newID(&b.ID)
	return nil
}
