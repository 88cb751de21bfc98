package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID uuid.UUID `gorm:"type:uuid;not null;index" json:"barberia_id"`
	ClientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"cliente_id"`

	Total           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	Status          string          `gorm:"size:20;not null" json:"estado"`
	ShippingAddress string          `gorm:"size:500" json:"direccion_envio"`
	Notes           string          `gorm:"type:text" json:"notas"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	newID(&o.ID)
	return nil
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"pedido_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"producto_id"`

	Quantity  int             `gorm:"not null" json:"cantidad"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"precio_unitario"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	newID(&i.ID)
	return nil
}
