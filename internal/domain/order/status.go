package order

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type Status string

const (
	StatusPending   Status = "pendiente"
	StatusConfirmed Status = "confirmado"
	StatusShipped   Status = "enviado"
	StatusDelivered Status = "entregado"
	StatusCancelled Status = "cancelado"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Line prices an order item from the product's current price.
func Line(p *models.Product, quantity int) models.OrderItem {
	return models.OrderItem{
		ProductID: p.ID,
		Quantity:  quantity,
		UnitPrice: p.Price,
		Subtotal:  p.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

func Total(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}
