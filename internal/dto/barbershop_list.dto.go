package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

// BarbershopListDTO is the trimmed shop shape of the public directory.
type BarbershopListDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"nombre"`
	Address   string          `json:"direccion"`
	Latitude  *float64        `json:"latitud"`
	Longitude *float64        `json:"longitud"`
	RatingAvg decimal.Decimal `json:"calificacion_promedio"`
	LogoURL   string          `json:"logo_url"`
	Status    string          `json:"estado"`
	Plan      string          `json:"plan_membresia"`
}

func NewBarbershopList(shops []models.Barbershop) []BarbershopListDTO {
	out := make([]BarbershopListDTO, 0, len(shops))
	for _, s := range shops {
		out = append(out, BarbershopListDTO{
			ID:        s.ID,
			Name:      s.Name,
			Address:   s.Address,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			RatingAvg: s.RatingAvg,
			LogoURL:   s.LogoURL,
			Status:    s.Status,
			Plan:      s.Plan,
		})
	}
	return out
}
