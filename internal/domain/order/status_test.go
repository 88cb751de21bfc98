package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

func TestLineAndTotal(t *testing.T) {
	cera := &models.Product{ID: uuid.New(), Price: decimal.RequireFromString("18500.50")}
	aceite := &models.Product{ID: uuid.New(), Price: decimal.RequireFromString("32000")}

	items := []models.OrderItem{Line(cera, 2), Line(aceite, 1)}

	if !items[0].Subtotal.Equal(decimal.RequireFromString("37001")) {
		t.Fatalf("subtotal = %s", items[0].Subtotal)
	}
	if got := Total(items); !got.Equal(decimal.RequireFromString("69001")) {
		t.Fatalf("total = %s", got)
	}
}
