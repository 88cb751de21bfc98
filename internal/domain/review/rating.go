package review

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
)

const (
	MinRating = 1
	MaxRating = 5
)

func ValidateRating(r int) error {
	if r < MinRating || r > MaxRating {
		return httperr.ErrBusiness("invalid_rating", "La calificación debe estar entre 1 y 5")
	}
	return nil
}

// NextAverage folds one more rating into a rounded running average:
// round((avg*count + rating) / (count+1), 1).
func NextAverage(avg decimal.Decimal, count, rating int) decimal.Decimal {
	total := avg.Mul(decimal.NewFromInt(int64(count))).Add(decimal.NewFromInt(int64(rating)))
	return total.Div(decimal.NewFromInt(int64(count + 1))).Round(1)
}

// ReweightAverage replaces one rating already counted in avg.
func ReweightAverage(avg decimal.Decimal, count, oldRating, newRating int) decimal.Decimal {
	if count <= 0 {
		return avg
	}
	total := avg.Mul(decimal.NewFromInt(int64(count))).
		Sub(decimal.NewFromInt(int64(oldRating))).
		Add(decimal.NewFromInt(int64(newRating)))
	return total.Div(decimal.NewFromInt(int64(count))).Round(1)
}
