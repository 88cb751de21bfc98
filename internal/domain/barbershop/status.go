package barbershop

import "github.com/BruksfildServices01/nextbarber-api/internal/httperr"

// ===============================
// Barbershop Status
// ===============================

// Status is a flat enum: any authorised caller may set any value.
type Status string

const (
	StatusPending   Status = "pendiente"
	StatusActive    Status = "activa"
	StatusSuspended Status = "suspendida"
	StatusCancelled Status = "cancelada"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusSuspended, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Membership Plan
// ===============================

type Plan string

const (
	PlanBasic        Plan = "basico"
	PlanProfessional Plan = "profesional"
	PlanPremium      Plan = "premium"
)

// PlanRankSQL orders shops by plan tier, premium first when sorted DESC.
const PlanRankSQL = "CASE plan WHEN 'premium' THEN 3 WHEN 'profesional' THEN 2 ELSE 1 END"

func (p Plan) Valid() bool {
	switch p {
	case PlanBasic, PlanProfessional, PlanPremium:
		return true
	}
	return false
}

func (p Plan) Rank() int {
	switch p {
	case PlanPremium:
		return 3
	case PlanProfessional:
		return 2
	}
	return 1
}

// CanSellProducts gates the product catalogue on the shop's plan.
func CanSellProducts(p Plan) error {
	if p == PlanBasic {
		return httperr.ErrForbidden(
			"plan_required",
			"El e-commerce de productos requiere plan Profesional o Premium",
		)
	}
	return nil
}
