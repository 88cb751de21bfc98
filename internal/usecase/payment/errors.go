package payment

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
)

var (
	errBarbershopNotFound = httperr.ErrNotFound("barbershop_not_found", "Barbería no encontrada")
	errPaymentNotFound    = httperr.ErrNotFound("payment_not_found", "Pago no encontrado")
	errInvalidMethod      = httperr.ErrBusiness("invalid_payment_method", "Método de pago inválido")
	errInvalidStatus      = httperr.ErrBusiness("invalid_status", "Estado de pago inválido")
	errInvalidAmount      = httperr.ErrBusiness("invalid_amount", "El monto debe ser mayor que cero")
	errForbidden          = httperr.ErrForbidden("forbidden", "No tienes permisos para realizar esta acción")
	errInvalidPeriod      = httperr.ErrBusiness("invalid_period", "El periodo de pago es inválido")
)

func notFound(err error, nf error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nf
	}
	return err
}
