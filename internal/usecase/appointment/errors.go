package appointment

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
)

var (
	errAppointmentNotFound = httperr.ErrNotFound("appointment_not_found", "Cita no encontrada")
	errBarbershopNotFound  = httperr.ErrNotFound("barbershop_not_found", "Barbería no encontrada")
	errServiceNotFound     = httperr.ErrNotFound("service_not_found", "Servicio no encontrado")
	errForbidden           = httperr.ErrForbidden("forbidden", "No tienes permisos para realizar esta acción")
	errInvalidDateTime     = httperr.ErrBusiness("invalid_datetime", "Fecha u hora inválida")
	errInvalidStatus       = httperr.ErrBusiness("invalid_status", "Estado de cita inválido")
	errBarberNotInShop     = httperr.ErrBusiness("barber_not_in_barbershop", "El barbero no pertenece a esta barbería")
)

// notFound maps a missing row to the given business error.
func notFound(err error, nf error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nf
	}
	return err
}
