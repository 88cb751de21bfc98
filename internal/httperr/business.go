package httperr

import (
	"errors"
	"net/http"
)

type BusinessError struct {
	Code   string
	Detail string
	Status int
}

func (e BusinessError) Error() string {
	if e.Detail != "" {
		return e.Code + ": " + e.Detail
	}
	return e.Code
}

func (e BusinessError) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusBadRequest
	}
	return e.Status
}

// ErrBusiness is a rule violation answered with 400.
func ErrBusiness(code, detail string) error {
	return BusinessError{Code: code, Detail: detail}
}

func ErrNotFound(code, detail string) error {
	return BusinessError{Code: code, Detail: detail, Status: http.StatusNotFound}
}

func ErrForbidden(code, detail string) error {
	return BusinessError{Code: code, Detail: detail, Status: http.StatusForbidden}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
