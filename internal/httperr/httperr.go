package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type HTTPError struct {
	Code   string `json:"error_code"`
	Detail string `json:"detail"`
}

func Write(c *gin.Context, status int, code, detail string) {
	c.JSON(status, HTTPError{
		Code:   code,
		Detail: detail,
	})
}

// Abort is Write for middleware: the rest of the chain is skipped.
func Abort(c *gin.Context, status int, code, detail string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:   code,
		Detail: detail,
	})
}

func BadRequest(c *gin.Context, code, detail string) {
	Write(c, http.StatusBadRequest, code, detail)
}

func NotFound(c *gin.Context, code, detail string) {
	Write(c, http.StatusNotFound, code, detail)
}

func Forbidden(c *gin.Context, code, detail string) {
	Write(c, http.StatusForbidden, code, detail)
}

func Internal(c *gin.Context, code, detail string) {
	Write(c, http.StatusInternalServerError, code, detail)
}

func Unauthorized(c *gin.Context, code, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	Write(c, http.StatusUnauthorized, code, detail)
}

// InvalidRequest answers a failed bind.
func InvalidRequest(c *gin.Context, err error) {
	BadRequest(c, "invalid_request", err.Error())
}

// From writes err: business errors with their own status, missing rows as
// 404 and anything else as 500.
func From(c *gin.Context, err error) {
	var be BusinessError
	switch {
	case errors.As(err, &be):
		Write(c, be.HTTPStatus(), be.Code, be.Detail)
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "not_found", "Recurso no encontrado")
	default:
		_ = c.Error(err)
		Internal(c, "internal_error", "Error interno del servidor")
	}
}

// IsUniqueViolation reports a unique-constraint failure from either driver.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
