package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/logger"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// uuidParam reads a path parameter. On failure it answers 400 and returns false.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido")
		return uuid.Nil, false
	}
	return id, true
}

// uuidQuery reads an optional query parameter. ok is false only when the
// value is present and malformed; a 400 has been written in that case.
func uuidQuery(c *gin.Context, name string) (id *uuid.UUID, ok bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido")
		return nil, false
	}
	return &parsed, true
}

// pagination reads skip/limit with the defaults of the list endpoints.
func pagination(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	if skip < 0 {
		skip = 0
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}

// boolQuery returns nil when the parameter is absent or not a boolean.
func boolQuery(c *gin.Context, name string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(name)))
	if err != nil {
		return nil
	}
	return &v
}

// fail writes err, logging anything that is not an expected business error.
func fail(c *gin.Context, msg string, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.From(c).Error(msg, zap.Error(err))
	}
	httperr.From(c, err)
}
