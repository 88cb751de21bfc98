package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/logger"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated service endpoints.
type PublicHandler struct {
	db      *gorm.DB
	name    string
	version string
}

func NewPublicHandler(db *gorm.DB, name, version string) *PublicHandler {
	return &PublicHandler{db: db, name: name, version: version}
}

func (h *PublicHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": h.name + " v" + h.version,
		"docs":    "/api/docs",
	})
}

func (h *PublicHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Ready pings the database; a failed ping is reported as 503.
func (h *PublicHandler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		logger.From(c).Error("readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
