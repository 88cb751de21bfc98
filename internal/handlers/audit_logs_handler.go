package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/authz"
	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/middleware"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List shows every shop's trail to a super admin. A shop admin only sees
// entries of the shops they own.
func (h *AuditLogsHandler) List(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	shopID, ok := uuidQuery(c, "barberia_id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Scope
	// --------------------------------------------------

	q := h.db.
		WithContext(c.Request.Context()).
		Model(&models.AuditLog{})

	if shopID != nil {
		shop, ok := loadBarbershop(c, h.db, *shopID)
		if !ok {
			return
		}
		if !authz.CanManageShop(caller, shop) {
			httperr.Forbidden(c, "forbidden", "No tienes permisos para ver esta auditoría")
			return
		}
		q = q.Where("barbershop_id = ?", shop.ID)
	} else if !authz.IsSuperAdmin(caller) {
		q = q.Where(
			"barbershop_id IN (?)",
			h.db.Model(&models.Barbershop{}).Select("id").Where("owner_id = ?", caller.ID),
		)
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at < ?", to.Add(24*time.Hour))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		fail(c, "count audit logs", err)
		return
	}

	logs := []models.AuditLog{}
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		fail(c, "list audit logs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  logs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
