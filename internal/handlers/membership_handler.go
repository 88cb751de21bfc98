package handlers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/cache"
	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/httpresp"
	"github.com/BruksfildServices01/nextbarber-api/internal/logger"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

const (
	activeMembershipsKey = "membresias:activas"
	membershipsTTL       = 10 * time.Minute
)

type MembershipHandler struct {
	db    *gorm.DB
	cache cache.Store
}

func NewMembershipHandler(db *gorm.DB, store cache.Store) *MembershipHandler {
	return &MembershipHandler{db: db, cache: store}
}

type CreateMembershipRequest struct {
	Name                 string           `json:"nombre" binding:"required"`
	MonthlyPrice         *decimal.Decimal `json:"precio_mensual" binding:"required"`
	AppointmentLimit     *int             `json:"limite_citas_mes" binding:"omitempty,min=0"`
	BarberLimit          *int             `json:"limite_barberos" binding:"omitempty,min=0"`
	HasEcommerce         bool             `json:"tiene_ecommerce"`
	HasAdvancedAnalytics bool             `json:"tiene_analytics_avanzados"`
	HasPushNotifications bool             `json:"tiene_notificaciones_push"`
	SearchPriority       int              `json:"prioridad_busqueda"`
	MapHighlight         bool             `json:"destacado_mapa"`
	Features             []string         `json:"caracteristicas"`
	Active               *bool            `json:"activo"`
}

// List serves the active plans from cache when possible. Cache failures
// fall through to the database.
func (h *MembershipHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var plans []models.Membership
	hit, err := cache.GetJSON(ctx, h.cache, activeMembershipsKey, &plans)
	if err != nil {
		logger.From(c).Warn("membership cache read failed", zap.Error(err))
	}
	if hit {
		httpresp.List(c, plans)
		return
	}

	if err := h.db.WithContext(ctx).
		Where("active = ?", true).
		Order("monthly_price ASC").
		Find(&plans).Error; err != nil {
		fail(c, "list memberships", err)
		return
	}

	if err := cache.SetJSON(ctx, h.cache, activeMembershipsKey, plans, membershipsTTL); err != nil {
		logger.From(c).Warn("membership cache write failed", zap.Error(err))
	}

	httpresp.List(c, plans)
}

func (h *MembershipHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var plan models.Membership
	if err := h.db.WithContext(c.Request.Context()).First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "membership_not_found", "Membresía no encontrada")
			return
		}
		fail(c, "get membership", err)
		return
	}

	httpresp.OK(c, plan)
}

func (h *MembershipHandler) Create(c *gin.Context) {
	var req CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if req.MonthlyPrice.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo")
		return
	}

	features := req.Features
	if features == nil {
		features = []string{}
	}
	raw, err := json.Marshal(features)
	if err != nil {
		fail(c, "encode features", err)
		return
	}

	plan := models.Membership{
		Name:                 strings.ToLower(strings.TrimSpace(req.Name)),
		MonthlyPrice:         *req.MonthlyPrice,
		AppointmentLimit:     req.AppointmentLimit,
		BarberLimit:          req.BarberLimit,
		HasEcommerce:         req.HasEcommerce,
		HasAdvancedAnalytics: req.HasAdvancedAnalytics,
		HasPushNotifications: req.HasPushNotifications,
		SearchPriority:       req.SearchPriority,
		MapHighlight:         req.MapHighlight,
		Features:             datatypes.JSON(raw),
		Active:               req.Active == nil || *req.Active,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&plan).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "membership_exists", "Ya existe una membresía con ese nombre")
			return
		}
		fail(c, "create membership", err)
		return
	}

	if err := h.cache.Delete(c.Request.Context(), activeMembershipsKey); err != nil {
		logger.From(c).Warn("membership cache invalidation failed", zap.Error(err))
	}

	httpresp.Created(c, plan)
}
