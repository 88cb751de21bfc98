package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/httpresp"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string           `json:"nombre" binding:"required"`
	Description string           `json:"descripcion"`
	Price       *decimal.Decimal `json:"precio" binding:"required"`
	DurationMin int              `json:"duracion_minutos" binding:"required,min=1"`
	Category    string           `json:"categoria"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"nombre"`
	Description *string          `json:"descripcion"`
	Price       *decimal.Decimal `json:"precio"`
	DurationMin *int             `json:"duracion_minutos" binding:"omitempty,min=1"`
	Category    *string          `json:"categoria"`
	Active      *bool            `json:"activo"`
}

// --------- Handlers ---------

// ListByBarbershop shows active services unless activos=false.
func (h *ServiceHandler) ListByBarbershop(c *gin.Context) {
	shopID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).Where("barbershop_id = ?", shopID)
	if onlyActive := boolQuery(c, "activos"); onlyActive == nil || *onlyActive {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		fail(c, "list services", err)
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	shopID, err := uuid.Parse(c.Query("barberia_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador de barbería inválido")
		return
	}

	shop, ok := loadManagedBarbershop(c, h.db, shopID)
	if !ok {
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo")
		return
	}

	svc := models.Service{
		BarbershopID: shop.ID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Price:        *req.Price,
		DurationMin:  req.DurationMin,
		Category:     strings.ToLower(strings.TrimSpace(req.Category)),
		Active:       true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		fail(c, "create service", err)
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	svc, ok := h.loadManaged(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo")
			return
		}
		svc.Price = *req.Price
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.Category != nil {
		svc.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(svc).Error; err != nil {
		fail(c, "update service", err)
		return
	}

	httpresp.OK(c, svc)
}

// Delete deactivates; booked appointments keep their snapshot.
func (h *ServiceHandler) Delete(c *gin.Context) {
	svc, ok := h.loadManaged(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(svc).
		Update("active", false).Error; err != nil {
		fail(c, "deactivate service", err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Servicio eliminado"})
}

func (h *ServiceHandler) loadManaged(c *gin.Context) (*models.Service, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}

	var svc models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Servicio no encontrado")
			return nil, false
		}
		fail(c, "load service", err)
		return nil, false
	}

	if _, ok := loadManagedBarbershop(c, h.db, svc.BarbershopID); !ok {
		return nil, false
	}
	return &svc, true
}
