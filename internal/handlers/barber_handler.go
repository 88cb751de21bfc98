package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/httpresp"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name        string         `json:"nombre" binding:"required"`
	Phone       string         `json:"telefono"`
	Email       string         `json:"email" binding:"omitempty,email"`
	PhotoURL    string         `json:"foto_url"`
	Description string         `json:"descripcion"`
	Schedule    datatypes.JSON `json:"horario"`
}

type UpdateBarberRequest struct {
	Name        *string        `json:"nombre"`
	Phone       *string        `json:"telefono"`
	Email       *string        `json:"email" binding:"omitempty,email"`
	PhotoURL    *string        `json:"foto_url"`
	Description *string        `json:"descripcion"`
	Schedule    datatypes.JSON `json:"horario"`
	Active      *bool          `json:"activo"`
}

// --------- Handlers ---------

func (h *BarberHandler) ListByBarbershop(c *gin.Context) {
	shopID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).Where("barbershop_id = ?", shopID)
	if onlyActive := boolQuery(c, "activos"); onlyActive == nil || *onlyActive {
		q = q.Where("active = ?", true)
	}

	var barbers []models.Barber
	if err := q.Order("name ASC").Find(&barbers).Error; err != nil {
		fail(c, "list barbers", err)
		return
	}

	httpresp.List(c, barbers)
}

// Create enforces limite_barberos of the membership matching the shop plan.
func (h *BarberHandler) Create(c *gin.Context) {
	shopID, err := uuid.Parse(c.Query("barberia_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador de barbería inválido")
		return
	}

	shop, ok := loadManagedBarbershop(c, h.db, shopID)
	if !ok {
		return
	}

	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if !h.withinBarberLimit(c, shop) {
		return
	}

	barber := models.Barber{
		BarbershopID: shop.ID,
		Name:         strings.TrimSpace(req.Name),
		Phone:        req.Phone,
		Email:        req.Email,
		PhotoURL:     req.PhotoURL,
		Description:  req.Description,
		Schedule:     req.Schedule,
		Active:       true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&barber).Error; err != nil {
		fail(c, "create barber", err)
		return
	}

	httpresp.Created(c, barber)
}

func (h *BarberHandler) withinBarberLimit(c *gin.Context, shop *models.Barbershop) bool {
	var plan models.Membership
	err := h.db.WithContext(c.Request.Context()).
		Where("name = ? AND active = ?", shop.Plan, true).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true
	}
	if err != nil {
		fail(c, "load membership", err)
		return false
	}
	if plan.BarberLimit == nil {
		return true
	}

	var active int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Barber{}).
		Where("barbershop_id = ? AND active = ?", shop.ID, true).
		Count(&active).Error; err != nil {
		fail(c, "count barbers", err)
		return false
	}

	if int(active) >= *plan.BarberLimit {
		httperr.Forbidden(c, "barber_limit_reached", "Has alcanzado el límite de barberos de tu plan")
		return false
	}
	return true
}

func (h *BarberHandler) Update(c *gin.Context) {
	barber, ok := h.loadManaged(c)
	if !ok {
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if req.Name != nil {
		barber.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}
	if req.Email != nil {
		barber.Email = *req.Email
	}
	if req.PhotoURL != nil {
		barber.PhotoURL = *req.PhotoURL
	}
	if req.Description != nil {
		barber.Description = *req.Description
	}
	if req.Schedule != nil {
		barber.Schedule = req.Schedule
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(barber).Error; err != nil {
		fail(c, "update barber", err)
		return
	}

	httpresp.OK(c, barber)
}

func (h *BarberHandler) Delete(c *gin.Context) {
	barber, ok := h.loadManaged(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(barber).
		Update("active", false).Error; err != nil {
		fail(c, "deactivate barber", err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Barbero eliminado"})
}

func (h *BarberHandler) loadManaged(c *gin.Context) (*models.Barber, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}

	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).First(&barber, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barbero no encontrado")
			return nil, false
		}
		fail(c, "load barber", err)
		return nil, false
	}

	if _, ok := loadManagedBarbershop(c, h.db, barber.BarbershopID); !ok {
		return nil, false
	}
	return &barber, true
}
