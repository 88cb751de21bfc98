package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	"github.com/BruksfildServices01/nextbarber-api/internal/authz"
	"github.com/BruksfildServices01/nextbarber-api/internal/domain/barbershop"
	"github.com/BruksfildServices01/nextbarber-api/internal/dto"
	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/httpresp"
	"github.com/BruksfildServices01/nextbarber-api/internal/middleware"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
	"github.com/BruksfildServices01/nextbarber-api/internal/timezone"
)

const (
	logoMaxWidth  = 512
	photoMaxWidth = 1600
)

type BarbershopHandler struct {
	db        *gorm.DB
	audit     *audit.Dispatcher
	uploader  *ImageUploader
	defaultTZ string
}

func NewBarbershopHandler(
	db *gorm.DB,
	dispatcher *audit.Dispatcher,
	uploader *ImageUploader,
	defaultTZ string,
) *BarbershopHandler {
	return &BarbershopHandler{
		db:        db,
		audit:     dispatcher,
		uploader:  uploader,
		defaultTZ: defaultTZ,
	}
}

// --------- Requests ---------

type CreateBarbershopRequest struct {
	OwnerID     *uuid.UUID     `json:"propietario_id"`
	Name        string         `json:"nombre" binding:"required"`
	Description string         `json:"descripcion"`
	Address     string         `json:"direccion" binding:"required"`
	Phone       string         `json:"telefono"`
	Email       string         `json:"email" binding:"omitempty,email"`
	TaxID       string         `json:"nit"`
	Latitude    *float64       `json:"latitud"`
	Longitude   *float64       `json:"longitud"`
	Plan        string         `json:"plan_membresia"`
	Schedule    datatypes.JSON `json:"horario"`
	Timezone    string         `json:"zona_horaria"`
}

type UpdateBarbershopRequest struct {
	Name        *string        `json:"nombre"`
	Description *string        `json:"descripcion"`
	Address     *string        `json:"direccion"`
	Phone       *string        `json:"telefono"`
	Email       *string        `json:"email" binding:"omitempty,email"`
	Schedule    datatypes.JSON `json:"horario"`
	LogoURL     *string        `json:"logo_url"`
	Photos      []string       `json:"fotos"`
	Timezone    *string        `json:"zona_horaria"`
}

// AdminUpdateBarbershopRequest adds the fields only the super admin may set.
type AdminUpdateBarbershopRequest struct {
	UpdateBarbershopRequest
	Latitude  *float64   `json:"latitud"`
	Longitude *float64   `json:"longitud"`
	Status    *string    `json:"estado"`
	Plan      *string    `json:"plan_membresia"`
	ExpiresAt *time.Time `json:"fecha_vencimiento"`
}

// --------- Listing ---------

// ListPublic is the directory: active shops unless another estado is asked
// for, best plan first, then best rated.
func (h *BarbershopHandler) ListPublic(c *gin.Context) {
	status := c.DefaultQuery("estado", string(barbershop.StatusActive))

	q, ok := h.filtered(c, status)
	if !ok {
		return
	}

	skip, limit := pagination(c)

	var shops []models.Barbershop
	if err := q.
		Order(barbershop.PlanRankSQL + " DESC").
		Order("rating_avg DESC").
		Offset(skip).
		Limit(limit).
		Find(&shops).Error; err != nil {
		fail(c, "list barbershops", err)
		return
	}

	httpresp.List(c, dto.NewBarbershopList(shops))
}

// ListAdmin shows every shop in every state.
func (h *BarbershopHandler) ListAdmin(c *gin.Context) {
	q, ok := h.filtered(c, c.Query("estado"))
	if !ok {
		return
	}

	skip, limit := pagination(c)

	var shops []models.Barbershop
	if err := q.
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&shops).Error; err != nil {
		fail(c, "list barbershops", err)
		return
	}

	httpresp.List(c, shops)
}

func (h *BarbershopHandler) filtered(c *gin.Context, status string) (*gorm.DB, bool) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Barbershop{})

	if status != "" {
		if !barbershop.Status(status).Valid() {
			httperr.BadRequest(c, "invalid_status", "Estado de barbería inválido")
			return nil, false
		}
		q = q.Where("status = ?", status)
	}

	if plan := c.Query("plan"); plan != "" {
		if !barbershop.Plan(plan).Valid() {
			httperr.BadRequest(c, "invalid_plan", "Plan de membresía inválido")
			return nil, false
		}
		q = q.Where("plan = ?", plan)
	}

	return q, true
}

func (h *BarbershopHandler) Get(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, shop)
}

// --------- Writes ---------

func (h *BarbershopHandler) Create(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req CreateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if req.Plan == "" {
		req.Plan = string(barbershop.PlanBasic)
	}
	if !barbershop.Plan(req.Plan).Valid() {
		httperr.BadRequest(c, "invalid_plan", "Plan de membresía inválido")
		return
	}

	tz, ok := h.timezoneOrDefault(c, req.Timezone)
	if !ok {
		return
	}

	ownerID := caller.ID
	if req.OwnerID != nil && *req.OwnerID != caller.ID {
		if ok := h.checkOwner(c, *req.OwnerID); !ok {
			return
		}
		ownerID = *req.OwnerID
	}

	shop := models.Barbershop{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		TaxID:       req.TaxID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Schedule:    req.Schedule,
		Timezone:    tz,
		Status:      string(barbershop.StatusPending),
		Plan:        req.Plan,
		Photos:      datatypes.JSON("[]"),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&shop).Error; err != nil {
		fail(c, "create barbershop", err)
		return
	}

	h.audit.Dispatch(auditEvent(c, shop.ID, "barbershop_created", "barbershop", shop.ID, gin.H{"propietario_id": ownerID}))

	httpresp.Created(c, shop)
}

// checkOwner accepts a shop admin who owns no shop yet.
func (h *BarbershopHandler) checkOwner(c *gin.Context, ownerID uuid.UUID) bool {
	var owner models.User
	if err := h.db.WithContext(c.Request.Context()).First(&owner, "id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuario no encontrado")
			return false
		}
		fail(c, "load owner", err)
		return false
	}

	if owner.Role != models.RoleShopAdmin {
		httperr.BadRequest(c, "invalid_owner", "El propietario debe ser administrador de barbería")
		return false
	}

	var owned int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Barbershop{}).
		Where("owner_id = ?", ownerID).
		Count(&owned).Error; err != nil {
		fail(c, "count owned barbershops", err)
		return false
	}
	if owned > 0 {
		httperr.BadRequest(c, "owner_has_barbershop", "El administrador ya tiene una barbería asignada")
		return false
	}
	return true
}

// Update is for the shop manager: profile fields only.
func (h *BarbershopHandler) Update(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	if !authz.CanManageShop(middleware.CurrentUser(c), shop) {
		httperr.Forbidden(c, "forbidden", "No tienes permisos para editar esta barbería")
		return
	}

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if !h.applyProfile(c, shop, &req) {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(shop).Error; err != nil {
		fail(c, "update barbershop", err)
		return
	}

	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) AdminUpdate(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	var req AdminUpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if !h.applyProfile(c, shop, &req.UpdateBarbershopRequest) {
		return
	}

	if req.Status != nil {
		if !barbershop.Status(*req.Status).Valid() {
			httperr.BadRequest(c, "invalid_status", "Estado de barbería inválido")
			return
		}
		shop.Status = *req.Status
	}
	if req.Plan != nil {
		if !barbershop.Plan(*req.Plan).Valid() {
			httperr.BadRequest(c, "invalid_plan", "Plan de membresía inválido")
			return
		}
		shop.Plan = *req.Plan
	}
	if req.Latitude != nil {
		shop.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		shop.Longitude = req.Longitude
	}
	if req.ExpiresAt != nil {
		t := req.ExpiresAt.UTC()
		shop.ExpiresAt = &t
	}

	if err := h.db.WithContext(c.Request.Context()).Save(shop).Error; err != nil {
		fail(c, "admin update barbershop", err)
		return
	}

	h.audit.Dispatch(auditEvent(c, shop.ID, "barbershop_admin_updated", "barbershop", shop.ID, gin.H{
		"estado":         shop.Status,
		"plan_membresia": shop.Plan,
	}))

	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) Activate(c *gin.Context) {
	h.setStatus(c, barbershop.StatusActive, "barbershop_activated")
}

func (h *BarbershopHandler) Suspend(c *gin.Context) {
	h.setStatus(c, barbershop.StatusSuspended, "barbershop_suspended")
}

func (h *BarbershopHandler) setStatus(c *gin.Context, status barbershop.Status, action string) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	previous := shop.Status
	shop.Status = string(status)

	if err := h.db.WithContext(c.Request.Context()).
		Model(shop).
		Update("status", shop.Status).Error; err != nil {
		fail(c, "set barbershop status", err)
		return
	}

	h.audit.Dispatch(auditEvent(c, shop.ID, action, "barbershop", shop.ID, gin.H{"estado_anterior": previous}))

	httpresp.OK(c, shop)
}

// --------- Media ---------

func (h *BarbershopHandler) UploadLogo(c *gin.Context) {
	shop, ok := h.loadManaged(c)
	if !ok {
		return
	}

	url, ok := h.uploader.upload(c, fmt.Sprintf("barberias/%s/logo.webp", shop.ID), logoMaxWidth)
	if !ok {
		return
	}

	shop.LogoURL = url
	if err := h.db.WithContext(c.Request.Context()).
		Model(shop).
		Update("logo_url", url).Error; err != nil {
		fail(c, "save logo url", err)
		return
	}

	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) UploadPhoto(c *gin.Context) {
	shop, ok := h.loadManaged(c)
	if !ok {
		return
	}

	url, ok := h.uploader.upload(c, fmt.Sprintf("barberias/%s/fotos/%s.webp", shop.ID, uuid.NewString()), photoMaxWidth)
	if !ok {
		return
	}

	var photos []string
	if len(shop.Photos) > 0 {
		if err := json.Unmarshal(shop.Photos, &photos); err != nil {
			fail(c, "decode photos", err)
			return
		}
	}
	photos = append(photos, url)

	raw, err := json.Marshal(photos)
	if err != nil {
		fail(c, "encode photos", err)
		return
	}
	shop.Photos = datatypes.JSON(raw)

	if err := h.db.WithContext(c.Request.Context()).
		Model(shop).
		Update("photos", shop.Photos).Error; err != nil {
		fail(c, "save photos", err)
		return
	}

	httpresp.Created(c, shop)
}

// --------- Helpers ---------

func (h *BarbershopHandler) load(c *gin.Context) (*models.Barbershop, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}
	return loadBarbershop(c, h.db, id)
}

func (h *BarbershopHandler) loadManaged(c *gin.Context) (*models.Barbershop, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}
	return loadManagedBarbershop(c, h.db, id)
}

func (h *BarbershopHandler) applyProfile(c *gin.Context, shop *models.Barbershop, req *UpdateBarbershopRequest) bool {
	if req.Name != nil {
		shop.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		shop.Description = *req.Description
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Email != nil {
		shop.Email = *req.Email
	}
	if req.Schedule != nil {
		shop.Schedule = req.Schedule
	}
	if req.LogoURL != nil {
		shop.LogoURL = *req.LogoURL
	}
	if req.Photos != nil {
		raw, err := json.Marshal(req.Photos)
		if err != nil {
			httperr.InvalidRequest(c, err)
			return false
		}
		shop.Photos = datatypes.JSON(raw)
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Zona horaria inválida")
			return false
		}
		shop.Timezone = *req.Timezone
	}
	return true
}

func (h *BarbershopHandler) timezoneOrDefault(c *gin.Context, tz string) (string, bool) {
	if tz == "" {
		tz = h.defaultTZ
	}
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Zona horaria inválida")
		return "", false
	}
	return tz, true
}

// loadBarbershop answers 404 itself when the shop does not exist.
func loadBarbershop(c *gin.Context, db *gorm.DB, id uuid.UUID) (*models.Barbershop, bool) {
	var shop models.Barbershop
	if err := db.WithContext(c.Request.Context()).First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barbershop_not_found", "Barbería no encontrada")
			return nil, false
		}
		fail(c, "load barbershop", err)
		return nil, false
	}
	return &shop, true
}

// loadManagedBarbershop also requires the caller to manage the shop.
func loadManagedBarbershop(c *gin.Context, db *gorm.DB, id uuid.UUID) (*models.Barbershop, bool) {
	shop, ok := loadBarbershop(c, db, id)
	if !ok {
		return nil, false
	}
	if !authz.CanManageShop(middleware.CurrentUser(c), shop) {
		httperr.Forbidden(c, "forbidden", "No tienes permisos para gestionar esta barbería")
		return nil, false
	}
	return shop, true
}
