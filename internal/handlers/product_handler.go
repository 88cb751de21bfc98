package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/domain/barbershop"
	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/httpresp"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

const productImageMaxWidth = 1024

type ProductHandler struct {
	db       *gorm.DB
	uploader *ImageUploader
}

func NewProductHandler(db *gorm.DB, uploader *ImageUploader) *ProductHandler {
	return &ProductHandler{db: db, uploader: uploader}
}

// --------- Requests ---------

type CreateProductRequest struct {
	BarbershopID uuid.UUID        `json:"barberia_id" binding:"required"`
	Name         string           `json:"nombre" binding:"required"`
	Description  string           `json:"descripcion"`
	Price        *decimal.Decimal `json:"precio" binding:"required"`
	Stock        int              `json:"stock" binding:"min=0"`
	Category     string           `json:"categoria"`
	ImageURL     string           `json:"imagen_url"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"nombre"`
	Description *string          `json:"descripcion"`
	Price       *decimal.Decimal `json:"precio"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
	Category    *string          `json:"categoria"`
	ImageURL    *string          `json:"imagen_url"`
	Active      *bool            `json:"activo"`
}

// --------- Handlers ---------

func (h *ProductHandler) ListByBarbershop(c *gin.Context) {
	shopID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).Where("barbershop_id = ?", shopID)
	if onlyActive := boolQuery(c, "activos"); onlyActive == nil || *onlyActive {
		q = q.Where("active = ?", true)
	}

	var products []models.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		fail(c, "list products", err)
		return
	}

	httpresp.List(c, products)
}

// Create requires a Profesional or Premium plan.
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	shop, ok := loadManagedBarbershop(c, h.db, req.BarbershopID)
	if !ok {
		return
	}

	if err := barbershop.CanSellProducts(barbershop.Plan(shop.Plan)); err != nil {
		httperr.From(c, err)
		return
	}

	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo")
		return
	}

	product := models.Product{
		BarbershopID: shop.ID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Price:        *req.Price,
		Stock:        req.Stock,
		Category:     strings.ToLower(strings.TrimSpace(req.Category)),
		ImageURL:     req.ImageURL,
		Images:       datatypes.JSON("[]"),
		Active:       true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		fail(c, "create product", err)
		return
	}

	httpresp.Created(c, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	product, ok := h.loadManaged(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo")
			return
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(product).Error; err != nil {
		fail(c, "update product", err)
		return
	}

	httpresp.OK(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	product, ok := h.loadManaged(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(product).
		Update("active", false).Error; err != nil {
		fail(c, "deactivate product", err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Producto eliminado"})
}

// UploadImage stores a new image; the first one becomes imagen_url.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	product, ok := h.loadManaged(c)
	if !ok {
		return
	}

	key := fmt.Sprintf("productos/%s/%s.webp", product.ID, uuid.NewString())
	url, ok := h.uploader.upload(c, key, productImageMaxWidth)
	if !ok {
		return
	}

	var images []string
	if len(product.Images) > 0 {
		if err := json.Unmarshal(product.Images, &images); err != nil {
			fail(c, "decode product images", err)
			return
		}
	}
	images = append(images, url)

	raw, err := json.Marshal(images)
	if err != nil {
		fail(c, "encode product images", err)
		return
	}

	product.Images = datatypes.JSON(raw)
	if product.ImageURL == "" {
		product.ImageURL = url
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(product).
		Select("images", "image_url").
		Updates(product).Error; err != nil {
		fail(c, "save product images", err)
		return
	}

	httpresp.Created(c, product)
}

func (h *ProductHandler) loadManaged(c *gin.Context) (*models.Product, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}

	var product models.Product
	if err := h.db.WithContext(c.Request.Context()).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "product_not_found", "Producto no encontrado")
			return nil, false
		}
		fail(c, "load product", err)
		return nil, false
	}

	if _, ok := loadManagedBarbershop(c, h.db, product.BarbershopID); !ok {
		return nil, false
	}
	return &product, true
}
