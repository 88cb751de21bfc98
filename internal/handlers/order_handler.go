package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/authz"
	"github.com/BruksfildServices01/nextbarber-api/internal/domain/barbershop"
	"github.com/BruksfildServices01/nextbarber-api/internal/domain/order"
	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/httpresp"
	"github.com/BruksfildServices01/nextbarber-api/internal/logger"
	"github.com/BruksfildServices01/nextbarber-api/internal/metrics"
	"github.com/BruksfildServices01/nextbarber-api/internal/middleware"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

var (
	errProductUnavailable = httperr.ErrBusiness("product_unavailable", "Producto no disponible en esta barbería")
	errInsufficientStock  = httperr.ErrBusiness("insufficient_stock", "Stock insuficiente")
	errOrderNotFound      = httperr.ErrNotFound("order_not_found", "Pedido no encontrado")
)

type OrderHandler struct {
	db      *gorm.DB
	metrics *metrics.Metrics
}

func NewOrderHandler(db *gorm.DB, m *metrics.Metrics) *OrderHandler {
	return &OrderHandler{db: db, metrics: m}
}

// --------- Requests ---------

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"producto_id" binding:"required"`
	Quantity  int       `json:"cantidad" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	BarbershopID    uuid.UUID          `json:"barberia_id" binding:"required"`
	ShippingAddress string             `json:"direccion_envio"`
	Notes           string             `json:"notas"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"estado" binding:"required"`
}

// --------- Handlers ---------

// Create prices every line from the product's current price and takes the
// stock in the same transaction.
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	shop, ok := loadBarbershop(c, h.db, req.BarbershopID)
	if !ok {
		return
	}

	if err := barbershop.CanSellProducts(barbershop.Plan(shop.Plan)); err != nil {
		httperr.From(c, err)
		return
	}

	o := models.Order{
		BarbershopID:    shop.ID,
		ClientID:        middleware.CurrentUser(c).ID,
		Status:          string(order.StatusPending),
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		Notes:           req.Notes,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		items := make([]models.OrderItem, 0, len(req.Items))

		for _, it := range req.Items {
			var p models.Product
			if err := tx.
				Where("id = ? AND barbershop_id = ? AND active = ?", it.ProductID, shop.ID, true).
				First(&p).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errProductUnavailable
				}
				return err
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", p.ID, it.Quantity).
				Updates(map[string]any{
					"stock":      gorm.Expr("stock - ?", it.Quantity),
					"updated_at": time.Now().UTC(),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errInsufficientStock
			}

			items = append(items, order.Line(&p, it.Quantity))
		}

		o.Items = items
		o.Total = order.Total(items)

		return tx.Create(&o).Error
	})
	if err != nil {
		fail(c, "create order", err)
		return
	}

	h.metrics.OrdersCreated.Inc()
	logger.From(c).Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("barbershop_id", shop.ID.String()),
		zap.String("total", o.Total.StringFixed(2)),
	)

	httpresp.Created(c, o)
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	var orders []models.Order
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Items").
		Where("client_id = ?", middleware.CurrentUser(c).ID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		fail(c, "list my orders", err)
		return
	}

	httpresp.List(c, orders)
}

func (h *OrderHandler) ListByBarbershop(c *gin.Context) {
	shopID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	shop, ok := loadManagedBarbershop(c, h.db, shopID)
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).
		Preload("Items").
		Where("barbershop_id = ?", shop.ID)

	if status := c.Query("estado"); status != "" {
		if !order.Status(status).Valid() {
			httperr.BadRequest(c, "invalid_status", "Estado de pedido inválido")
			return
		}
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		fail(c, "list barbershop orders", err)
		return
	}

	httpresp.List(c, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if !order.Status(req.Status).Valid() {
		httperr.BadRequest(c, "invalid_status", "Estado de pedido inválido")
		return
	}

	ctx := c.Request.Context()

	var o models.Order
	if err := h.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.From(c, errOrderNotFound)
			return
		}
		fail(c, "load order", err)
		return
	}

	var shop models.Barbershop
	if err := h.db.WithContext(ctx).First(&shop, "id = ?", o.BarbershopID).Error; err != nil {
		fail(c, "load order barbershop", err)
		return
	}

	if !authz.CanManageShop(middleware.CurrentUser(c), &shop) {
		httperr.Forbidden(c, "forbidden", "No tienes permisos para gestionar esta barbería")
		return
	}

	if err := h.db.WithContext(ctx).
		Model(&o).
		Update("status", req.Status).Error; err != nil {
		fail(c, "update order status", err)
		return
	}
	o.Status = req.Status

	httpresp.OK(c, o)
}
