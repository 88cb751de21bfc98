package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/httpresp"
	"github.com/BruksfildServices01/nextbarber-api/internal/metrics"
	"github.com/BruksfildServices01/nextbarber-api/internal/middleware"
	"github.com/BruksfildServices01/nextbarber-api/internal/usecase/payment"
)

type PaymentHandler struct {
	registerUC       *payment.RegisterPayment
	updateUC         *payment.UpdatePayment
	listUC           *payment.ListPayments
	listBarbershopUC *payment.ListBarbershopPayments
	metrics          *metrics.Metrics
}

func NewPaymentHandler(
	registerUC *payment.RegisterPayment,
	updateUC *payment.UpdatePayment,
	listUC *payment.ListPayments,
	listBarbershopUC *payment.ListBarbershopPayments,
	m *metrics.Metrics,
) *PaymentHandler {
	return &PaymentHandler{
		registerUC:       registerUC,
		updateUC:         updateUC,
		listUC:           listUC,
		listBarbershopUC: listBarbershopUC,
		metrics:          m,
	}
}

// --------- Requests ---------

type RegisterPaymentRequest struct {
	BarbershopID uuid.UUID        `json:"barberia_id" binding:"required"`
	Amount       *decimal.Decimal `json:"monto" binding:"required"`
	Method       string           `json:"metodo_pago" binding:"required"`
	PeriodStart  time.Time        `json:"periodo_inicio" binding:"required"`
	PeriodEnd    time.Time        `json:"periodo_fin" binding:"required"`
	ExternalRef  string           `json:"referencia_externa"`
	InvoiceURL   string           `json:"factura_url"`
	Notes        string           `json:"notas"`
}

type UpdatePaymentRequest struct {
	Status      *string `json:"estado"`
	ExternalRef *string `json:"referencia_externa"`
	InvoiceURL  *string `json:"factura_url"`
	Notes       *string `json:"notas"`
}

// --------- Handlers ---------

func (h *PaymentHandler) ListByBarbershop(c *gin.Context) {
	shopID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	payments, err := h.listBarbershopUC.Execute(c.Request.Context(), middleware.CurrentUser(c), shopID)
	if err != nil {
		fail(c, "list barbershop payments", err)
		return
	}

	httpresp.List(c, payments)
}

func (h *PaymentHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	payments, err := h.listUC.Execute(c.Request.Context(), c.Query("estado"), skip, limit)
	if err != nil {
		fail(c, "list payments", err)
		return
	}

	httpresp.List(c, payments)
}

func (h *PaymentHandler) Register(c *gin.Context) {
	var req RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	p, err := h.registerUC.Execute(c.Request.Context(), payment.RegisterPaymentInput{
		Caller:       middleware.CurrentUser(c),
		BarbershopID: req.BarbershopID,
		Amount:       *req.Amount,
		Method:       req.Method,
		PeriodStart:  req.PeriodStart,
		PeriodEnd:    req.PeriodEnd,
		ExternalRef:  req.ExternalRef,
		InvoiceURL:   req.InvoiceURL,
		Notes:        req.Notes,
	})
	if err != nil {
		fail(c, "register payment", err)
		return
	}

	h.metrics.PaymentsRegistered.Inc()
	httpresp.Created(c, p)
}

func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	p, err := h.updateUC.Execute(c.Request.Context(), payment.UpdatePaymentInput{
		Caller:      middleware.CurrentUser(c),
		PaymentID:   id,
		Status:      req.Status,
		ExternalRef: req.ExternalRef,
		InvoiceURL:  req.InvoiceURL,
		Notes:       req.Notes,
	})
	if err != nil {
		fail(c, "update payment", err)
		return
	}

	httpresp.OK(c, p)
}
