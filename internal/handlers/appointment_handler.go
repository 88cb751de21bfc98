package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/httpresp"
	"github.com/BruksfildServices01/nextbarber-api/internal/metrics"
	"github.com/BruksfildServices01/nextbarber-api/internal/middleware"
	"github.com/BruksfildServices01/nextbarber-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC         *appointment.CreateAppointment
	updateUC         *appointment.UpdateAppointment
	cancelUC         *appointment.CancelAppointment
	listMineUC       *appointment.ListMyAppointments
	listBarbershopUC *appointment.ListBarbershopAppointments
	metrics          *metrics.Metrics
}

func NewAppointmentHandler(
	createUC *appointment.CreateAppointment,
	updateUC *appointment.UpdateAppointment,
	cancelUC *appointment.CancelAppointment,
	listMineUC *appointment.ListMyAppointments,
	listBarbershopUC *appointment.ListBarbershopAppointments,
	m *metrics.Metrics,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:         createUC,
		updateUC:         updateUC,
		cancelUC:         cancelUC,
		listMineUC:       listMineUC,
		listBarbershopUC: listBarbershopUC,
		metrics:          m,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarbershopID uuid.UUID  `json:"barberia_id" binding:"required"`
	ServiceID    uuid.UUID  `json:"servicio_id" binding:"required"`
	BarberID     *uuid.UUID `json:"barbero_id"`
	ScheduledAt  string     `json:"fecha_hora" binding:"required"`
	Notes        string     `json:"notas"`
}

type UpdateAppointmentRequest struct {
	BarberID    *uuid.UUID `json:"barbero_id"`
	ScheduledAt *string    `json:"fecha_hora"`
	Status      *string    `json:"estado"`
	Notes       *string    `json:"notas"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		Client:       middleware.CurrentUser(c),
		BarbershopID: req.BarbershopID,
		ServiceID:    req.ServiceID,
		BarberID:     req.BarberID,
		ScheduledAt:  req.ScheduledAt,
		Notes:        req.Notes,
	})
	if err != nil {
		fail(c, "create appointment", err)
		return
	}

	h.metrics.AppointmentsCreated.Inc()
	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	aps, err := h.listMineUC.Execute(
		c.Request.Context(),
		middleware.CurrentUser(c),
		c.Query("estado"),
	)
	if err != nil {
		fail(c, "list my appointments", err)
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) ListByBarbershop(c *gin.Context) {
	shopID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	aps, err := h.listBarbershopUC.Execute(c.Request.Context(), appointment.ListBarbershopAppointmentsInput{
		Caller:       middleware.CurrentUser(c),
		BarbershopID: shopID,
		Date:         c.Query("fecha"),
		From:         c.Query("fecha_inicio"),
		To:           c.Query("fecha_fin"),
		Status:       c.Query("estado"),
	})
	if err != nil {
		fail(c, "list barbershop appointments", err)
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), appointment.UpdateAppointmentInput{
		Caller:        middleware.CurrentUser(c),
		AppointmentID: id,
		BarberID:      req.BarberID,
		ScheduledAt:   req.ScheduledAt,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		fail(c, "update appointment", err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ap, changed, err := h.cancelUC.Execute(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		fail(c, "cancel appointment", err)
		return
	}

	if changed {
		h.metrics.AppointmentsCancelled.Inc()
	}

	httpresp.OK(c, ap)
}
