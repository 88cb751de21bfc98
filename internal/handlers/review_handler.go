package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/httpresp"
	"github.com/BruksfildServices01/nextbarber-api/internal/metrics"
	"github.com/BruksfildServices01/nextbarber-api/internal/middleware"
	"github.com/BruksfildServices01/nextbarber-api/internal/usecase/review"
)

type ReviewHandler struct {
	createUC *review.CreateReview
	updateUC *review.UpdateReview
	replyUC  *review.ReplyReview
	listUC   *review.ListBarbershopReviews
	metrics  *metrics.Metrics
}

func NewReviewHandler(
	createUC *review.CreateReview,
	updateUC *review.UpdateReview,
	replyUC *review.ReplyReview,
	listUC *review.ListBarbershopReviews,
	m *metrics.Metrics,
) *ReviewHandler {
	return &ReviewHandler{
		createUC: createUC,
		updateUC: updateUC,
		replyUC:  replyUC,
		listUC:   listUC,
		metrics:  m,
	}
}

// --------- Requests ---------

type CreateReviewRequest struct {
	BarbershopID  uuid.UUID  `json:"barberia_id" binding:"required"`
	AppointmentID *uuid.UUID `json:"cita_id"`
	Rating        int        `json:"calificacion" binding:"required"`
	Comment       string     `json:"comentario"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"calificacion"`
	Comment *string `json:"comentario"`
}

type ReplyReviewRequest struct {
	Reply string `json:"respuesta_barberia" binding:"required"`
}

// --------- Handlers ---------

func (h *ReviewHandler) ListByBarbershop(c *gin.Context) {
	shopID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	skip, limit := pagination(c)

	reviews, err := h.listUC.Execute(c.Request.Context(), shopID, skip, limit)
	if err != nil {
		fail(c, "list reviews", err)
		return
	}

	httpresp.List(c, reviews)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	rv, err := h.createUC.Execute(c.Request.Context(), review.CreateReviewInput{
		Client:        middleware.CurrentUser(c),
		BarbershopID:  req.BarbershopID,
		AppointmentID: req.AppointmentID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		fail(c, "create review", err)
		return
	}

	h.metrics.ReviewsCreated.Inc()
	httpresp.Created(c, rv)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	rv, err := h.updateUC.Execute(c.Request.Context(), review.UpdateReviewInput{
		Caller:   middleware.CurrentUser(c),
		ReviewID: id,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		fail(c, "update review", err)
		return
	}

	httpresp.OK(c, rv)
}

func (h *ReviewHandler) Reply(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req ReplyReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	rv, err := h.replyUC.Execute(c.Request.Context(), middleware.CurrentUser(c), id, req.Reply)
	if err != nil {
		fail(c, "reply review", err)
		return
	}

	httpresp.OK(c, rv)
}
