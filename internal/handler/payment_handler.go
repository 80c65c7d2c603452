package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/morada-homes/service-reservation/internal/application"
	"github.com/morada-homes/service-reservation/internal/auth"
	"github.com/morada-homes/service-reservation/internal/middleware"
	"github.com/morada-homes/service-reservation/internal/response"
)

// PaymentHandler handles HTTP requests for payment operations.
type PaymentHandler struct {
	service *application.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *application.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers all payment routes on the given router group.
func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware(jwtManager))
	{
		payments.POST("/process", h.ProcessPayment)
		payments.GET("/reservation/:reservationId", h.GetPaymentByReservation)
	}
}

// ProcessPayment handles POST /api/v1/payments/process
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req application.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	outcome, err := h.service.ProcessPayment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, outcome)
}

// GetPaymentByReservation handles GET /api/v1/payments/reservation/:reservationId
func (h *PaymentHandler) GetPaymentByReservation(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("reservationId"))
	if err != nil {
		response.BadRequest(c, "invalid reservation ID")
		return
	}

	dto, err := h.service.GetPaymentByReservation(c.Request.Context(), reservationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// paginationParams extracts and clamps page/limit query parameters.
func paginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
