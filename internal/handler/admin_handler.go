package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/morada-homes/service-reservation/internal/application"
	"github.com/morada-homes/service-reservation/internal/auth"
	"github.com/morada-homes/service-reservation/internal/middleware"
	"github.com/morada-homes/service-reservation/internal/response"
)

// AdminHandler handles admin HTTP requests for reservation and payment stats.
type AdminHandler struct {
	reservationService *application.ReservationService
	paymentService     *application.PaymentService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(reservationService *application.ReservationService, paymentService *application.PaymentService) *AdminHandler {
	return &AdminHandler{
		reservationService: reservationService,
		paymentService:     paymentService,
	}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/payments", h.ListPayments)
		admin.GET("/stats/payments", h.PaymentStats)
		admin.GET("/stats/reservations", h.ReservationStats)
	}
}

// ListPayments handles GET /api/v1/admin/payments.
func (h *AdminHandler) ListPayments(c *gin.Context) {
	page, limit := paginationParams(c)

	payments, total, err := h.paymentService.ListAllPayments(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, payments, total, page, limit)
}

// PaymentStats handles GET /api/v1/admin/stats/payments.
func (h *AdminHandler) PaymentStats(c *gin.Context) {
	stats, err := h.paymentService.GetPaymentStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

// ReservationStats handles GET /api/v1/admin/stats/reservations.
func (h *AdminHandler) ReservationStats(c *gin.Context) {
	counts, err := h.reservationService.ReservationStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"by_status": counts})
}
