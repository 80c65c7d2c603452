package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/morada-homes/service-reservation/internal/application"
	"github.com/morada-homes/service-reservation/internal/auth"
	"github.com/morada-homes/service-reservation/internal/middleware"
	"github.com/morada-homes/service-reservation/internal/response"
)

// PropertyHandler handles HTTP requests for property listings.
type PropertyHandler struct {
	service *application.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(service *application.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// RegisterRoutes registers all property routes on the given router group.
func (h *PropertyHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	properties := r.Group("/properties")
	properties.Use(middleware.AuthMiddleware(jwtManager))
	{
		properties.POST("", middleware.RequireRole(auth.RoleOwner), h.CreateProperty)
		properties.GET("", h.ListProperties)
		properties.GET("/:id", h.GetProperty)
		properties.GET("/:id/quote", h.QuoteStay)
	}
}

// CreateProperty handles POST /api/v1/properties
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.CreateProperty(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto)
}

// ListProperties handles GET /api/v1/properties
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	dtos, err := h.service.ListProperties(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dtos)
}

// GetProperty handles GET /api/v1/properties/:id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	dto, err := h.service.GetProperty(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// QuoteStay handles GET /api/v1/properties/:id/quote?check_in=...&check_out=...
func (h *PropertyHandler) QuoteStay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	checkIn, err := time.Parse(time.RFC3339, c.Query("check_in"))
	if err != nil {
		response.BadRequest(c, "invalid check_in (use RFC3339)")
		return
	}
	checkOut, err := time.Parse(time.RFC3339, c.Query("check_out"))
	if err != nil {
		response.BadRequest(c, "invalid check_out (use RFC3339)")
		return
	}

	dto, err := h.service.QuoteStay(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}
