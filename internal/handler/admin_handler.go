package handler

import (
	"github.com/citytoll/service-tollfee/internal/application"
	"github.com/citytoll/service-tollfee/internal/response"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles administrative endpoints.
type AdminHandler struct {
	vehicles *application.VehicleService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(vehicles *application.VehicleService) *AdminHandler {
	return &AdminHandler{vehicles: vehicles}
}

// RegisterRoutes registers admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/api/v1/admin")
	{
		admin.GET("/vehicles/stats", h.VehicleStats)
	}
}

// VehicleStats handles GET /api/v1/admin/vehicles/stats.
func (h *AdminHandler) VehicleStats(c *gin.Context) {
	stats, err := h.vehicles.GetVehicleStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
