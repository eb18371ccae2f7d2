package handler

import (
	"strconv"

	"github.com/citytoll/service-tollfee/internal/application"
	"github.com/citytoll/service-tollfee/internal/response"
	"github.com/gin-gonic/gin"
)

// VehicleHandler handles HTTP requests for the vehicle registry.
type VehicleHandler struct {
	service *application.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(service *application.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// RegisterRoutes registers vehicle routes on the given router group.
func (h *VehicleHandler) RegisterRoutes(r *gin.RouterGroup) {
	vehicles := r.Group("/api/v1/vehicles")
	{
		vehicles.POST("", h.RegisterVehicle)
		vehicles.GET("", h.ListVehicles)
		vehicles.GET("/:plate", h.GetVehicle)
	}
}

// RegisterVehicle handles POST /api/v1/vehicles.
func (h *VehicleHandler) RegisterVehicle(c *gin.Context) {
	var req application.RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RegisterVehicle(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListVehicles handles GET /api/v1/vehicles.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.ListVehicles(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetVehicle handles GET /api/v1/vehicles/:plate.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	result, err := h.service.GetVehicleByPlate(c.Request.Context(), c.Param("plate"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parsePagination reads page/limit query parameters with sane defaults.
func parsePagination(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
