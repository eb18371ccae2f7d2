package handler

import (
	"github.com/citytoll/service-tollfee/internal/application"
	"github.com/citytoll/service-tollfee/internal/response"
	"github.com/gin-gonic/gin"
)

// AssessmentHandler handles HTTP requests for daily fee assessments.
type AssessmentHandler struct {
	service *application.AssessmentService
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(service *application.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: service}
}

// RegisterRoutes registers assessment routes on the given router group.
func (h *AssessmentHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/api/v1/assessments", h.AssessDay)
}

// AssessDay handles POST /api/v1/assessments.
func (h *AssessmentHandler) AssessDay(c *gin.Context) {
	var req application.AssessDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AssessDay(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
