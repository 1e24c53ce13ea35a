package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/spotlog/service-planner/internal/application"
	"github.com/spotlog/service-planner/internal/platform/response"
)

// RouteHandler handles HTTP requests for the route box.
type RouteHandler struct {
	service *application.PlannerService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(service *application.PlannerService) *RouteHandler {
	return &RouteHandler{service: service}
}

// RegisterRoutes registers all route view routes on the given router group.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup) {
	routes := r.Group("/api/v1/routes")
	{
		routes.GET("", h.GetView)
		routes.PUT("/mode", h.SelectMode)
		routes.POST("/next", h.Next)
		routes.POST("/previous", h.Previous)
	}
}

// GetView handles GET /api/v1/routes.
func (h *RouteHandler) GetView(c *gin.Context) {
	response.Success(c, h.service.View())
}

// SelectMode handles PUT /api/v1/routes/mode.
func (h *RouteHandler) SelectMode(c *gin.Context) {
	var req application.SelectModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SelectMode(c.Request.Context(), req.Mode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Next handles POST /api/v1/routes/next.
func (h *RouteHandler) Next(c *gin.Context) {
	response.Success(c, h.service.Next(c.Request.Context()))
}

// Previous handles POST /api/v1/routes/previous.
func (h *RouteHandler) Previous(c *gin.Context) {
	response.Success(c, h.service.Previous(c.Request.Context()))
}
