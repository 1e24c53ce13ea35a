package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/spotlog/service-planner/internal/application"
	"github.com/spotlog/service-planner/internal/domain/place"
	"github.com/spotlog/service-planner/internal/platform/response"
)

// PlaceHandler handles HTTP requests for the saved place list.
type PlaceHandler struct {
	service *application.PlannerService
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(service *application.PlannerService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// RegisterRoutes registers all place routes on the given router group.
func (h *PlaceHandler) RegisterRoutes(r *gin.RouterGroup) {
	places := r.Group("/api/v1/places")
	{
		places.GET("", h.ListPlaces)
		places.POST("", h.SavePlace)
		places.POST("/sync", h.SyncPlaces)
		places.POST("/move", h.MovePlace)
		places.PATCH("/:key/enabled", h.SetEnabled)
	}
}

// ListPlaces handles GET /api/v1/places.
func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	response.Success(c, h.service.ListPlaces())
}

// SavePlace handles POST /api/v1/places.
func (h *PlaceHandler) SavePlace(c *gin.Context) {
	var req application.SavePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SavePlace(c.Request.Context(), req.PlaceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// SyncPlaces handles POST /api/v1/places/sync.
func (h *PlaceHandler) SyncPlaces(c *gin.Context) {
	result, err := h.service.SyncPlaces(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// MovePlace handles POST /api/v1/places/move.
func (h *PlaceHandler) MovePlace(c *gin.Context) {
	var req application.MovePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Move(c.Request.Context(), *req.From, *req.To)
	if err != nil {
		if errors.Is(err, place.ErrIndexOutOfRange) {
			response.BadRequest(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SetEnabled handles PATCH /api/v1/places/:key/enabled.
func (h *PlaceHandler) SetEnabled(c *gin.Context) {
	var req application.SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SetEnabled(c.Request.Context(), c.Param("key"), *req.Enabled)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
