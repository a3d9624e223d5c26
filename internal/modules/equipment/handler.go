package equipment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studioreserve/internal/domain"
	"studioreserve/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/equipment", h.Create)
	rg.GET("/equipment", h.List)
	rg.POST("/equipment/scan", h.Scan)
	rg.GET("/equipment/:id/logs", h.Logs)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrStudioNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Studio not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this studio")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create equipment")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"equipment": item})
}

func (h *Handler) List(c *gin.Context) {
	var studioID *int64
	if raw := c.Query("studio_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid studio_id")
			return
		}
		studioID = &id
	}

	items, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), studioID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list equipment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"equipment": items})
}

func (h *Handler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, entry, err := h.service.Scan(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You may not scan this equipment")
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusConflict, "INVALID_STATUS", "Equipment cannot be scanned in this direction right now")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to scan equipment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"equipment": item, "log": entry})
}

func (h *Handler) Logs(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment id")
		return
	}

	logs, err := h.service.Logs(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You may not view these logs")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load logs")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"logs": logs})
}
