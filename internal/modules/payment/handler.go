package payment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studioreserve/internal/domain"
	"studioreserve/internal/pkg/response"
)

type Handler struct {
	service *Service
	gateway Gateway
}

func NewHandler(service *Service, gateway Gateway) *Handler {
	return &Handler{service: service, gateway: gateway}
}

// RegisterRoutes mounts the authenticated initiation endpoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/initiate", h.Initiate)
}

// RegisterCallbackRoutes mounts the unauthenticated gateway webhook.
func (h *Handler) RegisterCallbackRoutes(rg *gin.RouterGroup) {
	rg.GET("/payments/callback", h.Callback)
}

func (h *Handler) Initiate(c *gin.Context) {
	if c.GetString("role") != string(domain.RolePhotographer) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only photographers can initiate payments")
		return
	}

	var req InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.Initiate(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Booking does not belong to the current user")
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Booking is not pending payment")
		case errors.Is(err, ErrInProgress):
			response.Error(c, http.StatusConflict, "PAYMENT_IN_PROGRESS", "A payment for this booking is already in progress")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to initiate payment")
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Callback(c *gin.Context) {
	v := h.gateway.VerifyCallback(c.Request.URL.Query())
	if v.ExternalRef == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing payment reference")
		return
	}

	result, err := h.service.HandleCallback(c.Request.Context(), v)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment record not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process payment callback")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}
