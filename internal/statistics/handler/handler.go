// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/squadboard/squadboard-api/internal/apperror"
	"github.com/squadboard/squadboard-api/internal/auth"
	"github.com/squadboard/squadboard-api/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Payments handles GET /statistics/payments.
func (h *Handler) Payments(c *gin.Context) {
	resp, err := h.service.Payments(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Query("categoryId"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Events handles GET /statistics/events.
func (h *Handler) Events(c *gin.Context) {
	resp, err := h.service.Events(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Query("categoryId"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
