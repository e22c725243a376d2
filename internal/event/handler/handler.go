// Package handler provides HTTP handlers for event and roll-call endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/squadboard/squadboard-api/internal/apperror"
	"github.com/squadboard/squadboard-api/internal/auth"
	"github.com/squadboard/squadboard-api/internal/event/model"
	"github.com/squadboard/squadboard-api/internal/event/service"
)

// Handler handles HTTP requests for event endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new event handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Create handles POST /event.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "name, date and categoryId are required")
		return
	}

	event, err := h.service.Create(c.Request.Context(), auth.ClaimsFrom(c).TeamID, &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// List handles GET /event?categoryId=.
func (h *Handler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Query("categoryId"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// Get handles GET /event/:id.
func (h *Handler) Get(c *gin.Context) {
	event, err := h.service.Get(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Update handles PATCH /event/:id.
func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "invalid request body")
		return
	}

	event, err := h.service.Update(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id"), &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Finalize handles PATCH /event/finalize/:id.
func (h *Handler) Finalize(c *gin.Context) {
	event, err := h.service.Finalize(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /event/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id")); err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// ToggleConfirmation handles PATCH /event/toggle-confirmation/:confirmationId.
func (h *Handler) ToggleConfirmation(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	row, err := h.service.ToggleConfirmation(c.Request.Context(), claims.TeamID, claims.ID, c.Param("confirmationId"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmation": row})
}

// ConfirmPresence handles POST /event/confirm-presence/:eventId.
func (h *Handler) ConfirmPresence(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	row, err := h.service.ConfirmPresence(c.Request.Context(), claims.TeamID, claims.ID, c.Param("eventId"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmation": row})
}
