// Package handler provides HTTP handlers for athlete endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/squadboard/squadboard-api/internal/apperror"
	"github.com/squadboard/squadboard-api/internal/athlete/model"
	"github.com/squadboard/squadboard-api/internal/athlete/service"
	"github.com/squadboard/squadboard-api/internal/auth"
)

// Handler handles HTTP requests for athlete endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new athlete handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Create handles POST /athlete.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "name and password are required")
		return
	}

	athlete, err := h.service.Create(c.Request.Context(), auth.ClaimsFrom(c).TeamID, &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, athlete)
}

// List handles GET /athlete?categoryId=.
func (h *Handler) List(c *gin.Context) {
	athletes, err := h.service.List(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Query("categoryId"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, athletes)
}

// Get handles GET /athlete/:id.
func (h *Handler) Get(c *gin.Context) {
	athlete, err := h.service.Get(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, athlete)
}

// Update handles PATCH /athlete/:id.
func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateAthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "invalid request body")
		return
	}

	athlete, err := h.service.Update(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id"), &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, athlete)
}

// Delete handles DELETE /athlete/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id")); err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "athlete deleted"})
}

// UpdateImage handles PUT /athlete/:id/image with a multipart "image" field.
func (h *Handler) UpdateImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		apperror.BadRequest(c, "image file is required")
		return
	}
	body, err := file.Open()
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	defer body.Close()

	athlete, err := h.service.UpdateImage(
		c.Request.Context(),
		auth.ClaimsFrom(c).TeamID,
		c.Param("id"),
		file.Header.Get("Content-Type"),
		file.Size,
		body,
	)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, athlete)
}
