// Package handler provides HTTP handlers for category endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/squadboard/squadboard-api/internal/apperror"
	"github.com/squadboard/squadboard-api/internal/auth"
	"github.com/squadboard/squadboard-api/internal/category/model"
	"github.com/squadboard/squadboard-api/internal/category/service"
)

// Handler handles HTTP requests for category endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new category handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Create handles POST /category.
func (h *Handler) Create(c *gin.Context) {
	var req model.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "name is required")
		return
	}

	category, err := h.service.Create(c.Request.Context(), auth.ClaimsFrom(c).TeamID, &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// List handles GET /category.
func (h *Handler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context(), auth.ClaimsFrom(c).TeamID)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Get handles GET /category/:id.
func (h *Handler) Get(c *gin.Context) {
	category, err := h.service.Get(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Update handles PATCH /category/:id.
func (h *Handler) Update(c *gin.Context) {
	var req model.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "name is required")
		return
	}

	category, err := h.service.Update(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id"), &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /category/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id")); err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
