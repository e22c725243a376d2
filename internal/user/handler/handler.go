// Package handler provides HTTP handlers for account and manager endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/squadboard/squadboard-api/internal/apperror"
	"github.com/squadboard/squadboard-api/internal/auth"
	"github.com/squadboard/squadboard-api/internal/user/model"
	"github.com/squadboard/squadboard-api/internal/user/service"
)

// Handler handles HTTP requests for account and manager endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new user handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "username and password are required")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me handles GET /user/me.
func (h *Handler) Me(c *gin.Context) {
	resp, err := h.service.Me(c.Request.Context(), auth.ClaimsFrom(c).ID)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangePassword handles PATCH /user/password.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "currentPassword and newPassword are required")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), auth.ClaimsFrom(c).ID, &req); err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// CreateManager handles POST /manager.
func (h *Handler) CreateManager(c *gin.Context) {
	var req model.CreateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "name and password are required")
		return
	}

	manager, err := h.service.CreateManager(c.Request.Context(), auth.ClaimsFrom(c).TeamID, &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, manager)
}

// ListManagers handles GET /manager.
func (h *Handler) ListManagers(c *gin.Context) {
	managers, err := h.service.ListManagers(c.Request.Context(), auth.ClaimsFrom(c).TeamID)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, managers)
}

// GetManager handles GET /manager/:id.
func (h *Handler) GetManager(c *gin.Context) {
	manager, err := h.service.GetManager(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, manager)
}

// DeleteManager handles DELETE /manager/:id.
func (h *Handler) DeleteManager(c *gin.Context) {
	if err := h.service.DeleteManager(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id")); err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "manager deleted"})
}
