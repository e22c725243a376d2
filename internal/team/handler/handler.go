// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/squadboard/squadboard-api/internal/apperror"
	"github.com/squadboard/squadboard-api/internal/auth"
	teamModel "github.com/squadboard/squadboard-api/internal/team/model"
	"github.com/squadboard/squadboard-api/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register handles POST /team/register.
func (h *Handler) Register(c *gin.Context) {
	var req teamModel.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "name, a valid email and password are required")
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /team.
func (h *Handler) Get(c *gin.Context) {
	team, err := h.service.Get(c.Request.Context(), auth.ClaimsFrom(c).TeamID)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// Update handles PATCH /team.
func (h *Handler) Update(c *gin.Context) {
	var req teamModel.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "invalid request body")
		return
	}

	team, err := h.service.Update(c.Request.Context(), auth.ClaimsFrom(c).TeamID, &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// UpdateImage handles PUT /team/image with a multipart "image" field.
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

	team, err := h.service.UpdateImage(
		c.Request.Context(),
		auth.ClaimsFrom(c).TeamID,
		file.Header.Get("Content-Type"),
		file.Size,
		body,
	)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, team)
}
