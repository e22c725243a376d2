// Package handler provides HTTP handlers for payment endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/squadboard/squadboard-api/internal/apperror"
	"github.com/squadboard/squadboard-api/internal/auth"
	"github.com/squadboard/squadboard-api/internal/payment/model"
	"github.com/squadboard/squadboard-api/internal/payment/service"
)

// Handler handles HTTP requests for payment endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new payment handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Create handles POST /payment/create-payment.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "name, dueDate and categoryId are required")
		return
	}

	payment, err := h.service.Create(c.Request.Context(), auth.ClaimsFrom(c).TeamID, &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// List handles GET /payment?categoryId=.
func (h *Handler) List(c *gin.Context) {
	payments, err := h.service.List(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Query("categoryId"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Mine handles GET /payment/mine.
func (h *Handler) Mine(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	payments, err := h.service.Mine(c.Request.Context(), claims.TeamID, claims.ID)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Get handles GET /payment/:id.
func (h *Handler) Get(c *gin.Context) {
	payment, err := h.service.Get(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Update handles PATCH /payment/:id.
func (h *Handler) Update(c *gin.Context) {
	var req model.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "invalid request body")
		return
	}

	payment, err := h.service.Update(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id"), &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Delete handles DELETE /payment/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id")); err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment deleted"})
}

// AddItem handles POST /payment/:id/items.
func (h *Handler) AddItem(c *gin.Context) {
	var req model.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "name and a value with at most two decimals are required")
		return
	}

	resp, err := h.service.AddItem(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id"), &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateItem handles PATCH /payment/item/:itemId.
func (h *Handler) UpdateItem(c *gin.Context) {
	var req model.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "name and a value with at most two decimals are required")
		return
	}

	resp, err := h.service.UpdateItem(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("itemId"), &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteItem handles DELETE /payment/item/:itemId.
func (h *Handler) DeleteItem(c *gin.Context) {
	total, err := h.service.DeleteItem(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("itemId"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted", "paymentValue": total})
}

// Finalize handles PATCH /payment/finalize/:id.
func (h *Handler) Finalize(c *gin.Context) {
	payment, err := h.service.Finalize(c.Request.Context(), auth.ClaimsFrom(c).TeamID, c.Param("id"))
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Process handles POST /payment/process.
func (h *Handler) Process(c *gin.Context) {
	var req model.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "paymentId is required")
		return
	}

	claims := auth.ClaimsFrom(c)
	row, err := h.service.Process(c.Request.Context(), claims.TeamID, claims.ID, &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// ProcessWithItems handles POST /payment/process-with-items.
func (h *Handler) ProcessWithItems(c *gin.Context) {
	var req model.ProcessWithItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.BadRequest(c, "paymentId is required")
		return
	}

	claims := auth.ClaimsFrom(c)
	confirmation, err := h.service.ProcessWithItems(c.Request.Context(), claims.TeamID, claims.ID, &req)
	if err != nil {
		apperror.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmation": confirmation})
}
