// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/auth"
	"github.com/squadboard/squadboard-api/internal/statistics/handler"
	"github.com/squadboard/squadboard-api/internal/statistics/repository"
	"github.com/squadboard/squadboard-api/internal/statistics/service"
)

// RegisterRoutes registers statistics module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, tm *auth.TokenManager, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	g := r.Group("/statistics", auth.Authenticate(tm, logger))
	g.GET("/payments", auth.Require(auth.PermManagePayments, logger), h.Payments)
	g.GET("/events", auth.Require(auth.PermManageEvents, logger), h.Events)
}
