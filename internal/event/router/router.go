// Package router provides event module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/auth"
	categoryRepository "github.com/squadboard/squadboard-api/internal/category/repository"
	"github.com/squadboard/squadboard-api/internal/event/handler"
	"github.com/squadboard/squadboard-api/internal/event/repository"
	"github.com/squadboard/squadboard-api/internal/event/service"
)

// RegisterRoutes registers event module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, tm *auth.TokenManager, logger *zap.SugaredLogger) {
	svc := service.New(repository.New(db), categoryRepository.New(db), db, logger)
	h := handler.New(svc, logger)

	view := auth.Require(auth.PermViewTeam, logger)
	manage := auth.Require(auth.PermManageEvents, logger)
	confirm := auth.Require(auth.PermConfirmPresence, logger)

	g := r.Group("/event", auth.Authenticate(tm, logger))
	g.POST("", manage, h.Create)
	g.GET("", view, h.List)
	g.GET("/:id", view, h.Get)
	g.PATCH("/:id", manage, h.Update)
	g.PATCH("/finalize/:id", manage, h.Finalize)
	g.DELETE("/:id", manage, h.Delete)
	g.PATCH("/toggle-confirmation/:confirmationId", confirm, h.ToggleConfirmation)
	g.POST("/confirm-presence/:eventId", confirm, h.ConfirmPresence)
}
