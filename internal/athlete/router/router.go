// Package router provides athlete module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/athlete/handler"
	"github.com/squadboard/squadboard-api/internal/athlete/repository"
	"github.com/squadboard/squadboard-api/internal/athlete/service"
	"github.com/squadboard/squadboard-api/internal/auth"
	categoryRepository "github.com/squadboard/squadboard-api/internal/category/repository"
)

// RegisterRoutes registers athlete module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, tm *auth.TokenManager, deps service.Deps, logger *zap.SugaredLogger) {
	svc := service.New(repository.New(db), categoryRepository.New(db), db, deps, logger)
	h := handler.New(svc, logger)

	view := auth.Require(auth.PermViewTeam, logger)
	manage := auth.Require(auth.PermManageRoster, logger)

	g := r.Group("/athlete", auth.Authenticate(tm, logger))
	g.POST("", manage, h.Create)
	g.GET("", view, h.List)
	g.GET("/:id", view, h.Get)
	g.PATCH("/:id", manage, h.Update)
	g.DELETE("/:id", manage, h.Delete)
	g.PUT("/:id/image", manage, h.UpdateImage)
}
