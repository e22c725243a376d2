// Package router provides category module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/auth"
	"github.com/squadboard/squadboard-api/internal/category/handler"
	"github.com/squadboard/squadboard-api/internal/category/repository"
	"github.com/squadboard/squadboard-api/internal/category/service"
)

// RegisterRoutes registers category module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, tm *auth.TokenManager, logger *zap.SugaredLogger) {
	repo := repository.New(db)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	view := auth.Require(auth.PermViewTeam, logger)
	manage := auth.Require(auth.PermManageRoster, logger)

	g := r.Group("/category", auth.Authenticate(tm, logger))
	g.POST("", manage, h.Create)
	g.GET("", view, h.List)
	g.GET("/:id", view, h.Get)
	g.PATCH("/:id", manage, h.Update)
	g.DELETE("/:id", manage, h.Delete)
}
