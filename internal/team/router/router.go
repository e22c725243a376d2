// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/auth"
	"github.com/squadboard/squadboard-api/internal/team/handler"
	"github.com/squadboard/squadboard-api/internal/team/repository"
	"github.com/squadboard/squadboard-api/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, deps service.Deps, logger *zap.SugaredLogger) {
	repo := repository.New(db)
	svc := service.New(repo, db, deps, logger)
	h := handler.New(svc, logger)

	r.POST("/team/register", h.Register)

	g := r.Group("/team", auth.Authenticate(deps.Tokens, logger))
	g.GET("", auth.Require(auth.PermViewTeam, logger), h.Get)
	g.PATCH("", auth.Require(auth.PermManageTeam, logger), h.Update)
	g.PUT("/image", auth.Require(auth.PermManageTeam, logger), h.UpdateImage)
}
