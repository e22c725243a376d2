// Package router provides account and manager routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/auth"
	categoryRepository "github.com/squadboard/squadboard-api/internal/category/repository"
	"github.com/squadboard/squadboard-api/internal/user/handler"
	"github.com/squadboard/squadboard-api/internal/user/repository"
	"github.com/squadboard/squadboard-api/internal/user/service"
)

// RegisterRoutes registers login, account and manager routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, tm *auth.TokenManager, bcryptCost int, logger *zap.SugaredLogger) {
	repo := repository.New(db)
	svc := service.New(repo, categoryRepository.New(db), db, tm, bcryptCost, logger)
	h := handler.New(svc, logger)

	authn := auth.Authenticate(tm, logger)
	view := auth.Require(auth.PermViewTeam, logger)
	staff := auth.Require(auth.PermManageStaff, logger)

	r.POST("/auth/login", h.Login)

	u := r.Group("/user", authn, view)
	u.GET("/me", h.Me)
	u.PATCH("/password", h.ChangePassword)

	m := r.Group("/manager", authn, staff)
	m.POST("", h.CreateManager)
	m.GET("", h.ListManagers)
	m.GET("/:id", h.GetManager)
	m.DELETE("/:id", h.DeleteManager)
}
