// Package router provides payment module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/squadboard/squadboard-api/internal/auth"
	categoryRepository "github.com/squadboard/squadboard-api/internal/category/repository"
	eventRepository "github.com/squadboard/squadboard-api/internal/event/repository"
	"github.com/squadboard/squadboard-api/internal/payment/handler"
	"github.com/squadboard/squadboard-api/internal/payment/repository"
	"github.com/squadboard/squadboard-api/internal/payment/service"
)

// RegisterRoutes registers payment module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, tm *auth.TokenManager, logger *zap.SugaredLogger) {
	svc := service.New(
		repository.New(db),
		categoryRepository.New(db),
		eventRepository.New(db),
		db,
		logger,
	)
	h := handler.New(svc, logger)

	view := auth.Require(auth.PermViewTeam, logger)
	manage := auth.Require(auth.PermManagePayments, logger)
	settle := auth.Require(auth.PermSettlePayment, logger)

	g := r.Group("/payment", auth.Authenticate(tm, logger))
	g.POST("/create-payment", manage, h.Create)
	g.GET("", view, h.List)
	g.GET("/mine", settle, h.Mine)
	g.GET("/:id", view, h.Get)
	g.PATCH("/:id", manage, h.Update)
	g.DELETE("/:id", manage, h.Delete)
	g.POST("/:id/items", manage, h.AddItem)
	g.PATCH("/item/:itemId", manage, h.UpdateItem)
	g.DELETE("/item/:itemId", manage, h.DeleteItem)
	g.PATCH("/finalize/:id", manage, h.Finalize)
	g.POST("/process", settle, h.Process)
	g.POST("/process-with-items", settle, h.ProcessWithItems)
}
