// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	athleteRouter "github.com/squadboard/squadboard-api/internal/athlete/router"
	athleteService "github.com/squadboard/squadboard-api/internal/athlete/service"
	"github.com/squadboard/squadboard-api/internal/auth"
	categoryRouter "github.com/squadboard/squadboard-api/internal/category/router"
	"github.com/squadboard/squadboard-api/internal/config"
	"github.com/squadboard/squadboard-api/internal/database/database"
	"github.com/squadboard/squadboard-api/internal/database/migrate"
	eventRouter "github.com/squadboard/squadboard-api/internal/event/router"
	"github.com/squadboard/squadboard-api/internal/health"
	"github.com/squadboard/squadboard-api/internal/middleware"
	paymentRouter "github.com/squadboard/squadboard-api/internal/payment/router"
	statisticsRouter "github.com/squadboard/squadboard-api/internal/statistics/router"
	"github.com/squadboard/squadboard-api/internal/storage"
	teamRouter "github.com/squadboard/squadboard-api/internal/team/router"
	teamService "github.com/squadboard/squadboard-api/internal/team/service"
	userRouter "github.com/squadboard/squadboard-api/internal/user/router"
	"github.com/squadboard/squadboard-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	if err := run(cfg, sugar); err != nil {
		sugar.Errorw("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warnw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		return err
	}
	logger.Infow("migrations applied", "path", migrate.GetMigrationsPath())

	uploader := storage.Disabled()
	if cfg.Storage.Enabled {
		if uploader, err = storage.New(ctx, cfg.Storage); err != nil {
			return err
		}
		logger.Infow("object storage enabled", "bucket", cfg.Storage.Bucket)
	}

	gin.SetMode(cfg.GinMode)
	if cfg.IsDevelopment() {
		logger.Warnw("debug mode: internal error details are returned to clients")
	}
	engine := newEngine(cfg, db, uploader, logger)

	server := &http.Server{
		Addr: cfg.Server.GetAddress(),
		Handler: cors.New(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}).Handler(engine),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infow("starting server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Infow("shutting down server", "timeout", cfg.Server.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close()
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Infow("server shutdown complete")
	return nil
}

func newEngine(cfg config.Config, db *gorm.DB, uploader storage.Uploader, logger *zap.SugaredLogger) *gin.Engine {
	tm := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logger(logger))

	r.GET("/health", health.New(db, logger).Check)

	teamRouter.RegisterRoutes(r, db, teamService.Deps{
		Tokens:     tm,
		Uploader:   uploader,
		BcryptCost: cfg.Auth.BcryptCost,
	}, logger)
	userRouter.RegisterRoutes(r, db, tm, cfg.Auth.BcryptCost, logger)
	categoryRouter.RegisterRoutes(r, db, tm, logger)
	athleteRouter.RegisterRoutes(r, db, tm, athleteService.Deps{
		Uploader:   uploader,
		BcryptCost: cfg.Auth.BcryptCost,
	}, logger)
	eventRouter.RegisterRoutes(r, db, tm, logger)
	paymentRouter.RegisterRoutes(r, db, tm, logger)
	statisticsRouter.RegisterRoutes(r, db, tm, logger)

	return r
}
