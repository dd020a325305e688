package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"labournet-backend/config"
	_ "labournet-backend/docs" // Important for Swagger
	v1 "labournet-backend/internal/delivery/http/v1"
	"labournet-backend/internal/repository/postgres"
	"labournet-backend/internal/usecase"
	"labournet-backend/pkg/auth"
	"labournet-backend/pkg/cache"
	"labournet-backend/pkg/database"
	"labournet-backend/pkg/logger"
	"labournet-backend/pkg/redis"
	"labournet-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           LabourNet API
// @version         1.0
// @description     Marketplace backend for workers, contractors and builders.
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.WithField("port", cfg.Port).Info("Starting labournet backend")
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to connect to database")
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Cache (Redis, falling back to in-process)
	var store cache.Store
	redisClient, err := redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.WithError(err).Warn("Redis unavailable, using in-memory cache")
		}
		store = cache.NewMemoryStore(cfg.CacheTTL, 10*time.Minute)
	} else {
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient)
		logger.Log.Info("Redis cache connected")
	}

	// 5. Setup Repositories
	accountRepo := postgres.NewAccountRepository(dbPool)
	projectRepo := postgres.NewProjectRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 6. Setup UseCases
	validate := validation.New()
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	authUC := usecase.NewAuthUsecase(accountRepo, hasher, tokens, validate)
	projectUC := usecase.NewProjectUsecase(projectRepo, accountRepo, applicationRepo, store, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, store, validate)
	dashboardUC := usecase.NewDashboardUsecase(projectRepo, applicationRepo, store, cfg.CacheTTL)
	healthUC := usecase.NewHealthUsecase(dbPool, store)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ProjectUC:     projectUC,
		ApplicationUC: applicationUC,
		DashboardUC:   dashboardUC,
		HealthUC:      healthUC,
		Tokens:        tokens,
		Config:        cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Error("Listen failed")
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}

	logger.Log.Info("Server exiting")
}
