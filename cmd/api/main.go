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

	"beauty-solutions-backend/config"
	_ "beauty-solutions-backend/docs" // Important for Swagger
	v1 "beauty-solutions-backend/internal/delivery/http/v1"
	"beauty-solutions-backend/internal/usecase"
	"beauty-solutions-backend/pkg/email"
	"beauty-solutions-backend/pkg/logger"
	"beauty-solutions-backend/pkg/metrics"
	"beauty-solutions-backend/pkg/redis"
	"beauty-solutions-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// @title           Beauty Solutions Contact API
// @version         1.0
// @description     Contact form submission pipeline for the Beauty Solutions website.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting contact backend", "port", cfg.Port, "relay", cfg.RelayProvider)

	environment := "development"
	if cfg.IsProduction() {
		environment = "production"
	}
	audit := security.InitSecurityLogger("beauty-solutions-backend", environment)
	defer func() { _ = audit.Sync() }()

	// 3. Setup Redis (optional)
	var redisCheck func(ctx context.Context) error
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting uses memory", "error", err)
		} else {
			redisCheck = redis.HealthCheck
			defer func() { _ = redis.Close() }()
		}
	}

	// 4. Setup Metrics
	m := metrics.New()

	// 5. Setup Relay
	relay, err := email.NewRelay(cfg, logger.Log)
	if err != nil {
		logger.Log.Error("Failed to create relay", "error", err)
		os.Exit(1)
	}
	relay = email.WithMetrics(relay, m)

	// 6. Setup UseCases
	contactUC := usecase.NewContactUsecase(relay, usecase.ContactConfigFrom(cfg), audit, m)
	healthUC := usecase.NewHealthUsecase(relay.Name(), redisCheck)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Metrics:   m,
		Redis:     redis.Client(),
		Audit:     audit,
		Config:    cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// relay timeout plus headroom for binding and logging
		WriteTimeout: cfg.RelayTimeout + 10*time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// in-flight relay calls get their full timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RelayTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
