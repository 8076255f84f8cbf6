package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ajharbinger/forensic-omniscient/internal/api"
	"github.com/ajharbinger/forensic-omniscient/internal/database"
	"github.com/ajharbinger/forensic-omniscient/internal/logger"
	"github.com/ajharbinger/forensic-omniscient/internal/middleware"
	"github.com/ajharbinger/forensic-omniscient/internal/repository"
	"github.com/ajharbinger/forensic-omniscient/internal/services"
	"github.com/ajharbinger/forensic-omniscient/pkg/config"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg := config.New()
	log := logger.NewFromEnv(cfg.Environment, cfg.LogLevel)
	if envErr != nil {
		log.Debug("No .env file found")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", err)
	}

	// The database only backs analyst accounts, so it is optional
	var (
		repos  *repository.Repositories
		health api.HealthChecker
	)
	if cfg.AuthEnabled() {
		db, err := database.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database", err)
		}
		defer db.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal("Failed to run migrations", err)
		}
		repos = repository.NewRepositories(db.DB)
		health = db
	} else {
		log.Warn("DATABASE_URL or JWT_SECRET not set, authentication disabled")
	}

	svcs, err := services.NewServices(cfg, log, repos)
	if err != nil {
		log.Fatal("Failed to initialize services", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.GetTrustedProxies()); err != nil {
		log.Fatal("Invalid trusted proxies", err)
	}

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.InputValidationMiddleware(cfg.MaxRequestSize))
	if cfg.EnableRateLimit {
		r.Use(middleware.RateLimitingMiddleware(cfg.RateLimitPerMinute))
	}
	r.Use(gin.Recovery())

	if err := api.SetupRoutes(r, api.Dependencies{Config: cfg, Services: svcs, DB: health}); err != nil {
		log.Fatal("Failed to setup API routes", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment, "auth", cfg.AuthEnabled())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info("Shutting down", "signal", sig.String())
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", err)
	}
}
