package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movie-catalog/internal/config"
	"movie-catalog/internal/database"
	"movie-catalog/internal/logging"
	"movie-catalog/internal/server"
	"movie-catalog/internal/services"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// @title Movie Catalog API
// @version 1.0
// @description Movies and genres catalog: token-authenticated JSON API.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8010
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

func main() {
	wd, _ := os.Getwd()
	envFile, envErr := config.LoadEnvFiles(wd)

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logging.New(cfg.IsDevelopment())
	if envErr != nil {
		log.Warnf("Could not load environment file: %v", envErr)
	} else {
		log.Infof("Environment loaded from file %s", envFile)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	for _, warning := range cfg.Warnings() {
		log.Warn(warning)
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Env,
			AttachStacktrace: true,
		}); err != nil {
			log.Warnf("Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	var storage *services.MinIOService
	if cfg.MinIO.Enabled() {
		storage, err = services.NewMinIOService(cfg.MinIO, log)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO service: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := storage.EnsureBucket(ctx); err != nil {
			log.WithError(err).Warn("Failed to configure bucket, but continuing...")
		}
		cancel()
	}

	app := server.New(server.Options{
		Config:  cfg,
		Logger:  log,
		DB:      db,
		Storage: storage,
	})

	// Graceful shutdown
	go gracefulShutdown(app, log)

	log.Infof("Movie Catalog starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}

func gracefulShutdown(app *fiber.App, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	log.Info("Server shutdown complete")
}
