// Package server assembles the fiber application: middleware, error
// handling and the wiring from repositories through to handlers.
package server

import (
	"errors"
	"strings"
	"time"

	_ "movie-catalog/docs"
	"movie-catalog/internal/config"
	"movie-catalog/internal/database"
	"movie-catalog/internal/handlers"
	"movie-catalog/internal/middleware"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/routes"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"
	"movie-catalog/internal/views"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

type Options struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     *database.Database
	// Storage is nil when object storage is not configured.
	Storage *services.MinIOService
	// Sessions defaults to an in-memory store.
	Sessions *session.Store
}

// New builds the application and everything it serves.
func New(opts Options) *fiber.App {
	cfg, log, db := opts.Config, opts.Logger, opts.DB

	var storage services.ObjectStorage
	var uploader handlers.PosterUploader
	if opts.Storage != nil {
		storage = opts.Storage
		uploader = opts.Storage
	}

	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.New(session.Config{
			Expiration:     2 * time.Hour,
			KeyLookup:      "cookie:catalog_session",
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		})
	}

	movieRepo := repository.NewMovieRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	movieService := services.NewMovieService(movieRepo, genreRepo, storage, log)
	authService := services.NewAuthService(userRepo, tokenRepo, cfg.Auth, log)

	validator := handlers.NewValidator()

	app := fiber.New(fiber.Config{
		AppName:               "Movie Catalog",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: !cfg.IsDevelopment(),
		ErrorHandler:          errorHandler(log),
		Views:                 views.New(),
	})

	setupMiddleware(app, cfg)

	app.Get("/health", healthCheckHandler(db))
	app.Get("/metrics", middleware.MetricsHandler())
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	var apiLimiter fiber.Handler
	if cfg.Server.RateLimit > 0 {
		apiLimiter = limiter.New(limiter.Config{
			Max:        cfg.Server.RateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return utils.ErrorResponse(c, fiber.StatusTooManyRequests, "Too Many Attempts.")
			},
		})
	}

	routes.Setup(app, routes.Handlers{
		Movie:        handlers.NewMovieHandler(movieService, validator, log),
		Auth:         handlers.NewAuthHandler(authService, validator, log),
		Upload:       handlers.NewUploadHandler(uploader, validator, log),
		Web:          handlers.NewWebHandler(movieService, sessions, validator, log),
		RequireToken: middleware.RequireToken(authService, log),
		APILimiter:   apiLimiter,
	})

	return app
}

func setupMiddleware(app *fiber.App, cfg *config.Config) {
	// Outside recover so requests that panic are counted as 500s.
	app.Use(middleware.Metrics())

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Repanics so that recover above still answers the request.
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic: true,
	}))

	if cfg.IsDevelopment() {
		app.Use(logger.New(logger.Config{
			Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowCredentials: false,
		MaxAge:           86400, // 24 hours
	}))
}

func healthCheckHandler(db *database.Database) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.StatusOK
		dbStatus := "healthy"
		if err := db.HealthCheck(); err != nil {
			status = fiber.StatusServiceUnavailable
			dbStatus = "unhealthy"
		}

		return c.Status(status).JSON(fiber.Map{
			"status":    "ok",
			"service":   "movie-catalog",
			"version":   "1.0.0",
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// errorHandler answers errors no handler dealt with: unknown routes, panics
// caught by recover and web-channel failures. API paths get the envelope.
func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error."

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		entry := log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		})
		if code >= fiber.StatusInternalServerError {
			entry.Error("Request error")
			if hub := sentryfiber.GetHubFromContext(c); hub != nil {
				hub.CaptureException(err)
			}
		} else {
			entry.Debug("Request error")
		}

		if strings.HasPrefix(c.Path(), "/api/") {
			return utils.ErrorResponse(c, code, message)
		}
		return c.Status(code).JSON(fiber.Map{"message": message})
	}
}
