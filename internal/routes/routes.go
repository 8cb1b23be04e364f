package routes

import (
	"movie-catalog/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Movie  *handlers.MovieHandler
	Auth   *handlers.AuthHandler
	Upload *handlers.UploadHandler
	Web    *handlers.WebHandler

	// RequireToken guards every API route except token issuing.
	RequireToken fiber.Handler
	// APILimiter is optional.
	APILimiter fiber.Handler
}

func Setup(app *fiber.App, h Handlers) {
	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1")
	if h.APILimiter != nil {
		v1.Use(h.APILimiter)
	}

	v1.Post("/auth/token", h.Auth.IssueToken)

	protected := v1.Group("", h.RequireToken)

	protected.Delete("/auth/token", h.Auth.RevokeToken)

	// Movie routes - CRUD operations
	movies := protected.Group("/movies")
	{
		movies.Get("/", h.Movie.GetAllMovies)
		movies.Get("/:id", h.Movie.GetMovieByID)
		movies.Post("/", h.Movie.CreateMovie)
		movies.Put("/:id", h.Movie.UpdateMovie)
		movies.Delete("/:id", h.Movie.DeleteMovie)
	}

	uploads := protected.Group("/uploads")
	{
		uploads.Get("/presign", h.Upload.GetPresignedURL)
	}

	// Web channel. POST /:id is the form-friendly update.
	app.Get("/", h.Web.Index)
	app.Post("/", h.Web.Store)
	app.Post("/:id", h.Web.Update)
	app.Delete("/:id", h.Web.Destroy)
}
