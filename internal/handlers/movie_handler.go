package handlers

import (
	"strconv"

	"movie-catalog/internal/errs"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MovieHandler struct {
	service   services.MovieService
	validator *Validator
	logger    *logrus.Logger
}

func NewMovieHandler(service services.MovieService, validator *Validator, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

// movieID parses the :id route parameter. Anything that is not a positive
// integer cannot name a movie and is reported as not found.
func movieID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errs.Errorf(errs.ENOTFOUND, "Movie not found")
	}
	return uint(id), nil
}

// GetAllMovies godoc
// @Summary List movies
// @Description Without parameters every movie is returned. search, per_page or page switch to a paginated result; a search matches title, director or genre name.
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive substring of title, director or genre"
// @Param per_page query int false "Items per page (15 when only search is given)"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} utils.StandardResponse "List of movies"
// @Failure 401 {object} utils.StandardResponse "Unauthenticated"
// @Failure 422 {object} utils.StandardResponse "Invalid query"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [get]
func (h *MovieHandler) GetAllMovies(c *fiber.Ctx) error {
	var query ListMoviesQuery
	if err := h.validator.bindQuery(c, &query); err != nil {
		return respondError(c, h.logger, err, "Failed to fetch movies.")
	}

	opts := repository.ListOptions{Search: query.Search, PerPage: query.PerPage, Page: query.Page}
	if query.Page > 0 && opts.PerPage == 0 && opts.Search == "" {
		opts.PerPage = repository.DefaultSearchPageSize
	}

	page, err := h.service.ListMovies(c.UserContext(), opts)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch movies.")
	}

	if !page.Paginated {
		return utils.SuccessResponse(c, fiber.StatusOK, "Movies retrieved successfully.", page.Data)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Movies retrieved successfully.", page.WithLinks(c.BaseURL()+c.Path()))
}

// GetMovieByID godoc
// @Summary Get movie by ID
// @Description Get a single movie with its genres
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Movie details"
// @Failure 401 {object} utils.StandardResponse "Unauthenticated"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovieByID(c *fiber.Ctx) error {
	id, err := movieID(c)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch movie.")
	}

	movie, err := h.service.GetMovie(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch movie.")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie retrieved successfully.", movie)
}

// CreateMovie godoc
// @Summary Create a new movie
// @Description Genres are matched by name and created when missing
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movie body CreateMovieRequest true "Movie"
// @Success 201 {object} utils.StandardResponse "Movie created successfully"
// @Failure 401 {object} utils.StandardResponse "Unauthenticated"
// @Failure 422 {object} utils.StandardResponse "Validation failed"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [post]
func (h *MovieHandler) CreateMovie(c *fiber.Ctx) error {
	var req CreateMovieRequest
	if err := h.validator.bind(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to create movie.")
	}

	movie, err := h.service.CreateMovie(c.UserContext(), req.Fields())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create movie.")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Movie created successfully.", movie)
}

// UpdateMovie godoc
// @Summary Update a movie
// @Description Absent fields are left unchanged, except genres: the given list replaces the current genres and leaving it out clears them.
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Param movie body UpdateMovieRequest true "Fields to change"
// @Success 200 {object} utils.StandardResponse "Movie updated successfully"
// @Failure 401 {object} utils.StandardResponse "Unauthenticated"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Failure 422 {object} utils.StandardResponse "Validation failed"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(c *fiber.Ctx) error {
	id, err := movieID(c)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update movie.")
	}

	var req UpdateMovieRequest
	if err := h.validator.bind(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to update movie.")
	}

	movie, err := h.service.UpdateMovie(c.UserContext(), id, req.Fields())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update movie.")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie updated successfully.", movie)
}

// DeleteMovie godoc
// @Summary Delete a movie
// @Description Removes the movie and its genre links; genres themselves are kept
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Movie deleted successfully"
// @Failure 401 {object} utils.StandardResponse "Unauthenticated"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c *fiber.Ctx) error {
	id, err := movieID(c)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to delete movie.")
	}

	if err := h.service.DeleteMovie(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete movie.")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie deleted successfully", nil)
}
