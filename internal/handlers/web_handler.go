package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/url"
	"strings"

	"movie-catalog/internal/errs"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

// DefaultWebPageSize is the listing page size when per_page is not given.
const DefaultWebPageSize = 10

const flashKey = "flash"

// WebHandler serves the server-rendered catalog pages. Mutations redirect back
// to the page they came from with a flash message.
type WebHandler struct {
	service   services.MovieService
	sessions  *session.Store
	validator *Validator
	logger    *logrus.Logger
}

func NewWebHandler(service services.MovieService, sessions *session.Store, validator *Validator, logger *logrus.Logger) *WebHandler {
	return &WebHandler{
		service:   service,
		sessions:  sessions,
		validator: validator,
		logger:    logger,
	}
}

func (h *WebHandler) Index(c *fiber.Ctx) error {
	var query ListMoviesQuery
	if err := h.validator.bindQuery(c, &query); err != nil {
		return h.fail(c, err)
	}
	if query.PerPage == 0 {
		query.PerPage = DefaultWebPageSize
	}

	page, err := h.service.ListMovies(c.UserContext(), repository.ListOptions{
		Search:  query.Search,
		PerPage: query.PerPage,
		Page:    query.Page,
	})
	if err != nil {
		return h.fail(c, err)
	}
	page.WithLinks("/")

	genres, err := h.service.ListGenres(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}

	payload, err := json.Marshal(page)
	if err != nil {
		return h.fail(c, err)
	}

	flash, err := h.takeFlash(c)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to read flash message")
	}

	return c.Render("movies/index", fiber.Map{
		"Title":          "Movies",
		"Page":           page,
		"Movies":         page.Data,
		"Genres":         genres,
		"Search":         page.Search,
		"Flash":          flash,
		"PerPageOptions": []int{10, 25, 50, 100},
		// encoding/json escapes <, > and &, so the payload is safe inside a script element.
		"PageJSON": template.JS(payload),
	}, "layouts/main")
}

func (h *WebHandler) Store(c *fiber.Ctx) error {
	var req CreateMovieRequest
	if err := h.validator.bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	genres, err := withNewGenres(req.Genres, c.FormValue("new_genres"))
	if err != nil {
		return h.fail(c, err)
	}
	req.Genres = genres

	if _, err := h.service.CreateMovie(c.UserContext(), req.Fields()); err != nil {
		return h.fail(c, err)
	}
	return h.back(c, "Movie added successfully.")
}

func (h *WebHandler) Update(c *fiber.Ctx) error {
	id, err := movieID(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req UpdateMovieRequest
	if err := h.validator.bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	genres, err := withNewGenres(req.Genres, c.FormValue("new_genres"))
	if err != nil {
		return h.fail(c, err)
	}
	req.Genres = genres

	if _, err := h.service.UpdateMovie(c.UserContext(), id, req.Fields()); err != nil {
		return h.fail(c, err)
	}
	return h.back(c, "Movie updated successfully.")
}

func (h *WebHandler) Destroy(c *fiber.Ctx) error {
	id, err := movieID(c)
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.service.DeleteMovie(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return h.back(c, "Movie deleted successfully.")
}

// withNewGenres appends the comma separated names typed into the page's
// "new genres" input to the genres picked from the list.
func withNewGenres(genres []string, input string) ([]string, error) {
	for _, name := range strings.Split(input, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if len(name) > 255 {
			return nil, ValidationErrors{"new_genres": {"The new genres field must not be greater than 255 characters."}}
		}
		genres = append(genres, name)
	}
	return genres, nil
}

// back redirects to the referring page of this site, falling back to the listing.
func (h *WebHandler) back(c *fiber.Ctx, message string) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return h.fail(c, err)
	}
	sess.Set(flashKey, message)
	if err := sess.Save(); err != nil {
		return h.fail(c, err)
	}

	return c.Redirect(backLocation(c.Get(fiber.HeaderReferer), c.Hostname()), fiber.StatusSeeOther)
}

// backLocation returns the path and query of referer when it points at host,
// and "/" otherwise. A path starting with "//" or "/\" would be followed by
// browsers as a link to another host, so it is refused too.
func backLocation(referer, host string) string {
	ref, err := url.Parse(referer)
	if err != nil || ref.Path == "" {
		return "/"
	}
	if ref.Host != "" && !strings.EqualFold(ref.Host, host) {
		return "/"
	}

	location := ref.RequestURI()
	if !strings.HasPrefix(location, "/") || strings.HasPrefix(location, "//") || strings.HasPrefix(location, "/\\") {
		return "/"
	}
	return location
}

func (h *WebHandler) takeFlash(c *fiber.Ctx) (string, error) {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return "", err
	}
	flash, _ := sess.Get(flashKey).(string)
	if flash == "" {
		return "", nil
	}
	sess.Delete(flashKey)
	return flash, sess.Save()
}

// fail answers web requests with plain JSON: structured field errors for
// validation failures so the page can show them next to the form.
func (h *WebHandler) fail(c *fiber.Ctx, err error) error {
	var invalid ValidationErrors
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": InvalidDataMessage,
			"errors":  invalid,
		})
	}

	status := StatusFor(err)
	if status != fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{"message": errs.ErrorMessage(err)})
	}

	h.logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("Web request failed")
	return fiber.NewError(fiber.StatusInternalServerError, "Something went wrong.")
}
