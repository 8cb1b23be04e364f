package services

import (
	"context"
	"fmt"

	"movie-catalog/internal/errs"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

// ObjectStorage is the part of the poster store the movie service needs.
type ObjectStorage interface {
	// Owns reports whether url points at an object this store manages.
	Owns(url string) bool
	Remove(ctx context.Context, url string) error
}

type MovieService interface {
	ListMovies(ctx context.Context, opts repository.ListOptions) (*models.Page[models.Movie], error)
	GetMovie(ctx context.Context, id uint) (*models.Movie, error)
	CreateMovie(ctx context.Context, fields models.MovieFields) (*models.Movie, error)
	UpdateMovie(ctx context.Context, id uint, fields models.MovieFields) (*models.Movie, error)
	DeleteMovie(ctx context.Context, id uint) error
	ListGenres(ctx context.Context) ([]models.Genre, error)
}

type movieService struct {
	repo      repository.MovieRepository
	genreRepo repository.GenreRepository
	storage   ObjectStorage
	logger    *logrus.Logger
}

// NewMovieService builds the service. storage may be nil, in which case
// replaced or orphaned posters are left in place.
func NewMovieService(repo repository.MovieRepository, genreRepo repository.GenreRepository, storage ObjectStorage, logger *logrus.Logger) MovieService {
	return &movieService{
		repo:      repo,
		genreRepo: genreRepo,
		storage:   storage,
		logger:    logger,
	}
}

func errMovieNotFound() error {
	return errs.Errorf(errs.ENOTFOUND, "Movie not found")
}

func (s *movieService) ListMovies(ctx context.Context, opts repository.ListOptions) (*models.Page[models.Movie], error) {
	if opts.PerPage < 0 {
		opts.PerPage = 0
	}
	return s.repo.List(ctx, opts)
}

func (s *movieService) GetMovie(ctx context.Context, id uint) (*models.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, errMovieNotFound()
	}
	return movie, nil
}

func (s *movieService) CreateMovie(ctx context.Context, fields models.MovieFields) (*models.Movie, error) {
	if fields.Title == nil || fields.Director == nil || fields.ReleaseDate == nil {
		return nil, errs.Errorf(errs.EINVALID, "Title, director and release date are required.")
	}

	movie, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"movie_id": movie.ID,
		"genres":   movie.GenreNames(),
	}).Info("Movie created")
	return movie, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id uint, fields models.MovieFields) (*models.Movie, error) {
	existing, err := s.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Update(ctx, existing, fields)
	if err != nil {
		return nil, fmt.Errorf("update movie %d: %w", id, err)
	}

	if fields.PosterURL != nil && *fields.PosterURL != existing.PosterURL {
		s.removePoster(ctx, existing)
	}

	s.logger.WithFields(logrus.Fields{
		"movie_id": movie.ID,
		"genres":   movie.GenreNames(),
	}).Info("Movie updated")
	return movie, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, id uint) error {
	existing, err := s.GetMovie(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, existing); err != nil {
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	s.removePoster(ctx, existing)

	s.logger.WithField("movie_id", id).Info("Movie deleted")
	return nil
}

func (s *movieService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return s.genreRepo.FindAll(ctx)
}

// removePoster deletes the movie's stored poster. Failures are logged only:
// the database change has already been committed.
func (s *movieService) removePoster(ctx context.Context, movie *models.Movie) {
	if s.storage == nil || movie.PosterURL == "" || !s.storage.Owns(movie.PosterURL) {
		return
	}
	if err := s.storage.Remove(ctx, movie.PosterURL); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"movie_id":   movie.ID,
			"poster_url": movie.PosterURL,
		}).Warn("Failed to delete poster from object storage")
	}
}
