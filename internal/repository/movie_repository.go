package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultSearchPageSize applies when a search is requested without a page size.
const DefaultSearchPageSize = 15

// ListOptions selects between the unpaginated listing (zero value), a plain
// page (PerPage > 0) and a search, which is always paginated.
type ListOptions struct {
	Search  string
	PerPage int
	Page    int
}

type MovieRepository interface {
	List(ctx context.Context, opts ListOptions) (*models.Page[models.Movie], error)
	// FindByID returns nil, nil when no movie has the id.
	FindByID(ctx context.Context, id uint) (*models.Movie, error)
	Create(ctx context.Context, fields models.MovieFields) (*models.Movie, error)
	Update(ctx context.Context, movie *models.Movie, fields models.MovieFields) (*models.Movie, error)
	Delete(ctx context.Context, movie *models.Movie) error
}

type movieRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewMovieRepository(db *database.Database) MovieRepository {
	return &movieRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

// preloadGenres loads every movie's genres with a single batched query.
func preloadGenres(db *gorm.DB) *gorm.DB {
	return db.Preload("Genres", func(db *gorm.DB) *gorm.DB {
		return db.Order("genres.name")
	})
}

func (r *movieRepository) List(ctx context.Context, opts ListOptions) (*models.Page[models.Movie], error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	search := strings.TrimSpace(opts.Search)
	perPage := opts.PerPage
	if search != "" && perPage <= 0 {
		perPage = DefaultSearchPageSize
	}

	query := r.db.WithContext(ctx).Model(&models.Movie{})

	if perPage <= 0 {
		var movies []models.Movie
		if err := preloadGenres(query).Order("movies.id").Find(&movies).Error; err != nil {
			return nil, fmt.Errorf("list movies: %w", err)
		}
		return models.Unpaginated(movies), nil
	}

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			r.db.Where("LOWER(movies.title) LIKE ?", pattern).
				Or("LOWER(movies.director) LIKE ?", pattern).
				Or(`EXISTS (SELECT 1 FROM movie_genre
					JOIN genres ON genres.id = movie_genre.genre_id
					WHERE movie_genre.movie_id = movies.id AND LOWER(genres.name) LIKE ?)`, pattern),
		)
	}

	// Count and Find each get their own copy of the filtered statement.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}

	var movies []models.Movie
	offset := (page - 1) * perPage
	if err := preloadGenres(query).Order("movies.id").Offset(offset).Limit(perPage).Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	return models.NewPage(movies, total, page, perPage, search), nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uint) (*models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return findMovie(r.db.WithContext(ctx), id)
}

func (r *movieRepository) Create(ctx context.Context, fields models.MovieFields) (*models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	movie := &models.Movie{}
	applyFields(movie, fields)

	var created *models.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(movie).Error; err != nil {
			return fmt.Errorf("insert movie: %w", err)
		}
		if err := assignGenres(tx, movie.ID, fields.Genres); err != nil {
			return err
		}

		var err error
		created, err = findMovie(tx, movie.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *models.Movie, fields models.MovieFields) (*models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	updates := map[string]interface{}{}
	if fields.Title != nil {
		updates["title"] = *fields.Title
	}
	if fields.Director != nil {
		updates["director"] = *fields.Director
	}
	if fields.ReleaseDate != nil {
		updates["release_date"] = *fields.ReleaseDate
	}
	if fields.PosterURL != nil {
		updates["poster_url"] = *fields.PosterURL
	}

	var updated *models.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			err := tx.Model(&models.Movie{ID: movie.ID}).Omit(clause.Associations).Updates(updates).Error
			if err != nil {
				return fmt.Errorf("update movie %d: %w", movie.ID, err)
			}
		}
		// Genres are replaced even when none were given; an omitted list clears them.
		if err := assignGenres(tx, movie.ID, fields.Genres); err != nil {
			return err
		}

		var err error
		updated, err = findMovie(tx, movie.ID)
		if err == nil && updated == nil {
			err = fmt.Errorf("movie %d vanished during update", movie.ID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *movieRepository) Delete(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", movie.ID).Delete(&models.MovieGenre{}).Error; err != nil {
			return fmt.Errorf("delete genre links of movie %d: %w", movie.ID, err)
		}
		if err := tx.Delete(&models.Movie{}, movie.ID).Error; err != nil {
			return fmt.Errorf("delete movie %d: %w", movie.ID, err)
		}
		return nil
	})
}

func findMovie(tx *gorm.DB, id uint) (*models.Movie, error) {
	var movie models.Movie
	err := preloadGenres(tx).Take(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find movie %d: %w", id, err)
	}
	return &movie, nil
}

// assignGenres resolves names to ids and makes them the movie's exact genre set.
func assignGenres(tx *gorm.DB, movieID uint, names []string) error {
	ids, err := resolveGenres(tx, names)
	if err != nil {
		return fmt.Errorf("resolve genres: %w", err)
	}
	return syncGenres(tx, movieID, ids)
}

// syncGenres removes links not in ids and adds the missing ones; links that
// are already present are left as they are.
func syncGenres(tx *gorm.DB, movieID uint, ids []uint) error {
	detach := tx.Where("movie_id = ?", movieID)
	if len(ids) > 0 {
		detach = detach.Where("genre_id NOT IN ?", ids)
	}
	if err := detach.Delete(&models.MovieGenre{}).Error; err != nil {
		return fmt.Errorf("detach genres from movie %d: %w", movieID, err)
	}

	if len(ids) == 0 {
		return nil
	}

	links := make([]models.MovieGenre, 0, len(ids))
	for _, id := range ids {
		links = append(links, models.MovieGenre{MovieID: movieID, GenreID: id})
	}
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	if err != nil {
		return fmt.Errorf("attach genres to movie %d: %w", movieID, err)
	}
	return nil
}

func applyFields(movie *models.Movie, fields models.MovieFields) {
	if fields.Title != nil {
		movie.Title = *fields.Title
	}
	if fields.Director != nil {
		movie.Director = *fields.Director
	}
	if fields.ReleaseDate != nil {
		movie.ReleaseDate = *fields.ReleaseDate
	}
	if fields.PosterURL != nil {
		movie.PosterURL = *fields.PosterURL
	}
}
