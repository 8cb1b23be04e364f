package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GenreRepository interface {
	// Resolve maps each distinct name to a genre id, creating missing genres.
	Resolve(ctx context.Context, names []string) ([]uint, error)
	FindByName(ctx context.Context, name string) (*models.Genre, error)
	FindAll(ctx context.Context) ([]models.Genre, error)
}

type genreRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewGenreRepository(db *database.Database) GenreRepository {
	return &genreRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *genreRepository) Resolve(ctx context.Context, names []string) ([]uint, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return resolveGenres(r.db.WithContext(ctx), names)
}

func (r *genreRepository) FindByName(ctx context.Context, name string) (*models.Genre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return findGenreByName(r.db.WithContext(ctx), name)
}

func (r *genreRepository) FindAll(ctx context.Context) ([]models.Genre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var genres []models.Genre
	err := r.db.WithContext(ctx).Order("name").Find(&genres).Error
	return genres, err
}

// resolveGenres runs find-or-create for every distinct name on tx, which may
// be a transaction. A concurrent writer that wins the insert race is read
// back through the unique index on name instead of failing. Names are
// resolved in sorted order so concurrent transactions lock index entries in
// the same order; ids come back in that order.
func resolveGenres(tx *gorm.DB, names []string) ([]uint, error) {
	distinct := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		distinct = append(distinct, name)
	}
	sort.Strings(distinct)

	ids := make([]uint, 0, len(distinct))
	for _, name := range distinct {
		genre, err := firstOrCreateGenre(tx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, genre.ID)
	}

	return ids, nil
}

func firstOrCreateGenre(tx *gorm.DB, name string) (*models.Genre, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("genre name must not be blank")
	}

	genre, err := findGenreByName(tx, name)
	if err != nil || genre != nil {
		return genre, err
	}

	candidate := models.Genre{Name: name}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, fmt.Errorf("insert genre %q: %w", name, err)
	}

	// Re-read rather than trusting candidate.ID: when the insert lost a race
	// nothing was written and no id came back.
	genre, err = findGenreByName(tx, name)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, fmt.Errorf("genre %q missing after insert", name)
	}
	return genre, nil
}

func findGenreByName(tx *gorm.DB, name string) (*models.Genre, error) {
	var genre models.Genre
	err := tx.Where("name = ?", name).Take(&genre).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find genre %q: %w", name, err)
	}
	return &genre, nil
}
