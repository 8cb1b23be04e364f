// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"movie-catalog/internal/config"
	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
)

var dbCounter atomic.Int64

// NewDatabase returns a migrated in-memory SQLite database that is closed when the test ends.
func NewDatabase(t testing.TB) *database.Database {
	t.Helper()

	// A named shared-cache database keeps every pooled connection on the same data.
	dsn := fmt.Sprintf("file:catalog_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbCounter.Add(1))

	db, err := database.Open(sqlite.Open(dsn), config.DatabaseConfig{
		MaxOpenConns: 1,
		QueryTimeout: 5 * time.Second,
		AutoMigrate:  true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// CreateMovie inserts a movie row and links it to genres with the given names,
// creating those genres as needed. It bypasses the repository under test.
func CreateMovie(t testing.TB, db *database.Database, title, director, releaseDate string, genres ...string) *models.Movie {
	t.Helper()

	date, err := models.ParseDate(releaseDate)
	require.NoError(t, err)

	movie := &models.Movie{Title: title, Director: director, ReleaseDate: date}
	require.NoError(t, db.Create(movie).Error)

	for _, name := range genres {
		genre := CreateGenre(t, db, name)
		require.NoError(t, db.Create(&models.MovieGenre{MovieID: movie.ID, GenreID: genre.ID}).Error)
		movie.Genres = append(movie.Genres, *genre)
	}

	return movie
}

// CreateGenre returns the genre with name, inserting it if needed.
func CreateGenre(t testing.TB, db *database.Database, name string) *models.Genre {
	t.Helper()

	var genre models.Genre
	require.NoError(t, db.Where(models.Genre{Name: name}).FirstOrCreate(&genre).Error)
	return &genre
}

// LinkedGenreNames reads the join table directly and returns the linked genre names sorted.
func LinkedGenreNames(t testing.TB, db *database.Database, movieID uint) []string {
	t.Helper()

	var names []string
	err := db.Table("movie_genre").
		Select("genres.name").
		Joins("JOIN genres ON genres.id = movie_genre.genre_id").
		Where("movie_genre.movie_id = ?", movieID).
		Order("genres.name").
		Pluck("genres.name", &names).Error
	require.NoError(t, err)
	if names == nil {
		names = []string{}
	}
	return names
}
