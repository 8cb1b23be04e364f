// Package seed fills an empty catalog with demo data.
package seed

import (
	"context"
	"fmt"

	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

type Movie struct {
	Title       string
	Director    string
	ReleaseDate string
	Genres      []string
}

var Genres = []string{"Action", "Sci-Fi", "Adventure", "Drama", "Thriller", "Romance", "War", "Heist"}

var Movies = []Movie{
	{"Inception", "Christopher Nolan", "2010-07-16", []string{"Sci-Fi", "Thriller"}},
	{"Titanic", "James Cameron", "1997-12-19", []string{"Drama", "Romance"}},
	{"Interstellar", "Christopher Nolan", "2014-11-07", []string{"Sci-Fi", "Drama"}},
	{"Passengers", "Morten Tyldum", "2016-12-21", []string{"Sci-Fi", "Romance"}},
	{"13 Hours: The Secret Soldiers of Benghazi", "Michael Bay", "2016-01-15", []string{"Action", "War"}},
	{"Ocean's Eleven", "Steven Soderbergh", "2001-12-07", []string{"Heist", "Thriller"}},

	{"Captain America: The First Avenger", "Joe Johnston", "2011-07-22", []string{"Action", "Adventure"}},
	{"Captain America: The Winter Soldier", "Anthony Russo, Joe Russo", "2014-04-04", []string{"Action", "Thriller"}},
	{"Captain America: Civil War", "Anthony Russo, Joe Russo", "2016-05-06", []string{"Action", "Adventure"}},
	{"The Avengers", "Joss Whedon", "2012-05-04", []string{"Action", "Adventure"}},
	{"Avengers: Age of Ultron", "Joss Whedon", "2015-05-01", []string{"Action", "Sci-Fi"}},
	{"Avengers: Infinity War", "Anthony Russo, Joe Russo", "2018-04-27", []string{"Action", "Sci-Fi"}},
	{"Avengers: Endgame", "Anthony Russo, Joe Russo", "2019-04-26", []string{"Action", "Sci-Fi"}},

	{"Spider-Man", "Sam Raimi", "2002-05-03", []string{"Action", "Adventure"}},
	{"Spider-Man 2", "Sam Raimi", "2004-06-30", []string{"Action", "Adventure"}},
	{"Spider-Man 3", "Sam Raimi", "2007-05-04", []string{"Action", "Adventure"}},
	{"The Amazing Spider-Man", "Marc Webb", "2012-07-03", []string{"Action", "Adventure"}},
	{"The Amazing Spider-Man 2", "Marc Webb", "2014-05-02", []string{"Action", "Adventure"}},
	{"Spider-Man: Homecoming", "Jon Watts", "2017-07-07", []string{"Action", "Adventure"}},
	{"Spider-Man: Far From Home", "Jon Watts", "2019-07-02", []string{"Action", "Adventure"}},
	{"Spider-Man: No Way Home", "Jon Watts", "2021-12-17", []string{"Action", "Adventure"}},
}

// Run creates the demo genres and movies. It does nothing and returns 0 when
// the catalog already holds movies, so it is safe to run on every deploy.
func Run(ctx context.Context, movies repository.MovieRepository, genres repository.GenreRepository, logger *logrus.Logger) (int, error) {
	existing, err := movies.List(ctx, repository.ListOptions{PerPage: 1})
	if err != nil {
		return 0, err
	}
	if existing.Total > 0 {
		logger.WithField("movies", existing.Total).Info("Catalog is not empty, skipping seed")
		return 0, nil
	}

	if _, err := genres.Resolve(ctx, Genres); err != nil {
		return 0, fmt.Errorf("seed genres: %w", err)
	}

	for i, m := range Movies {
		date, err := models.ParseDate(m.ReleaseDate)
		if err != nil {
			return i, fmt.Errorf("seed %q: %w", m.Title, err)
		}
		title, director := m.Title, m.Director
		_, err = movies.Create(ctx, models.MovieFields{
			Title:       &title,
			Director:    &director,
			ReleaseDate: &date,
			Genres:      m.Genres,
		})
		if err != nil {
			return i, fmt.Errorf("seed %q: %w", m.Title, err)
		}
	}

	logger.WithFields(logrus.Fields{
		"genres": len(Genres),
		"movies": len(Movies),
	}).Info("Catalog seeded")
	return len(Movies), nil
}
