package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog/internal/errs"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/services"
	"movie-catalog/internal/testutil"
)

type fakeStorage struct {
	prefix  string
	removed []string
	err     error
}

func (f *fakeStorage) Owns(url string) bool {
	return strings.HasPrefix(url, f.prefix)
}

func (f *fakeStorage) Remove(_ context.Context, url string) error {
	f.removed = append(f.removed, url)
	return f.err
}

func newMovieService(t *testing.T, storage services.ObjectStorage) (services.MovieService, *test.Hook) {
	t.Helper()
	db := testutil.NewDatabase(t)
	logger, hook := test.NewNullLogger()
	svc := services.NewMovieService(
		repository.NewMovieRepository(db),
		repository.NewGenreRepository(db),
		storage,
		logger,
	)
	return svc, hook
}

func fields(t *testing.T, title, director, date string, genres ...string) models.MovieFields {
	t.Helper()
	d, err := models.ParseDate(date)
	require.NoError(t, err)
	return models.MovieFields{Title: &title, Director: &director, ReleaseDate: &d, Genres: genres}
}

func TestMovieService_GetMissingMovie(t *testing.T) {
	svc, _ := newMovieService(t, nil)

	_, err := svc.GetMovie(context.Background(), 99)

	require.Error(t, err)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
	assert.Equal(t, "Movie not found", errs.ErrorMessage(err))
}

func TestMovieService_UpdateAndDeleteMissingMovie(t *testing.T) {
	storage := &fakeStorage{prefix: "http://minio/posters/"}
	svc, _ := newMovieService(t, storage)
	ctx := context.Background()

	_, err := svc.UpdateMovie(ctx, 7, fields(t, "x", "y", "2020-01-01"))
	assert.True(t, errs.Is(err, errs.ENOTFOUND))

	err = svc.DeleteMovie(ctx, 7)
	assert.True(t, errs.Is(err, errs.ENOTFOUND))
	assert.Empty(t, storage.removed)
}

func TestMovieService_CreateRequiresScalars(t *testing.T) {
	svc, _ := newMovieService(t, nil)

	_, err := svc.CreateMovie(context.Background(), models.MovieFields{Genres: []string{"Drama"}})

	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestMovieService_CreateAndGet(t *testing.T) {
	svc, hook := newMovieService(t, nil)
	ctx := context.Background()

	created, err := svc.CreateMovie(ctx, fields(t, "Inception", "Christopher Nolan", "2010-07-16", "Sci-Fi", "Thriller"))
	require.NoError(t, err)

	got, err := svc.GetMovie(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sci-Fi", "Thriller"}, got.GenreNames())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Movie created", entry.Message)
	assert.Equal(t, created.ID, entry.Data["movie_id"])

	genres, err := svc.ListGenres(ctx)
	require.NoError(t, err)
	assert.Len(t, genres, 2)
}

func TestMovieService_ReplacedPosterIsRemoved(t *testing.T) {
	storage := &fakeStorage{prefix: "http://minio/posters/"}
	svc, _ := newMovieService(t, storage)
	ctx := context.Background()

	f := fields(t, "Titanic", "James Cameron", "1997-12-19")
	oldPoster := "http://minio/posters/titanic_1.jpg"
	f.PosterURL = &oldPoster
	movie, err := svc.CreateMovie(ctx, f)
	require.NoError(t, err)

	// Same poster: nothing to clean up.
	_, err = svc.UpdateMovie(ctx, movie.ID, models.MovieFields{PosterURL: &oldPoster})
	require.NoError(t, err)
	assert.Empty(t, storage.removed)

	newPoster := "http://minio/posters/titanic_2.jpg"
	updated, err := svc.UpdateMovie(ctx, movie.ID, models.MovieFields{PosterURL: &newPoster})
	require.NoError(t, err)
	assert.Equal(t, newPoster, updated.PosterURL)
	assert.Equal(t, []string{oldPoster}, storage.removed)
}

func TestMovieService_DeleteRemovesOwnedPosterOnly(t *testing.T) {
	storage := &fakeStorage{prefix: "http://minio/posters/"}
	svc, _ := newMovieService(t, storage)
	ctx := context.Background()

	external := "https://image.tmdb.org/t/p/w500/abc.jpg"
	f := fields(t, "Spider-Man", "Sam Raimi", "2002-05-03")
	f.PosterURL = &external
	movie, err := svc.CreateMovie(ctx, f)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMovie(ctx, movie.ID))
	assert.Empty(t, storage.removed)

	_, err = svc.GetMovie(ctx, movie.ID)
	assert.True(t, errs.Is(err, errs.ENOTFOUND))
}

func TestMovieService_PosterCleanupFailureIsLogged(t *testing.T) {
	storage := &fakeStorage{prefix: "http://minio/posters/", err: errors.New("connection refused")}
	svc, hook := newMovieService(t, storage)
	ctx := context.Background()

	poster := "http://minio/posters/avengers.png"
	f := fields(t, "The Avengers", "Joss Whedon", "2012-05-04")
	f.PosterURL = &poster
	movie, err := svc.CreateMovie(ctx, f)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMovie(ctx, movie.ID))

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = true
			assert.Equal(t, poster, entry.Data["poster_url"])
		}
	}
	assert.True(t, warned)
}

func TestMovieService_ListNormalizesNegativePageSize(t *testing.T) {
	svc, _ := newMovieService(t, nil)
	ctx := context.Background()
	_, err := svc.CreateMovie(ctx, fields(t, "Inception", "Christopher Nolan", "2010-07-16"))
	require.NoError(t, err)

	page, err := svc.ListMovies(ctx, repository.ListOptions{PerPage: -5})

	require.NoError(t, err)
	assert.False(t, page.Paginated)
	assert.Len(t, page.Data, 1)
}
