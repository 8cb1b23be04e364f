package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "title", fieldPath("CreateMovieRequest.title"))
	assert.Equal(t, "genres.1", fieldPath("CreateMovieRequest.genres[1]"))
	assert.Equal(t, "release_date", fieldPath("release_date"))
}

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()

	t.Run("valid", func(t *testing.T) {
		req := CreateMovieRequest{
			Title:       "Inception",
			Director:    "Christopher Nolan",
			ReleaseDate: "2010-07-16",
			Genres:      []string{"Sci-Fi"},
		}
		assert.NoError(t, v.Struct(&req))
	})

	t.Run("messages", func(t *testing.T) {
		req := CreateMovieRequest{
			Title:       " ",
			ReleaseDate: "2010-7-16",
			PosterURL:   "not a url",
			Genres:      []string{"Drama", ""},
		}
		err := v.Struct(&req)

		var invalid ValidationErrors
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, []string{"The title field is required."}, invalid["title"])
		assert.Equal(t, []string{"The director field is required."}, invalid["director"])
		assert.Equal(t, []string{"The release date field must match the format Y-m-d."}, invalid["release_date"])
		assert.Equal(t, []string{"The poster url field must be a valid URL."}, invalid["poster_url"])
		assert.Equal(t, []string{"The genres.1 field is required."}, invalid["genres.1"])
		assert.NotContains(t, invalid, "genres.0")
		assert.Equal(t, "The given data was invalid.", err.Error())
	})

	t.Run("update fields are optional", func(t *testing.T) {
		assert.NoError(t, v.Struct(&UpdateMovieRequest{}))

		blank := ""
		var invalid ValidationErrors
		require.ErrorAs(t, v.Struct(&UpdateMovieRequest{Title: &blank}), &invalid)
		assert.Contains(t, invalid, "title")
	})

	t.Run("max", func(t *testing.T) {
		var invalid ValidationErrors
		require.ErrorAs(t, v.Struct(&ListMoviesQuery{PerPage: 101}), &invalid)
		assert.Equal(t, []string{"The per page field must not be greater than 100."}, invalid["per_page"])

		long := make([]byte, 256)
		for i := range long {
			long[i] = 'a'
		}
		require.ErrorAs(t, v.Struct(&ListMoviesQuery{Search: string(long)}), &invalid)
		assert.Equal(t, []string{"The search field must not be greater than 255 characters."}, invalid["search"])
	})
}

func TestDecodeErrors(t *testing.T) {
	var req CreateMovieRequest

	err := json.Unmarshal([]byte(`{"genres":"Drama"}`), &req)
	assert.Equal(t, []string{"The genres field must be an array."}, decodeErrors(err)["genres"])

	err = json.Unmarshal([]byte(`{"title":42}`), &req)
	assert.Equal(t, []string{"The title field must be a string."}, decodeErrors(err)["title"])

	err = json.Unmarshal([]byte(`{`), &req)
	assert.Contains(t, decodeErrors(err), "body")
}
