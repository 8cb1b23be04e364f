package handlers

import (
	"strings"

	"movie-catalog/internal/models"
)

type CreateMovieRequest struct {
	Title       string   `json:"title" form:"title" validate:"required,notblank,max=255" example:"Inception"`
	Director    string   `json:"director" form:"director" validate:"required,notblank,max=255" example:"Christopher Nolan"`
	ReleaseDate string   `json:"release_date" form:"release_date" validate:"required,datetime=2006-01-02" example:"2010-07-16"`
	PosterURL   string   `json:"poster_url" form:"poster_url" validate:"omitempty,url,max=1024"`
	Genres      []string `json:"genres" form:"genres" validate:"omitempty,dive,notblank,max=255" example:"Sci-Fi,Thriller"`
}

// UpdateMovieRequest leaves absent scalar fields untouched. Genres is always
// applied: leaving it out clears the movie's genres.
type UpdateMovieRequest struct {
	Title       *string  `json:"title" form:"title" validate:"omitempty,notblank,max=255" example:"Inception"`
	Director    *string  `json:"director" form:"director" validate:"omitempty,notblank,max=255" example:"Christopher Nolan"`
	ReleaseDate *string  `json:"release_date" form:"release_date" validate:"omitempty,datetime=2006-01-02" example:"2010-07-16"`
	PosterURL   *string  `json:"poster_url" form:"poster_url" validate:"omitempty,url,max=1024"`
	Genres      []string `json:"genres" form:"genres" validate:"omitempty,dive,notblank,max=255" example:"Sci-Fi,Drama"`
}

type ListMoviesQuery struct {
	Search  string `query:"search" validate:"max=255"`
	PerPage int    `query:"per_page" validate:"min=0,max=100"`
	Page    int    `query:"page" validate:"min=0"`
}

type TokenRequest struct {
	Email      string `json:"email" form:"email" validate:"required,email" example:"test@example.com"`
	Password   string `json:"password" form:"password" validate:"required" example:"password"`
	DeviceName string `json:"device_name" form:"device_name" validate:"required,notblank,max=255" example:"cli"`
}

func trimmedGenres(names []string) []string {
	if names == nil {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, strings.TrimSpace(name))
	}
	return out
}

// Fields converts a validated request into repository input.
func (r *CreateMovieRequest) Fields() models.MovieFields {
	title := strings.TrimSpace(r.Title)
	director := strings.TrimSpace(r.Director)
	date, _ := models.ParseDate(r.ReleaseDate)

	fields := models.MovieFields{
		Title:       &title,
		Director:    &director,
		ReleaseDate: &date,
		Genres:      trimmedGenres(r.Genres),
	}
	if r.PosterURL != "" {
		fields.PosterURL = &r.PosterURL
	}
	return fields
}

// Fields converts a validated request into repository input.
func (r *UpdateMovieRequest) Fields() models.MovieFields {
	fields := models.MovieFields{
		PosterURL: r.PosterURL,
		Genres:    trimmedGenres(r.Genres),
	}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		fields.Title = &title
	}
	if r.Director != nil {
		director := strings.TrimSpace(*r.Director)
		fields.Director = &director
	}
	if r.ReleaseDate != nil {
		date, _ := models.ParseDate(*r.ReleaseDate)
		fields.ReleaseDate = &date
	}
	return fields
}
