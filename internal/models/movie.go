package models

import (
	"time"
)

// Movie is a catalog entry. Genres is populated by every repository call that returns a movie.
type Movie struct {
	ID          uint      `gorm:"primaryKey" json:"id" example:"1"`
	Title       string    `gorm:"not null;size:255;index" json:"title" example:"Inception"`
	Director    string    `gorm:"not null;size:255;index" json:"director" example:"Christopher Nolan"`
	ReleaseDate Date      `gorm:"not null;index" json:"release_date" swaggertype:"string" example:"2010-07-16"`
	PosterURL   string    `gorm:"size:1024;not null;default:''" json:"poster_url,omitempty" example:"https://storage.example.com/posters/inception_1a2b3c4d.jpg"`
	Genres      []Genre   `gorm:"many2many:movie_genre;constraint:OnDelete:CASCADE" json:"genres"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Movie) TableName() string {
	return "movies"
}

// GenreNames returns the names of the loaded genres in their loaded order.
func (m *Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// MovieFields carries the writable attributes of a movie. Nil scalar fields
// are left untouched on update. Genres always replaces the linked set; a nil
// slice clears it.
type MovieFields struct {
	Title       *string
	Director    *string
	ReleaseDate *Date
	PosterURL   *string
	Genres      []string
}
