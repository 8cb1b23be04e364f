package models

import "time"

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"2"`
	Name      string    `gorm:"not null;size:255;uniqueIndex:idx_genres_name" json:"name" example:"Sci-Fi"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Genre) TableName() string {
	return "genres"
}

// MovieGenre is the join row between a movie and a genre; it has no payload.
type MovieGenre struct {
	MovieID uint `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	GenreID uint `gorm:"primaryKey;autoIncrement:false;index" json:"genre_id"`
}

func (MovieGenre) TableName() string {
	return "movie_genre"
}
