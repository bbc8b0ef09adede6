package domain

import (
	"time"

	"github.com/lib/pq"
)

// Movie represents a catalog entry. AverageRating and ReviewCount are
// derived from the live review set and must only be written through the
// stats recalculation path.
type Movie struct {
	ID            string         `json:"id" db:"id"`
	Title         string         `json:"title" db:"title"`
	Genre         pq.StringArray `json:"genre" db:"genre"`
	ReleaseYear   int            `json:"releaseYear" db:"release_year"`
	Director      string         `json:"director" db:"director"`
	Cast          pq.StringArray `json:"cast" db:"cast_members"`
	Synopsis      string         `json:"synopsis" db:"synopsis"`
	PosterURL     string         `json:"posterURL" db:"poster_url"`
	AverageRating float64        `json:"averageRating" db:"average_rating"`
	ReviewCount   int            `json:"reviewCount" db:"review_count"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`
}

// MovieStats is the derived aggregate pair stored on a movie.
type MovieStats struct {
	AverageRating float64 `json:"averageRating" db:"average_rating"`
	ReviewCount   int     `json:"reviewCount" db:"review_count"`
}

// MovieDetail is a movie together with its populated review list,
// newest first, each review carrying the reviewer's username.
type MovieDetail struct {
	Movie
	Reviews []Review `json:"reviews"`
}

// WatchlistItem is the reduced movie projection returned for watchlists.
type WatchlistItem struct {
	ID            string         `json:"id" db:"id"`
	Title         string         `json:"title" db:"title"`
	PosterURL     string         `json:"posterURL" db:"poster_url"`
	Genre         pq.StringArray `json:"genre" db:"genre"`
	AverageRating float64        `json:"averageRating" db:"average_rating"`
	ReleaseYear   int            `json:"releaseYear" db:"release_year"`
}

// CreateMovieRequest defines the request body for adding a movie to the
// catalog.
type CreateMovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Genre       []string `json:"genre" validate:"required,min=1,dive,min=2,max=50"`
	ReleaseYear int      `json:"releaseYear" validate:"required,gte=1888,lte=2100"`
	Director    string   `json:"director" validate:"required,min=2,max=100"`
	Cast        []string `json:"cast" validate:"required,min=1,dive,min=1,max=100"`
	Synopsis    string   `json:"synopsis" validate:"required,min=10"`
	PosterURL   string   `json:"posterURL" validate:"required,url"`
}

// MovieListFilter holds the optional catalog filters, combined with AND.
type MovieListFilter struct {
	Keyword   string
	Genre     string
	Year      int
	MinRating float64
}

// MovieListResult is the paginated catalog response.
type MovieListResult struct {
	Movies []*Movie `json:"movies"`
	Page   int      `json:"page"`
	Pages  int      `json:"pages"`
	Total  int      `json:"total"`
}
