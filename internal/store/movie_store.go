package store

import (
	"context"
	"errors"

	"github.com/dhanush217/Movie-review/internal/domain"
)

var (
	ErrMovieNotFound      = errors.New("movie not found")
	ErrMovieAlreadyExists = errors.New("movie with this title already exists")
)

// MovieListParams combines the catalog filter with 1-indexed pagination.
type MovieListParams struct {
	Page     int
	PageSize int
	Filter   domain.MovieListFilter
}

// MovieStore defines the catalog persistence operations. List returns the
// page of movies plus the total match count; ordering is newest first with
// an id tie-break so pagination is deterministic.
type MovieStore interface {
	Create(ctx context.Context, movie *domain.Movie) error
	GetByID(ctx context.Context, id string) (*domain.Movie, error)
	List(ctx context.Context, params MovieListParams) ([]*domain.Movie, int, error)
	// UpdateStats writes both aggregate fields as a single update. It is the
	// only mutation path for average_rating and review_count.
	UpdateStats(ctx context.Context, id string, stats domain.MovieStats) error
}
