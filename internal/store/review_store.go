package store

import (
	"context"
	"errors"

	"github.com/dhanush217/Movie-review/internal/domain"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("user has already reviewed this movie")
)

// ReviewStore defines persistence for individual reviews. Create must
// enforce the one-review-per-(user,movie) constraint at the storage layer
// and return ErrDuplicateReview on violation; a pre-check alone is racy.
type ReviewStore interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, reviewID string) (*domain.Review, error)
	GetByUserAndMovie(ctx context.Context, userID, movieID string) (*domain.Review, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, reviewID string) error
	// ListByMovieID returns all reviews for a movie, newest first.
	ListByMovieID(ctx context.Context, movieID string) ([]*domain.Review, error)
	// AggregateByMovieID computes the mean rating (unrounded) and count over
	// the live review set in one read. Empty set yields 0, 0.
	AggregateByMovieID(ctx context.Context, movieID string) (avg float64, count int, err error)
}
