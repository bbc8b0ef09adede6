package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dhanush217/Movie-review/internal/domain"
	"github.com/dhanush217/Movie-review/internal/store"
)

// MovieDetailCache invalidates cached movie detail after review mutations.
// A nil cache disables invalidation.
type MovieDetailCache interface {
	Invalidate(ctx context.Context, movieID string)
}

// ReviewService orchestrates the review lifecycle: it validates input,
// enforces ownership and uniqueness, persists the review, and recalculates
// the owning movie's aggregate. All mutations for one movie serialize on a
// per-movie lock held across the persist + recalculate sequence, so
// concurrent mutations never produce an aggregate over a half-written
// review set. Cross-movie operations proceed in parallel.
type ReviewService struct {
	movies  store.MovieStore
	reviews store.ReviewStore
	cache   MovieDetailCache
	logger  *slog.Logger

	// movieLocks holds one mutex per movie that has ever been reviewed and
	// is never pruned; growth is bounded by the catalog size (a mutex per
	// entry), which stays far below the review rows backing them.
	mu         sync.Mutex
	movieLocks map[string]*sync.Mutex
}

func NewReviewService(movies store.MovieStore, reviews store.ReviewStore, cache MovieDetailCache, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		movies:     movies,
		reviews:    reviews,
		cache:      cache,
		logger:     logger,
		movieLocks: make(map[string]*sync.Mutex),
	}
}

func (s *ReviewService) lockMovie(movieID string) func() {
	s.mu.Lock()
	lock, ok := s.movieLocks[movieID]
	if !ok {
		lock = &sync.Mutex{}
		s.movieLocks[movieID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// roundRating rounds a mean rating to one decimal place.
func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// RecalculateStats recomputes averageRating and reviewCount from the live
// review set and writes both onto the movie as a single update. An empty
// set resets the aggregate to 0/0. Transient storage failures are retried
// once; on failure the movie keeps its prior aggregate.
func (s *ReviewService) RecalculateStats(ctx context.Context, movieID string) (domain.MovieStats, error) {
	avg, count, err := s.reviews.AggregateByMovieID(ctx, movieID)
	if err != nil {
		s.logger.WarnContext(ctx, "Aggregate read failed, retrying once", slog.String("movieID", movieID), slog.String("error", err.Error()))
		avg, count, err = s.reviews.AggregateByMovieID(ctx, movieID)
		if err != nil {
			return domain.MovieStats{}, err
		}
	}

	stats := domain.MovieStats{ReviewCount: count}
	if count > 0 {
		stats.AverageRating = roundRating(avg)
	}

	if err := s.movies.UpdateStats(ctx, movieID, stats); err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			return domain.MovieStats{}, err
		}
		s.logger.WarnContext(ctx, "Aggregate write failed, retrying once", slog.String("movieID", movieID), slog.String("error", err.Error()))
		if err := s.movies.UpdateStats(ctx, movieID, stats); err != nil {
			return domain.MovieStats{}, err
		}
	}

	s.logger.InfoContext(ctx, "Movie stats recalculated",
		slog.String("movieID", movieID),
		slog.Float64("averageRating", stats.AverageRating),
		slog.Int("reviewCount", stats.ReviewCount))
	return stats, nil
}

// CreateReview validates and persists a new review for (userID, movieID),
// then returns the created review together with the refreshed aggregate.
func (s *ReviewService) CreateReview(ctx context.Context, movieID, userID string, req domain.CreateReviewRequest) (*domain.Review, domain.MovieStats, error) {
	if req.Rating == nil || req.ReviewText == nil {
		return nil, domain.MovieStats{}, &ValidationError{
			Field:   "rating",
			Message: "Rating and review text are required",
			Detail: map[string]interface{}{
				"missing": map[string]bool{
					"rating":     req.Rating == nil,
					"reviewText": req.ReviewText == nil,
				},
			},
		}
	}
	if vErr := validateRating(*req.Rating); vErr != nil {
		return nil, domain.MovieStats{}, vErr
	}
	trimmed, vErr := validateReviewText(*req.ReviewText)
	if vErr != nil {
		return nil, domain.MovieStats{}, vErr
	}

	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return nil, domain.MovieStats{}, err
	}

	unlock := s.lockMovie(movieID)
	defer unlock()

	if existing, err := s.reviews.GetByUserAndMovie(ctx, userID, movieID); err == nil {
		return nil, domain.MovieStats{}, &DuplicateReviewError{Existing: domain.ExistingReview{
			Rating:     existing.Rating,
			ReviewText: existing.ReviewText,
			CreatedAt:  existing.CreatedAt,
		}}
	} else if !errors.Is(err, store.ErrReviewNotFound) {
		return nil, domain.MovieStats{}, err
	}

	now := time.Now().UTC()
	review := &domain.Review{
		ID:         uuid.NewString(),
		MovieID:    movieID,
		UserID:     userID,
		Rating:     *req.Rating,
		ReviewText: trimmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, store.ErrDuplicateReview) {
			// Lost a race against a concurrent insert; the constraint caught it.
			if existing, getErr := s.reviews.GetByUserAndMovie(ctx, userID, movieID); getErr == nil {
				return nil, domain.MovieStats{}, &DuplicateReviewError{Existing: domain.ExistingReview{
					Rating:     existing.Rating,
					ReviewText: existing.ReviewText,
					CreatedAt:  existing.CreatedAt,
				}}
			}
			return nil, domain.MovieStats{}, err
		}
		return nil, domain.MovieStats{}, err
	}

	stats, err := s.RecalculateStats(ctx, movieID)
	if err != nil {
		return nil, domain.MovieStats{}, err
	}
	s.invalidate(ctx, movieID)

	s.logger.InfoContext(ctx, "Review created",
		slog.String("reviewID", review.ID),
		slog.String("movieID", movieID),
		slog.String("userID", userID))
	return review, stats, nil
}

// UpdateReview applies a partial patch to the caller's own review. Omitted
// fields are left unchanged; provided fields pass the same validators as
// create. Returns the updated review plus the refreshed aggregate.
func (s *ReviewService) UpdateReview(ctx context.Context, movieID, reviewID, userID string, patch domain.UpdateReviewRequest) (*domain.Review, domain.MovieStats, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, domain.MovieStats{}, err
	}
	if review.MovieID != movieID {
		return nil, domain.MovieStats{}, store.ErrReviewNotFound
	}
	if review.UserID != userID {
		return nil, domain.MovieStats{}, ErrNotReviewOwner
	}

	if patch.Rating != nil {
		if vErr := validateRating(*patch.Rating); vErr != nil {
			return nil, domain.MovieStats{}, vErr
		}
		review.Rating = *patch.Rating
	}
	if patch.ReviewText != nil {
		trimmed, vErr := validateReviewText(*patch.ReviewText)
		if vErr != nil {
			return nil, domain.MovieStats{}, vErr
		}
		review.ReviewText = trimmed
	}

	unlock := s.lockMovie(review.MovieID)
	defer unlock()

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, domain.MovieStats{}, err
	}

	stats, err := s.RecalculateStats(ctx, review.MovieID)
	if err != nil {
		return nil, domain.MovieStats{}, err
	}
	s.invalidate(ctx, review.MovieID)

	s.logger.InfoContext(ctx, "Review updated", slog.String("reviewID", review.ID), slog.String("movieID", review.MovieID))
	return review, stats, nil
}

// DeleteReview removes the caller's own review and returns the refreshed
// aggregate; deleting the last review resets it to 0/0.
func (s *ReviewService) DeleteReview(ctx context.Context, movieID, reviewID, userID string) (domain.MovieStats, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return domain.MovieStats{}, err
	}
	if review.MovieID != movieID {
		return domain.MovieStats{}, store.ErrReviewNotFound
	}
	if review.UserID != userID {
		return domain.MovieStats{}, ErrNotReviewOwner
	}

	unlock := s.lockMovie(review.MovieID)
	defer unlock()

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return domain.MovieStats{}, err
	}

	stats, err := s.RecalculateStats(ctx, review.MovieID)
	if err != nil {
		return domain.MovieStats{}, err
	}
	s.invalidate(ctx, review.MovieID)

	s.logger.InfoContext(ctx, "Review deleted", slog.String("reviewID", reviewID), slog.String("movieID", review.MovieID))
	return stats, nil
}

func (s *ReviewService) invalidate(ctx context.Context, movieID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, movieID)
	}
}
