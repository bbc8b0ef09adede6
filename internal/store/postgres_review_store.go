package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dhanush217/Movie-review/internal/domain"
)

const reviewColumns = `id, movie_id, user_id, rating, review_text, created_at, updated_at`

// PostgresReviewStore implements ReviewStore on PostgreSQL.
type PostgresReviewStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresReviewStore(db *sqlx.DB, logger *slog.Logger) (*PostgresReviewStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresReviewStore{db: db, logger: logger}, nil
}

// Create inserts a new review. The reviews_user_movie_key unique constraint
// makes a concurrent duplicate insert fail here rather than creating two
// reviews behind a stale pre-check.
func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	query := `INSERT INTO reviews (id, movie_id, user_id, rating, review_text, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`

	s.logger.DebugContext(ctx, "Executing Create review query",
		slog.String("reviewID", review.ID),
		slog.String("movieID", review.MovieID),
		slog.String("userID", review.UserID))

	_, err := s.db.ExecContext(ctx, query,
		review.ID, review.MovieID, review.UserID, review.Rating, review.ReviewText,
		review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			if pqErr.Constraint == "reviews_user_movie_key" {
				s.logger.WarnContext(ctx, "User has already reviewed this movie (DB constraint)",
					slog.String("movieID", review.MovieID), slog.String("userID", review.UserID))
				return ErrDuplicateReview
			}
			return fmt.Errorf("failed to create review due to unique constraint %s: %w", pqErr.Constraint, err)
		}
		s.logger.ErrorContext(ctx, "Failed to create review in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (s *PostgresReviewStore) GetByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	var review domain.Review

	err := s.db.GetContext(ctx, &review, query, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get review by ID from DB", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get review by ID: %w", err)
	}
	return &review, nil
}

func (s *PostgresReviewStore) GetByUserAndMovie(ctx context.Context, userID, movieID string) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = $1 AND movie_id = $2`
	var review domain.Review

	err := s.db.GetContext(ctx, &review, query, userID, movieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get review by user and movie from DB",
			slog.String("userID", userID), slog.String("movieID", movieID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get review by user and movie: %w", err)
	}
	return &review, nil
}

func (s *PostgresReviewStore) Update(ctx context.Context, review *domain.Review) error {
	query := `UPDATE reviews SET rating = $1, review_text = $2, updated_at = $3 WHERE id = $4`
	review.UpdatedAt = time.Now().UTC()

	s.logger.DebugContext(ctx, "Executing Update review query", slog.String("reviewID", review.ID))
	result, err := s.db.ExecContext(ctx, query, review.Rating, review.ReviewText, review.UpdatedAt, review.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update review in DB", slog.String("reviewID", review.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update review: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check review update result: %w", err)
	}
	if rowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (s *PostgresReviewStore) Delete(ctx context.Context, reviewID string) error {
	query := `DELETE FROM reviews WHERE id = $1`

	s.logger.DebugContext(ctx, "Executing Delete review query", slog.String("reviewID", reviewID))
	result, err := s.db.ExecContext(ctx, query, reviewID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete review from DB", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete review: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check review delete result: %w", err)
	}
	if rowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (s *PostgresReviewStore) ListByMovieID(ctx context.Context, movieID string) ([]*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE movie_id = $1 ORDER BY created_at DESC, id DESC`

	var reviews []*domain.Review
	if err := s.db.SelectContext(ctx, &reviews, query, movieID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list reviews by movieID from DB", slog.String("movieID", movieID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list reviews by movieID: %w", err)
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	return reviews, nil
}

// AggregateByMovieID reads the mean rating and count over the live review
// set in a single query, so both values reflect one consistent snapshot.
func (s *PostgresReviewStore) AggregateByMovieID(ctx context.Context, movieID string) (float64, int, error) {
	query := `SELECT COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS review_count
              FROM reviews WHERE movie_id = $1`

	var agg struct {
		AverageRating float64 `db:"average_rating"`
		ReviewCount   int     `db:"review_count"`
	}
	if err := s.db.GetContext(ctx, &agg, query, movieID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to aggregate reviews from DB", slog.String("movieID", movieID), slog.String("error", err.Error()))
		return 0, 0, fmt.Errorf("failed to aggregate reviews for movie %s: %w", movieID, err)
	}
	return agg.AverageRating, agg.ReviewCount, nil
}
