package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dhanush217/Movie-review/internal/domain"
)

const movieColumns = `id, title, genre, release_year, director, cast_members, synopsis, poster_url, average_rating, review_count, created_at, updated_at`

// PostgresMovieStore implements MovieStore on PostgreSQL.
type PostgresMovieStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresMovieStore(db *sqlx.DB, logger *slog.Logger) (*PostgresMovieStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresMovieStore{db: db, logger: logger}, nil
}

// Create inserts a new catalog entry. The unique index on title maps to
// ErrMovieAlreadyExists.
func (s *PostgresMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (id, title, genre, release_year, director, cast_members, synopsis, poster_url, average_rating, review_count, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	movie.CreatedAt = time.Now().UTC()
	movie.UpdatedAt = movie.CreatedAt

	s.logger.DebugContext(ctx, "Executing Create movie query", slog.String("movieID", movie.ID), slog.String("title", movie.Title))
	_, err := s.db.ExecContext(ctx, query,
		movie.ID, movie.Title, pq.Array(movie.Genre), movie.ReleaseYear, movie.Director,
		pq.Array(movie.Cast), movie.Synopsis, movie.PosterURL,
		movie.AverageRating, movie.ReviewCount, movie.CreatedAt, movie.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "Movie title already exists (unique constraint)", slog.String("title", movie.Title))
			return ErrMovieAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to create movie in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create movie: %w", err)
	}
	return nil
}

func (s *PostgresMovieStore) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`
	var movie domain.Movie

	err := s.db.GetContext(ctx, &movie, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get movie by ID from DB", slog.String("movieID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get movie by ID: %w", err)
	}
	return &movie, nil
}

// List applies the optional filters with AND, orders newest first with an id
// tie-break, and returns the page plus the total match count.
func (s *PostgresMovieStore) List(ctx context.Context, params MovieListParams) ([]*domain.Movie, int, error) {
	countQuery := `SELECT COUNT(*) FROM movies WHERE 1=1`
	selectQuery := `SELECT ` + movieColumns + ` FROM movies WHERE 1=1`

	var args []interface{}
	var conditions []string
	argID := 1

	f := params.Filter
	if f.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", argID))
		args = append(args, "%"+f.Keyword+"%")
		argID++
	}
	if f.Genre != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(genre::text)::text[] @> ARRAY[LOWER($%d::text)]", argID))
		args = append(args, f.Genre)
		argID++
	}
	if f.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("release_year = $%d", argID))
		args = append(args, f.Year)
		argID++
	}
	if f.MinRating != 0 {
		conditions = append(conditions, fmt.Sprintf("average_rating >= $%d", argID))
		args = append(args, f.MinRating)
		argID++
	}

	if len(conditions) > 0 {
		conditionStr := " AND " + strings.Join(conditions, " AND ")
		countQuery += conditionStr
		selectQuery += conditionStr
	}

	var totalCount int
	s.logger.DebugContext(ctx, "Executing List movies count query", slog.String("query", countQuery), slog.Any("args", args))
	if err := s.db.GetContext(ctx, &totalCount, countQuery, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to count movies in DB", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}
	if totalCount == 0 {
		return []*domain.Movie{}, 0, nil
	}

	selectQuery += " ORDER BY created_at DESC, id DESC"
	selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, params.PageSize, (params.Page-1)*params.PageSize)

	var movies []*domain.Movie
	s.logger.DebugContext(ctx, "Executing List movies select query", slog.String("query", selectQuery), slog.Any("args", args))
	if err := s.db.SelectContext(ctx, &movies, selectQuery, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movies from DB", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}
	if movies == nil {
		movies = []*domain.Movie{}
	}
	return movies, totalCount, nil
}

// UpdateStats persists both derived fields in one statement so the aggregate
// is never partially written.
func (s *PostgresMovieStore) UpdateStats(ctx context.Context, id string, stats domain.MovieStats) error {
	query := `UPDATE movies SET average_rating = $1, review_count = $2, updated_at = $3 WHERE id = $4`

	s.logger.DebugContext(ctx, "Executing UpdateStats query",
		slog.String("movieID", id),
		slog.Float64("averageRating", stats.AverageRating),
		slog.Int("reviewCount", stats.ReviewCount))
	result, err := s.db.ExecContext(ctx, query, stats.AverageRating, stats.ReviewCount, time.Now().UTC(), id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update movie stats in DB", slog.String("movieID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update movie stats: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrMovieNotFound
	}
	return nil
}
