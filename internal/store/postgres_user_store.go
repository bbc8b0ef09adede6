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

const userColumns = `id, username, email, password_hash, role, created_at, updated_at`

// PostgresUserStore implements UserStore on PostgreSQL.
type PostgresUserStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresUserStore(db *sqlx.DB, logger *slog.Logger) (*PostgresUserStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresUserStore{db: db, logger: logger}, nil
}

func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, role, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`

	s.logger.DebugContext(ctx, "Executing Create user query", slog.String("userID", user.ID), slog.String("username", user.Username))
	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "User already exists (unique constraint)", slog.String("constraint", pqErr.Constraint))
			return ErrUserAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to create user in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var user domain.User

	err := s.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get user by ID from DB", slog.String("userID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	var user domain.User

	err := s.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get user by email from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET username = $1, email = $2, password_hash = $3, updated_at = $4 WHERE id = $5`
	user.UpdatedAt = time.Now().UTC()

	s.logger.DebugContext(ctx, "Executing Update user query", slog.String("userID", user.ID))
	result, err := s.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.UpdatedAt, user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrUserAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to update user in DB", slog.String("userID", user.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AddToWatchlist inserts a membership row. The composite primary key makes a
// duplicate insert fail with ErrAlreadyInWatchlist so the caller sees the
// no-op instead of a silent success.
func (s *PostgresUserStore) AddToWatchlist(ctx context.Context, userID, movieID string) error {
	query := `INSERT INTO watchlist (user_id, movie_id, added_at) VALUES ($1, $2, $3)`

	s.logger.DebugContext(ctx, "Executing AddToWatchlist query", slog.String("userID", userID), slog.String("movieID", movieID))
	_, err := s.db.ExecContext(ctx, query, userID, movieID, time.Now().UTC())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrAlreadyInWatchlist
			case "23503": // foreign_key_violation
				return ErrMovieNotFound
			}
		}
		s.logger.ErrorContext(ctx, "Failed to add movie to watchlist in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to add to watchlist: %w", err)
	}
	return nil
}

// RemoveFromWatchlist deletes a membership row. Removing an absent entry is
// not an error.
func (s *PostgresUserStore) RemoveFromWatchlist(ctx context.Context, userID, movieID string) error {
	query := `DELETE FROM watchlist WHERE user_id = $1 AND movie_id = $2`

	s.logger.DebugContext(ctx, "Executing RemoveFromWatchlist query", slog.String("userID", userID), slog.String("movieID", movieID))
	if _, err := s.db.ExecContext(ctx, query, userID, movieID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to remove movie from watchlist in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove from watchlist: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) ListWatchlist(ctx context.Context, userID string) ([]*domain.WatchlistItem, error) {
	query := `SELECT m.id, m.title, m.poster_url, m.genre, m.average_rating, m.release_year
              FROM watchlist w JOIN movies m ON m.id = w.movie_id
              WHERE w.user_id = $1 ORDER BY w.added_at DESC`

	var items []*domain.WatchlistItem
	if err := s.db.SelectContext(ctx, &items, query, userID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list watchlist from DB", slog.String("userID", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	if items == nil {
		items = []*domain.WatchlistItem{}
	}
	return items, nil
}
