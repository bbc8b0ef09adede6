package service

import (
	"context"
	"log/slog"

	"github.com/dhanush217/Movie-review/internal/domain"
	"github.com/dhanush217/Movie-review/internal/store"
)

// WatchlistService manages per-user watchlist membership.
type WatchlistService struct {
	users  store.UserStore
	movies store.MovieStore
	logger *slog.Logger
}

func NewWatchlistService(users store.UserStore, movies store.MovieStore, logger *slog.Logger) *WatchlistService {
	return &WatchlistService{users: users, movies: movies, logger: logger}
}

// Add puts a movie on the user's watchlist. An existing membership fails
// with store.ErrAlreadyInWatchlist so the caller sees the no-op.
func (s *WatchlistService) Add(ctx context.Context, userID, movieID string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return err
	}

	if err := s.users.AddToWatchlist(ctx, userID, movieID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Movie added to watchlist", slog.String("userID", userID), slog.String("movieID", movieID))
	return nil
}

// Remove takes a movie off the user's watchlist. Removing an absent entry
// succeeds silently.
func (s *WatchlistService) Remove(ctx context.Context, userID, movieID string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.users.RemoveFromWatchlist(ctx, userID, movieID)
}

// List returns the reduced movie projection for every watchlist member.
func (s *WatchlistService) List(ctx context.Context, userID string) ([]*domain.WatchlistItem, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.users.ListWatchlist(ctx, userID)
}
