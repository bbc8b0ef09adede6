package store

import (
	"context"
	"errors"

	"github.com/dhanush217/Movie-review/internal/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this email or username already exists")
	ErrAlreadyInWatchlist = errors.New("movie already in watchlist")
)

// UserStore defines persistence for accounts and watchlist membership.
// AddToWatchlist returns ErrAlreadyInWatchlist for an existing member so the
// caller sees the no-op; RemoveFromWatchlist is idempotent and succeeds
// silently for absent entries.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	AddToWatchlist(ctx context.Context, userID, movieID string) error
	RemoveFromWatchlist(ctx context.Context, userID, movieID string) error
	ListWatchlist(ctx context.Context, userID string) ([]*domain.WatchlistItem, error)
}
