package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dhanush217/Movie-review/internal/domain"
)

// MemoryUserStore is an in-memory UserStore used by tests. Watchlist
// membership is a per-user set; listing needs the movie store to build the
// reduced projection, mirroring the SQL join.
type MemoryUserStore struct {
	mu         sync.RWMutex
	users      map[string]*domain.User
	watchlists map[string]map[string]time.Time // userID -> movieID -> added at
	movies     *MemoryMovieStore
}

func NewMemoryUserStore(movies *MemoryMovieStore) *MemoryUserStore {
	return &MemoryUserStore{
		users:      make(map[string]*domain.User),
		watchlists: make(map[string]map[string]time.Time),
		movies:     movies,
	}
}

func (m *MemoryUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) || strings.EqualFold(existing.Username, user.Username) {
			return ErrUserAlreadyExists
		}
	}
	userCopy := *user
	m.users[user.ID] = &userCopy
	return nil
}

func (m *MemoryUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	userCopy := *user
	return &userCopy, nil
}

func (m *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			userCopy := *user
			return &userCopy, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MemoryUserStore) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[user.ID]
	if !ok {
		return ErrUserNotFound
	}
	for id, other := range m.users {
		if id == user.ID {
			continue
		}
		if strings.EqualFold(other.Email, user.Email) || strings.EqualFold(other.Username, user.Username) {
			return ErrUserAlreadyExists
		}
	}
	stored.Username = user.Username
	stored.Email = user.Email
	stored.PasswordHash = user.PasswordHash
	stored.UpdatedAt = time.Now().UTC()
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (m *MemoryUserStore) AddToWatchlist(ctx context.Context, userID, movieID string) error {
	if m.movies != nil {
		if _, err := m.movies.GetByID(ctx, movieID); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[userID]; !ok {
		return ErrUserNotFound
	}
	set, ok := m.watchlists[userID]
	if !ok {
		set = make(map[string]time.Time)
		m.watchlists[userID] = set
	}
	if _, present := set[movieID]; present {
		return ErrAlreadyInWatchlist
	}
	set[movieID] = time.Now().UTC()
	return nil
}

func (m *MemoryUserStore) RemoveFromWatchlist(ctx context.Context, userID, movieID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if set, ok := m.watchlists[userID]; ok {
		delete(set, movieID)
	}
	return nil
}

func (m *MemoryUserStore) ListWatchlist(ctx context.Context, userID string) ([]*domain.WatchlistItem, error) {
	m.mu.RLock()
	set := make(map[string]time.Time, len(m.watchlists[userID]))
	for movieID, addedAt := range m.watchlists[userID] {
		set[movieID] = addedAt
	}
	m.mu.RUnlock()

	type member struct {
		movieID string
		addedAt time.Time
	}
	members := make([]member, 0, len(set))
	for movieID, addedAt := range set {
		members = append(members, member{movieID: movieID, addedAt: addedAt})
	}
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].addedAt.Equal(members[j].addedAt) {
			return members[i].movieID > members[j].movieID
		}
		return members[i].addedAt.After(members[j].addedAt)
	})

	items := make([]*domain.WatchlistItem, 0, len(members))
	for _, mem := range members {
		movie, err := m.movies.GetByID(ctx, mem.movieID)
		if err != nil {
			continue // movie removed from catalog; skip the dangling reference
		}
		items = append(items, &domain.WatchlistItem{
			ID:            movie.ID,
			Title:         movie.Title,
			PosterURL:     movie.PosterURL,
			Genre:         movie.Genre,
			AverageRating: movie.AverageRating,
			ReleaseYear:   movie.ReleaseYear,
		})
	}
	return items, nil
}

// WatchlistSize reports the member count for a user, for tests asserting
// idempotent removal.
func (m *MemoryUserStore) WatchlistSize(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.watchlists[userID])
}
