package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dhanush217/Movie-review/internal/domain"
)

// MemoryMovieStore is an in-memory MovieStore used by tests. It enforces the
// same title uniqueness the Postgres schema does and returns copies so
// callers cannot mutate stored state through returned pointers.
type MemoryMovieStore struct {
	mu     sync.RWMutex
	movies map[string]*domain.Movie
}

func NewMemoryMovieStore() *MemoryMovieStore {
	return &MemoryMovieStore{movies: make(map[string]*domain.Movie)}
}

func (m *MemoryMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.movies[movie.ID]; exists {
		return ErrMovieAlreadyExists
	}
	for _, existing := range m.movies {
		if strings.EqualFold(existing.Title, movie.Title) {
			return ErrMovieAlreadyExists
		}
	}
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = time.Now().UTC()
	}
	movie.UpdatedAt = movie.CreatedAt

	movieCopy := *movie
	m.movies[movie.ID] = &movieCopy
	return nil
}

func (m *MemoryMovieStore) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	movie, ok := m.movies[id]
	if !ok {
		return nil, ErrMovieNotFound
	}
	movieCopy := *movie
	return &movieCopy, nil
}

func (m *MemoryMovieStore) List(ctx context.Context, params MovieListParams) ([]*domain.Movie, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f := params.Filter
	var filtered []domain.Movie
	for _, movie := range m.movies {
		if f.Keyword != "" && !strings.Contains(strings.ToLower(movie.Title), strings.ToLower(f.Keyword)) {
			continue
		}
		if f.Genre != "" {
			found := false
			for _, g := range movie.Genre {
				if strings.EqualFold(g, f.Genre) {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if f.Year != 0 && movie.ReleaseYear != f.Year {
			continue
		}
		if f.MinRating != 0 && movie.AverageRating < f.MinRating {
			continue
		}
		filtered = append(filtered, *movie)
	}

	// Newest first, id tie-break, matching the Postgres ordering.
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].ID > filtered[j].ID
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	totalCount := len(filtered)
	start := (params.Page - 1) * params.PageSize
	end := start + params.PageSize
	if start < 0 {
		start = 0
	}
	if start >= totalCount {
		return []*domain.Movie{}, totalCount, nil
	}
	if end > totalCount {
		end = totalCount
	}

	page := make([]*domain.Movie, 0, end-start)
	for i := start; i < end; i++ {
		movieCopy := filtered[i]
		page = append(page, &movieCopy)
	}
	return page, totalCount, nil
}

func (m *MemoryMovieStore) UpdateStats(ctx context.Context, id string, stats domain.MovieStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	movie, ok := m.movies[id]
	if !ok {
		return ErrMovieNotFound
	}
	movie.AverageRating = stats.AverageRating
	movie.ReviewCount = stats.ReviewCount
	movie.UpdatedAt = time.Now().UTC()
	return nil
}
