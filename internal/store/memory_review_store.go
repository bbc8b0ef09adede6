package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dhanush217/Movie-review/internal/domain"
)

// MemoryReviewStore is an in-memory ReviewStore used by tests. The
// (user, movie) uniqueness check happens under the same lock as the insert,
// mirroring the database constraint.
type MemoryReviewStore struct {
	mu        sync.RWMutex
	reviews   map[string]*domain.Review
	userMovie map[string]string // "userID/movieID" -> reviewID
}

func NewMemoryReviewStore() *MemoryReviewStore {
	return &MemoryReviewStore{
		reviews:   make(map[string]*domain.Review),
		userMovie: make(map[string]string),
	}
}

func pairKey(userID, movieID string) string {
	return userID + "/" + movieID
}

func (m *MemoryReviewStore) Create(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := pairKey(review.UserID, review.MovieID)
	if _, exists := m.userMovie[key]; exists {
		return ErrDuplicateReview
	}
	reviewCopy := *review
	m.reviews[review.ID] = &reviewCopy
	m.userMovie[key] = review.ID
	return nil
}

func (m *MemoryReviewStore) GetByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	review, ok := m.reviews[reviewID]
	if !ok {
		return nil, ErrReviewNotFound
	}
	reviewCopy := *review
	return &reviewCopy, nil
}

func (m *MemoryReviewStore) GetByUserAndMovie(ctx context.Context, userID, movieID string) (*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reviewID, ok := m.userMovie[pairKey(userID, movieID)]
	if !ok {
		return nil, ErrReviewNotFound
	}
	reviewCopy := *m.reviews[reviewID]
	return &reviewCopy, nil
}

func (m *MemoryReviewStore) Update(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.reviews[review.ID]
	if !ok {
		return ErrReviewNotFound
	}
	stored.Rating = review.Rating
	stored.ReviewText = review.ReviewText
	stored.UpdatedAt = time.Now().UTC()
	review.UpdatedAt = stored.UpdatedAt
	return nil
}

func (m *MemoryReviewStore) Delete(ctx context.Context, reviewID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	review, ok := m.reviews[reviewID]
	if !ok {
		return ErrReviewNotFound
	}
	delete(m.reviews, reviewID)
	delete(m.userMovie, pairKey(review.UserID, review.MovieID))
	return nil
}

func (m *MemoryReviewStore) ListByMovieID(ctx context.Context, movieID string) ([]*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var reviews []*domain.Review
	for _, review := range m.reviews {
		if review.MovieID == movieID {
			reviewCopy := *review
			reviews = append(reviews, &reviewCopy)
		}
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		if reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].ID > reviews[j].ID
		}
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	return reviews, nil
}

func (m *MemoryReviewStore) AggregateByMovieID(ctx context.Context, movieID string) (float64, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var sum float64
	var count int
	for _, review := range m.reviews {
		if review.MovieID == movieID {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}
