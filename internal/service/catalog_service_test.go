package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/dhanush217/Movie-review/internal/domain"
	"github.com/dhanush217/Movie-review/internal/store"
)

func TestListMoviesPagination(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		env.addMovie(t, fmt.Sprintf("Paginated Movie %02d", i))
	}

	cases := []struct {
		page     int
		wantLen  int
		wantPage int
	}{
		{1, 10, 1},
		{2, 10, 2},
		{3, 5, 3},
		{4, 0, 4},
	}
	for _, tc := range cases {
		result, err := env.catalog.ListMovies(ctx, domain.MovieListFilter{}, tc.page, 10)
		if err != nil {
			t.Fatalf("list page %d: %v", tc.page, err)
		}
		if len(result.Movies) != tc.wantLen {
			t.Fatalf("page %d: expected %d movies, got %d", tc.page, tc.wantLen, len(result.Movies))
		}
		if result.Page != tc.wantPage || result.Pages != 3 || result.Total != 25 {
			t.Fatalf("page %d: unexpected envelope %+v", tc.page, result)
		}
	}
}

func TestListMoviesDefaultsAndClamping(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		env.addMovie(t, fmt.Sprintf("Defaulted Movie %02d", i))
	}

	// Page and pageSize <= 0 fall back to page 1 / default size.
	result, err := env.catalog.ListMovies(ctx, domain.MovieListFilter{}, 0, -5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Page != 1 || len(result.Movies) != 10 || result.Pages != 2 {
		t.Fatalf("defaults not applied: %+v", result)
	}

	// Oversized pageSize is clamped, not rejected.
	result, err = env.catalog.ListMovies(ctx, domain.MovieListFilter{}, 1, 100000)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Movies) != 12 || result.Pages != 1 {
		t.Fatalf("clamped page size should still return all movies: %+v", result)
	}
}

func TestListMoviesEmptyCatalog(t *testing.T) {
	env := newTestEnv()

	result, err := env.catalog.ListMovies(context.Background(), domain.MovieListFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Movies) != 0 || result.Total != 0 || result.Pages != 1 {
		t.Fatalf("empty catalog should report zero movies with pages=1: %+v", result)
	}
}

func TestListMoviesFilters(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	drama, err := env.catalog.AddMovie(ctx, domain.CreateMovieRequest{
		Title: "Quiet Drama", Genre: []string{"Drama"}, ReleaseYear: 1999,
		Director: "D One", Cast: []string{"A"}, Synopsis: "A slow meditative piece about memory.", PosterURL: "https://example.com/a.jpg",
	})
	if err != nil {
		t.Fatalf("add movie: %v", err)
	}
	scifi, err := env.catalog.AddMovie(ctx, domain.CreateMovieRequest{
		Title: "Loud Sci-Fi", Genre: []string{"Sci-Fi", "Action"}, ReleaseYear: 2020,
		Director: "D Two", Cast: []string{"B"}, Synopsis: "Robots fight in space for two hours.", PosterURL: "https://example.com/b.jpg",
	})
	if err != nil {
		t.Fatalf("add movie: %v", err)
	}
	if err := env.movies.UpdateStats(ctx, scifi.ID, domain.MovieStats{AverageRating: 4.5, ReviewCount: 2}); err != nil {
		t.Fatalf("update stats: %v", err)
	}

	cases := []struct {
		name   string
		filter domain.MovieListFilter
		wantID string
	}{
		{"keyword", domain.MovieListFilter{Keyword: "quiet"}, drama.ID},
		{"genre case-insensitive", domain.MovieListFilter{Genre: "sci-fi"}, scifi.ID},
		{"year", domain.MovieListFilter{Year: 1999}, drama.ID},
		{"min rating", domain.MovieListFilter{MinRating: 4.0}, scifi.ID},
	}
	for _, tc := range cases {
		result, err := env.catalog.ListMovies(ctx, tc.filter, 1, 10)
		if err != nil {
			t.Fatalf("%s: list: %v", tc.name, err)
		}
		if len(result.Movies) != 1 || result.Movies[0].ID != tc.wantID {
			t.Fatalf("%s: expected exactly movie %s, got %+v", tc.name, tc.wantID, result.Movies)
		}
	}

	// A filter matching nothing is an empty page, not an error.
	result, err := env.catalog.ListMovies(ctx, domain.MovieListFilter{Keyword: "nonexistent"}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Movies) != 0 || result.Total != 0 {
		t.Fatalf("expected empty result for unmatched filter, got %+v", result)
	}
}

func TestGetMovieDetailEnrichesUsernames(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	movie := env.addMovie(t, "Detailed Movie")
	alice := env.addUser(t, "alice")

	if _, _, err := env.reviewSvc.CreateReview(ctx, movie.ID, alice.ID, domain.CreateReviewRequest{
		Rating:     ratingPtr(4),
		ReviewText: textPtr("Worth watching more than once"),
	}); err != nil {
		t.Fatalf("create review: %v", err)
	}

	detail, err := env.catalog.GetMovieDetail(ctx, movie.ID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if len(detail.Reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(detail.Reviews))
	}
	if detail.Reviews[0].Username != "alice" {
		t.Fatalf("expected enriched username alice, got %q", detail.Reviews[0].Username)
	}
	if detail.AverageRating != 4.0 || detail.ReviewCount != 1 {
		t.Fatalf("detail aggregate mismatch: avg=%v count=%d", detail.AverageRating, detail.ReviewCount)
	}
}

func TestGetMovieDetailUnknownMovie(t *testing.T) {
	env := newTestEnv()

	_, err := env.catalog.GetMovieDetail(context.Background(), uuid.NewString())
	if !errors.Is(err, store.ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}
}

// stubDetailCache records cache traffic so tests can assert the cache-first
// read path without Redis.
type stubDetailCache struct {
	mu      sync.Mutex
	entries map[string]*domain.MovieDetail
	hits    int
	sets    int
}

func newStubDetailCache() *stubDetailCache {
	return &stubDetailCache{entries: make(map[string]*domain.MovieDetail)}
}

func (c *stubDetailCache) GetDetail(ctx context.Context, movieID string) (*domain.MovieDetail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	detail, ok := c.entries[movieID]
	if ok {
		c.hits++
	}
	return detail, ok
}

func (c *stubDetailCache) SetDetail(ctx context.Context, detail *domain.MovieDetail) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[detail.ID] = detail
	c.sets++
}

func (c *stubDetailCache) Invalidate(ctx context.Context, movieID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, movieID)
}

func TestGetMovieDetailCacheFirst(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	stub := newStubDetailCache()
	catalog := NewCatalogService(env.movies, env.reviews, env.users, stub, testLogger())
	reviewSvc := NewReviewService(env.movies, env.reviews, stub, testLogger())

	movie := env.addMovie(t, "Cached Movie")

	// First read misses and populates; second read hits.
	if _, err := catalog.GetMovieDetail(ctx, movie.ID); err != nil {
		t.Fatalf("first detail read: %v", err)
	}
	if stub.sets != 1 || stub.hits != 0 {
		t.Fatalf("first read should populate the cache: sets=%d hits=%d", stub.sets, stub.hits)
	}
	if _, err := catalog.GetMovieDetail(ctx, movie.ID); err != nil {
		t.Fatalf("second detail read: %v", err)
	}
	if stub.hits != 1 {
		t.Fatalf("second read should hit the cache: hits=%d", stub.hits)
	}

	// A review mutation invalidates, so the next read sees fresh data.
	alice := env.addUser(t, "alice")
	if _, _, err := reviewSvc.CreateReview(ctx, movie.ID, alice.ID, domain.CreateReviewRequest{
		Rating:     ratingPtr(5),
		ReviewText: textPtr("Completely changes the aggregate"),
	}); err != nil {
		t.Fatalf("create review: %v", err)
	}
	detail, err := catalog.GetMovieDetail(ctx, movie.ID)
	if err != nil {
		t.Fatalf("detail after invalidation: %v", err)
	}
	if detail.ReviewCount != 1 || len(detail.Reviews) != 1 {
		t.Fatalf("stale detail served after review mutation: %+v", detail)
	}
}

func TestAddMovieDuplicateTitle(t *testing.T) {
	env := newTestEnv()
	env.addMovie(t, "Unique Title")

	_, err := env.catalog.AddMovie(context.Background(), domain.CreateMovieRequest{
		Title: "Unique Title", Genre: []string{"Drama"}, ReleaseYear: 2000,
		Director: "Someone", Cast: []string{"X"}, Synopsis: "Same title, different movie entirely.", PosterURL: "https://example.com/x.jpg",
	})
	if !errors.Is(err, store.ErrMovieAlreadyExists) {
		t.Fatalf("expected ErrMovieAlreadyExists, got %v", err)
	}
}
