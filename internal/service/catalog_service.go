package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dhanush217/Movie-review/internal/domain"
	"github.com/dhanush217/Movie-review/internal/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// DetailCache serves movie detail lookups. A nil cache disables caching.
type DetailCache interface {
	GetDetail(ctx context.Context, movieID string) (*domain.MovieDetail, bool)
	SetDetail(ctx context.Context, detail *domain.MovieDetail)
}

// CatalogService answers catalog queries and handles privileged catalog
// ingestion.
type CatalogService struct {
	movies  store.MovieStore
	reviews store.ReviewStore
	users   store.UserStore
	cache   DetailCache
	logger  *slog.Logger
}

func NewCatalogService(movies store.MovieStore, reviews store.ReviewStore, users store.UserStore, cache DetailCache, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		movies:  movies,
		reviews: reviews,
		users:   users,
		cache:   cache,
		logger:  logger,
	}
}

// ListMovies returns one page of the catalog under the given filter,
// newest first. Pages are 1-indexed; pages = ceil(total/pageSize), minimum 1.
func (s *CatalogService) ListMovies(ctx context.Context, filter domain.MovieListFilter, page, pageSize int) (*domain.MovieListResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	} else if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	movies, total, err := s.movies.List(ctx, store.MovieListParams{
		Page:     page,
		PageSize: pageSize,
		Filter:   filter,
	})
	if err != nil {
		return nil, err
	}

	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}

	return &domain.MovieListResult{
		Movies: movies,
		Page:   page,
		Pages:  pages,
		Total:  total,
	}, nil
}

// GetMovieDetail returns a movie with its review list populated newest
// first, each review carrying the reviewer's username. The detail cache is
// consulted first when configured.
func (s *CatalogService) GetMovieDetail(ctx context.Context, movieID string) (*domain.MovieDetail, error) {
	if s.cache != nil {
		if detail, ok := s.cache.GetDetail(ctx, movieID); ok {
			return detail, nil
		}
	}

	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByMovieID(ctx, movieID)
	if err != nil {
		return nil, err
	}

	detail := &domain.MovieDetail{Movie: *movie, Reviews: make([]domain.Review, 0, len(reviews))}
	for _, rev := range reviews {
		enriched := *rev
		user, err := s.users.GetByID(ctx, rev.UserID)
		if err != nil {
			// Reviewer lookup failure degrades the display, not the request.
			s.logger.WarnContext(ctx, "Failed to resolve reviewer username",
				slog.String("reviewID", rev.ID), slog.String("userID", rev.UserID), slog.String("error", err.Error()))
		} else {
			enriched.Username = user.Username
		}
		detail.Reviews = append(detail.Reviews, enriched)
	}

	if s.cache != nil {
		s.cache.SetDetail(ctx, detail)
	}
	return detail, nil
}

// AddMovie creates a new catalog entry. Title uniqueness is enforced by the
// store; the new movie starts with an empty aggregate.
func (s *CatalogService) AddMovie(ctx context.Context, req domain.CreateMovieRequest) (*domain.Movie, error) {
	movie := &domain.Movie{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Genre:       req.Genre,
		ReleaseYear: req.ReleaseYear,
		Director:    req.Director,
		Cast:        req.Cast,
		Synopsis:    req.Synopsis,
		PosterURL:   req.PosterURL,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Movie added to catalog", slog.String("movieID", movie.ID), slog.String("title", movie.Title))
	return movie, nil
}
