package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dhanush217/Movie-review/internal/domain"
)

const detailKeyPrefix = "movie:detail:"

// MovieCache is a best-effort Redis cache for movie detail payloads. Cache
// failures degrade to a miss and are logged, never surfaced to the caller;
// the stores remain the source of truth.
type MovieCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewMovieCache(addr, password string, ttl time.Duration, logger *slog.Logger) (*MovieCache, error) {
	if addr == "" {
		return nil, errors.New("redis address cannot be empty")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	return &MovieCache{client: client, ttl: ttl, logger: logger}, nil
}

// Ping verifies connectivity at startup.
func (c *MovieCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *MovieCache) Close() error {
	return c.client.Close()
}

// GetDetail returns the cached detail for a movie, or false on miss.
func (c *MovieCache) GetDetail(ctx context.Context, movieID string) (*domain.MovieDetail, bool) {
	payload, err := c.client.Get(ctx, detailKeyPrefix+movieID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "Movie cache read failed", slog.String("movieID", movieID), slog.String("error", err.Error()))
		}
		return nil, false
	}

	var detail domain.MovieDetail
	if err := json.Unmarshal(payload, &detail); err != nil {
		c.logger.WarnContext(ctx, "Movie cache payload corrupt, dropping entry", slog.String("movieID", movieID), slog.String("error", err.Error()))
		c.Invalidate(ctx, movieID)
		return nil, false
	}
	return &detail, true
}

// SetDetail stores the detail payload with the configured TTL.
func (c *MovieCache) SetDetail(ctx context.Context, detail *domain.MovieDetail) {
	payload, err := json.Marshal(detail)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to marshal movie detail for cache", slog.String("movieID", detail.ID), slog.String("error", err.Error()))
		return
	}
	if err := c.client.Set(ctx, detailKeyPrefix+detail.ID, payload, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "Movie cache write failed", slog.String("movieID", detail.ID), slog.String("error", err.Error()))
	}
}

// Invalidate drops the cached detail for a movie. Called after every review
// mutation so stale aggregates are never served.
func (c *MovieCache) Invalidate(ctx context.Context, movieID string) {
	if err := c.client.Del(ctx, detailKeyPrefix+movieID).Err(); err != nil {
		c.logger.WarnContext(ctx, "Movie cache invalidation failed", slog.String("movieID", movieID), slog.String("error", err.Error()))
	}
}
