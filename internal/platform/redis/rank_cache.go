// Package redis provides the optional Redis-backed cache used by the ranking
// service. Caching is a read optimization only: every failure path falls
// through to the database.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/pointboard-app/pointboard/internal/domain"
	"github.com/pointboard-app/pointboard/internal/platform/logger"
	"github.com/redis/go-redis/v9"
)

// firstPageKey holds the serialized first page of the ranking list.
const firstPageKey = "pointboard:rank:first"

// RankCache caches the first ranking page in Redis with a short TTL.
// Anchored pages are not cached; their cursor space is too sparse to be
// worth the invalidation traffic.
type RankCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRankCache creates a RankCache talking to the given Redis address.
// If logger is nil, a default logger is used.
func NewRankCache(addr string, ttl time.Duration, log *slog.Logger) *RankCache {
	if log == nil {
		log = slog.Default()
	}

	return &RankCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		logger: log.With(slog.String("component", "rank_cache")),
	}
}

// GetFirstPage returns the cached first page, or ok=false on a miss or any
// Redis failure.
func (c *RankCache) GetFirstPage(ctx context.Context) (*domain.RankPage, bool) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	raw, err := c.client.Get(ctx, firstPageKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn("rank cache read failed",
				slog.String("error", err.Error()))
		}
		return nil, false
	}

	var page domain.RankPage
	if err := json.Unmarshal(raw, &page); err != nil {
		log.Warn("rank cache held malformed payload, dropping it",
			slog.String("error", err.Error()))
		c.Invalidate(ctx)
		return nil, false
	}

	return &page, true
}

// SetFirstPage stores the first page with the configured TTL. Failures are
// logged and swallowed.
func (c *RankCache) SetFirstPage(ctx context.Context, page *domain.RankPage) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	raw, err := json.Marshal(page)
	if err != nil {
		log.Warn("failed to serialize rank page for cache",
			slog.String("error", err.Error()))
		return
	}

	if err := c.client.Set(ctx, firstPageKey, raw, c.ttl).Err(); err != nil {
		log.Warn("rank cache write failed",
			slog.String("error", err.Error()))
	}
}

// Invalidate drops the cached first page.
func (c *RankCache) Invalidate(ctx context.Context) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if err := c.client.Del(ctx, firstPageKey).Err(); err != nil {
		log.Warn("rank cache invalidation failed",
			slog.String("error", err.Error()))
	}
}

// Close releases the underlying Redis connection.
func (c *RankCache) Close() error {
	return c.client.Close()
}
