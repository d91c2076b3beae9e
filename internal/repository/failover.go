package repository

import (
	"context"
	"sync/atomic"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// FailoverSearchCache serves from the primary cache until it fails, then
// falls back to the in-memory cache and retries the primary once a minute.
type FailoverSearchCache struct {
	primary   domain.SearchCache
	fallback  domain.SearchCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverSearchCache(primary, fallback domain.SearchCache, logger *zerolog.Logger) *FailoverSearchCache {
	return &FailoverSearchCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverSearchCache) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary search cache failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck = time.Now()
}

func (r *FailoverSearchCache) GetSearch(ctx context.Context, query string) ([]models.ItemDto, bool, error) {
	if !r.isDown.Load() {
		items, found, err := r.primary.GetSearch(ctx, query)
		if err == nil {
			return items, found, nil
		}
		r.markDown(err)
	}

	// Try to recover after 1 minute
	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		items, found, err := r.primary.GetSearch(ctx, query)
		if err == nil {
			r.isDown.Store(false)
			return items, found, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.GetSearch(ctx, query)
}

func (r *FailoverSearchCache) SetSearch(ctx context.Context, query string, items []models.ItemDto) error {
	if !r.isDown.Load() {
		err := r.primary.SetSearch(ctx, query, items)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.SetSearch(ctx, query, items)
}

func (r *FailoverSearchCache) InvalidateSearch(ctx context.Context) error {
	// Both caches may hold stale entries after a failover window.
	if !r.isDown.Load() {
		if err := r.primary.InvalidateSearch(ctx); err != nil {
			r.markDown(err)
		}
	}

	return r.fallback.InvalidateSearch(ctx)
}

func (r *FailoverSearchCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, key, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.markDown(err)
	}

	return r.fallback.CheckRateLimit(ctx, key, limit, window)
}
