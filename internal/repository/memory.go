package repository

import (
	"context"
	"sync"
	"time"

	"shareit/internal/models"
)

type MemorySearchCache struct {
	searches   sync.Map
	rateLimits sync.Map
	ttl        time.Duration
}

type searchEntry struct {
	items     []models.ItemDto
	expiresAt time.Time
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func NewMemorySearchCache(ttl time.Duration) *MemorySearchCache {
	return &MemorySearchCache{
		ttl: ttl,
	}
}

func (r *MemorySearchCache) GetSearch(ctx context.Context, query string) ([]models.ItemDto, bool, error) {
	val, ok := r.searches.Load(query)
	if !ok {
		return nil, false, nil
	}
	entry := val.(*searchEntry)
	if time.Now().After(entry.expiresAt) {
		r.searches.Delete(query)
		return nil, false, nil
	}
	return entry.items, true, nil
}

func (r *MemorySearchCache) SetSearch(ctx context.Context, query string, items []models.ItemDto) error {
	r.searches.Store(query, &searchEntry{items: items, expiresAt: time.Now().Add(r.ttl)})
	return nil
}

func (r *MemorySearchCache) InvalidateSearch(ctx context.Context) error {
	r.searches.Range(func(key, _ any) bool {
		r.searches.Delete(key)
		return true
	})
	return nil
}

func (r *MemorySearchCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := r.rateLimits.Load(key)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}
	r.rateLimits.Store(key, entry)

	return entry.count <= limit, nil
}
