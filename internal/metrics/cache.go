package metrics

import (
	"context"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/core"
)

// CacheWrapper provides a read-through cache for gauge counts.
// It queries the database on cache miss and updates the cache for subsequent requests.
type CacheWrapper struct {
	store core.MetricsStore
	cache core.Cache[int64]
}

// NewCacheWrapper creates a new cache wrapper for metrics.
func NewCacheWrapper(store core.MetricsStore, cache core.Cache[int64]) *CacheWrapper {
	return &CacheWrapper{
		store: store,
		cache: cache,
	}
}

// GetReviewCount retrieves the number of reviews in the given status.
func (m *CacheWrapper) GetReviewCount(
	ctx context.Context,
	status string,
	ttl time.Duration,
) (int64, error) {
	return m.cache.GetWithFetch(
		ctx,
		"reviews:"+status,
		ttl,
		func(ctx context.Context, _ string) (int64, error) {
			return m.store.CountReviewsByStatus(ctx, status)
		},
	)
}
