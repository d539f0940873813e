package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/cache"
	"github.com/fabianthdev/sidestore-id-backend/internal/config"
	"github.com/fabianthdev/sidestore-id-backend/internal/core"
	"github.com/fabianthdev/sidestore-id-backend/internal/metrics"
	"github.com/fabianthdev/sidestore-id-backend/internal/models"
)

const (
	metricsCachePrefix = "sidestore-id:metrics:"
	userCachePrefix    = "sidestore-id:users:"
)

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config) core.Recorder {
	prometheusMetrics := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		log.Println("Prometheus metrics initialized")
	} else {
		log.Println("Metrics disabled (using noop implementation)")
	}
	return prometheusMetrics
}

// newCache builds a cache of the configured backend type
func newCache[T any](
	ctx context.Context,
	cfg *config.Config,
	name, cacheType, prefix string,
	clientTTL time.Duration,
) (core.Cache[T], error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.CacheInitTimeout)
	defer cancel()

	switch cacheType {
	case config.CacheTypeRedisAside:
		c, err := cache.NewRueidisAsideCache[T](
			ctx,
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			prefix,
			clientTTL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis-aside %s cache: %w", name, err)
		}
		log.Printf(
			"%s cache: redis-aside (addr=%s, db=%d, client_ttl=%s)",
			name, cfg.RedisAddr, cfg.RedisDB, clientTTL,
		)
		return c, nil

	case config.CacheTypeRedis:
		c, err := cache.NewRueidisCache[T](
			ctx,
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			prefix,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis %s cache: %w", name, err)
		}
		log.Printf("%s cache: redis (addr=%s, db=%d)", name, cfg.RedisAddr, cfg.RedisDB)
		return c, nil

	default: // memory
		log.Printf("%s cache: memory (single instance only)", name)
		return cache.NewMemoryCache[T](), nil
	}
}

// initializeMetricsCache initializes the cache behind the review gauges.
// It returns nils when the gauges are not updated.
func initializeMetricsCache(
	ctx context.Context,
	cfg *config.Config,
) (core.Cache[int64], func() error, error) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled {
		return nil, nil, nil
	}

	c, err := newCache[int64](
		ctx, cfg, "Metrics", cfg.MetricsCacheType, metricsCachePrefix, cfg.MetricsCacheClientTTL,
	)
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}

// initializeUserCache initializes the user cache (always enabled, defaults to memory)
func initializeUserCache(
	ctx context.Context,
	cfg *config.Config,
) (core.Cache[models.User], func() error, error) {
	c, err := newCache[models.User](
		ctx, cfg, "User", cfg.UserCacheType, userCachePrefix, cfg.UserCacheClientTTL,
	)
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}
