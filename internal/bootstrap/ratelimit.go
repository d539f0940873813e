package bootstrap

import (
	"fmt"
	"log"

	"github.com/fabianthdev/sidestore-id-backend/internal/config"
	"github.com/fabianthdev/sidestore-id-backend/internal/middleware"
	"github.com/fabianthdev/sidestore-id-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// rateLimitMiddlewares holds rate limiting middlewares for different endpoints
type rateLimitMiddlewares struct {
	login      gin.HandlerFunc
	signup     gin.HandlerFunc
	reviewSign gin.HandlerFunc
}

func noOpMiddleware(c *gin.Context) { c.Next() }

// setupRateLimiting configures rate limiting middlewares based on configuration.
// redisClient is nil unless the redis store is selected.
func setupRateLimiting(
	cfg *config.Config,
	auditService *services.AuditService,
	redisClient *redis.Client,
) (rateLimitMiddlewares, error) {
	if !cfg.EnableRateLimit {
		return rateLimitMiddlewares{
			login:      noOpMiddleware,
			signup:     noOpMiddleware,
			reviewSign: noOpMiddleware,
		}, nil
	}

	log.Printf("Rate limiting enabled (store: %s)", cfg.RateLimitStore)
	storeType := middleware.RateLimitStoreType(cfg.RateLimitStore)

	createLimiter := func(name string, requestsPerMinute int) (gin.HandlerFunc, error) {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{
			Name:              name,
			RequestsPerMinute: requestsPerMinute,
			StoreType:         storeType,
			RedisClient:       redisClient,
			CleanupInterval:   cfg.RateLimitCleanupInterval,
			AuditService:      auditService,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limiter for %s: %w", name, err)
		}
		return limiter, nil
	}

	var (
		limiters rateLimitMiddlewares
		err      error
	)
	if limiters.login, err = createLimiter("login", cfg.LoginRateLimit); err != nil {
		return limiters, err
	}
	if limiters.signup, err = createLimiter("signup", cfg.SignupRateLimit); err != nil {
		return limiters, err
	}
	if limiters.reviewSign, err = createLimiter("review_sign", cfg.ReviewSignRateLimit); err != nil {
		return limiters, err
	}
	return limiters, nil
}
