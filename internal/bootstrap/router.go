package bootstrap

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/config"
	"github.com/fabianthdev/sidestore-id-backend/internal/core"
	"github.com/fabianthdev/sidestore-id-backend/internal/metrics"
	"github.com/fabianthdev/sidestore-id-backend/internal/middleware"
	"github.com/fabianthdev/sidestore-id-backend/internal/services"
	"github.com/fabianthdev/sidestore-id-backend/internal/store"
	"github.com/fabianthdev/sidestore-id-backend/internal/token"
	"github.com/fabianthdev/sidestore-id-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// API paths the auth guard treats specially
const (
	healthPath    = "/api/health"
	signupPath    = "/api/auth/signup"
	loginPath     = "/api/auth/login"
	refreshPath   = "/api/auth/refresh"
	publicKeyPath = "/api/reviews/public_key"
)

// unprotectedPaths are served without a token. Matching is exact.
var unprotectedPaths = []string{healthPath, signupPath, loginPath, publicKeyPath}

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	h handlerSet,
	verifier middleware.TokenVerifier,
	prometheusMetrics core.Recorder,
	auditService *services.AuditService,
	rateLimitRedisClient *redis.Client,
) *gin.Engine {
	setupGinMode(cfg)
	r := gin.New()

	r.Use(metrics.HTTPMetricsMiddleware(prometheusMetrics))
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(util.IPMiddleware())

	setupMetricsEndpoint(r, cfg)

	rateLimiters, err := setupRateLimiting(cfg, auditService, rateLimitRedisClient)
	if err != nil {
		log.Fatalf("Failed to set up rate limiting: %v", err)
	}

	guard := middleware.NewAuthGuard(middleware.AuthGuardConfig{
		Verifier:         verifier,
		Metrics:          prometheusMetrics,
		UnprotectedPaths: unprotectedPaths,
		RefreshPath:      refreshPath,
		AnonymousPath:    cfg.OAuthAuthorizePath,
	})

	setupAllRoutes(r, db, h, guard, rateLimiters)
	mountAuthorizeRoute(r, cfg.OAuthAuthorizePath, guard, h.authorize)

	logServerStartup(cfg)

	return r
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		log.Printf("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		log.Printf("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		log.Printf("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupAllRoutes configures all application routes. Every /api route runs
// behind the auth guard, which lets the unprotected paths through.
func setupAllRoutes(
	r *gin.Engine,
	db *store.Store,
	h handlerSet,
	guard *middleware.AuthGuard,
	rateLimiters rateLimitMiddlewares,
) {
	full := middleware.RequireScope(token.ScopeFull)
	profile := middleware.RequireScope(token.ScopeProfile)

	api := r.Group("/api", guard.Middleware())

	api.GET("/health", createHealthCheckHandler(db))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", rateLimiters.signup, h.auth.Signup)
		authGroup.POST("/login", rateLimiters.login, h.auth.Login)
		authGroup.POST("/refresh", full, h.auth.Refresh)
		authGroup.POST("/logout", h.auth.Logout)
		authGroup.GET("/me", profile, h.auth.Me)
		authGroup.GET("/activity", profile, h.audit.Activity)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("/public_key", h.review.PublicKey)
		reviews.GET("", full, h.review.List)
		reviews.POST("/sign", full, rateLimiters.reviewSign, h.review.Sign)
		reviews.DELETE("/delete", full, h.review.Delete)
	}
}

// mountAuthorizeRoute serves path behind the guard so that requests without a
// token reach handler as the anonymous principal. Unmatched paths never run
// group middleware, hence the explicit route.
func mountAuthorizeRoute(r *gin.Engine, path string, guard *middleware.AuthGuard, handler gin.HandlerFunc) {
	if path == "" || handler == nil {
		return
	}
	r.Any(path, guard.Middleware(), handler)
}

// healthChecker is the part of the store the health check needs
type healthChecker interface {
	Health(ctx context.Context) error
}

// createHealthCheckHandler reports the current time once the database answers
func createHealthCheckHandler(db healthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":             "service_unavailable",
				"error_description": "Database unavailable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": time.Now().UTC().Format(time.RFC3339)})
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	mode := ginModeMap[cfg.IsProduction]
	gin.SetMode(mode)
	log.Printf("Gin mode: %s", ginModeLogMessage[cfg.IsProduction])
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}

// logServerStartup logs server startup information
func logServerStartup(cfg *config.Config) {
	log.Printf("SideStore ID server starting on %s", cfg.ServerAddr)
	log.Printf("Review public key: %s%s", cfg.BaseURL, publicKeyPath)
	log.Printf("Anonymous authorization path: %s", cfg.OAuthAuthorizePath)
}
