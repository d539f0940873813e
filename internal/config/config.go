package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database driver constants
const (
	DatabaseDriverSQLite   = "sqlite"
	DatabaseDriverPostgres = "postgres"
)

// Rate limit store constants
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// Cache backend constants, shared by the user cache and the metrics cache
const (
	CacheTypeMemory     = "memory"
	CacheTypeRedis      = "redis"
	CacheTypeRedisAside = "redis-aside"

	UserCacheTypeMemory     = CacheTypeMemory
	UserCacheTypeRedis      = CacheTypeRedis
	UserCacheTypeRedisAside = CacheTypeRedisAside
)

// Default lifetimes, in seconds, used when JWT_EXPIRATION / JWT_REFRESH_EXPIRATION are unset.
const (
	DefaultJWTExpiration        = 3600
	DefaultJWTRefreshExpiration = 3600 * 24 * 7
)

type Config struct {
	// Server settings
	ServerAddr   string
	BaseURL      string
	IsProduction bool

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string
	DBInitTimeout  time.Duration

	// Review signing key directory
	StoragePath string

	// JWT settings
	JWTSecret              string
	JWTIssuer              string
	JWTExpiration          time.Duration
	RefreshTokenExpiration time.Duration

	// Path of the external OAuth authorization endpoint. Requests to it may
	// proceed without a token as an anonymous profile-scoped principal.
	OAuthAuthorizePath string

	// Metrics
	MetricsEnabled             bool
	MetricsToken               string // Bearer token protecting /metrics (empty = open)
	MetricsGaugeUpdateEnabled  bool
	MetricsGaugeUpdateInterval time.Duration
	MetricsCacheType           string // "memory", "redis" or "redis-aside"
	MetricsCacheClientTTL      time.Duration

	// Rate limiting
	EnableRateLimit          bool
	RateLimitStore           string // "memory" or "redis"
	RateLimitCleanupInterval time.Duration
	LoginRateLimit           int // requests per minute
	SignupRateLimit          int
	ReviewSignRateLimit      int

	// Redis (rate limiting and user cache)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// Ping timeout of the rate limit client
	RedisConnTimeout time.Duration

	// User cache
	UserCacheType      string // "memory", "redis" or "redis-aside"
	UserCacheTTL       time.Duration
	UserCacheClientTTL time.Duration // client-side TTL for redis-aside
	CacheInitTimeout   time.Duration

	// Audit trail
	EnableAuditLogging bool
	AuditLogBufferSize int
	AuditLogRetention  time.Duration
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	driver := getEnv("DATABASE_DRIVER", DatabaseDriverSQLite)
	var dsn string
	if driver == DatabaseDriverSQLite {
		dsn = getEnv("DATABASE_DSN", getEnv("DATABASE_PATH", "sidestore-id.db"))
	} else {
		dsn = getEnv("DATABASE_DSN", getEnv("DATABASE_URL", ""))
	}

	return &Config{
		ServerAddr:   getEnv("SERVER_ADDR", ":8080"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		IsProduction: strings.EqualFold(getEnv("ENVIRONMENT", ""), "production"),

		DatabaseDriver: driver,
		DatabaseDSN:    dsn,
		DBInitTimeout:  getEnvDuration("DB_INIT_TIMEOUT", 30*time.Second),

		StoragePath: getEnv("STORAGE_PATH", "./storage"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", ""),
		JWTExpiration: time.Duration(
			getEnvInt("JWT_EXPIRATION", DefaultJWTExpiration),
		) * time.Second,
		RefreshTokenExpiration: time.Duration(
			getEnvInt("JWT_REFRESH_EXPIRATION", DefaultJWTRefreshExpiration),
		) * time.Second,

		OAuthAuthorizePath: getEnv("OAUTH_AUTHORIZE_PATH", "/api/auth/oauth2/authorize"),

		MetricsEnabled:             getEnvBool("METRICS_ENABLED", false),
		MetricsToken:               getEnv("METRICS_TOKEN", ""),
		MetricsGaugeUpdateEnabled:  getEnvBool("METRICS_GAUGE_UPDATE_ENABLED", true),
		MetricsGaugeUpdateInterval: getEnvDuration("METRICS_GAUGE_UPDATE_INTERVAL", 5*time.Minute),
		MetricsCacheType:           getEnv("METRICS_CACHE_TYPE", CacheTypeMemory),
		MetricsCacheClientTTL:      getEnvDuration("METRICS_CACHE_CLIENT_TTL", 30*time.Second),

		EnableRateLimit:          getEnvBool("ENABLE_RATE_LIMIT", false),
		RateLimitStore:           getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),
		RateLimitCleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		LoginRateLimit:           getEnvInt("LOGIN_RATE_LIMIT", 5),
		SignupRateLimit:          getEnvInt("SIGNUP_RATE_LIMIT", 3),
		ReviewSignRateLimit:      getEnvInt("REVIEW_SIGN_RATE_LIMIT", 30),

		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisConnTimeout: getEnvDuration("REDIS_CONN_TIMEOUT", 5*time.Second),

		UserCacheType:      getEnv("USER_CACHE_TYPE", UserCacheTypeMemory),
		UserCacheTTL:       getEnvDuration("USER_CACHE_TTL", 5*time.Minute),
		UserCacheClientTTL: getEnvDuration("USER_CACHE_CLIENT_TTL", 30*time.Second),
		CacheInitTimeout:   getEnvDuration("CACHE_INIT_TIMEOUT", 5*time.Second),

		EnableAuditLogging: getEnvBool("ENABLE_AUDIT_LOGGING", true),
		AuditLogBufferSize: getEnvInt("AUDIT_LOG_BUFFER_SIZE", 1000),
		AuditLogRetention:  getEnvDuration("AUDIT_LOG_RETENTION", 90*24*time.Hour),
	}
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.JWTIssuer == "" {
		return errors.New("JWT_ISSUER must be set")
	}
	if c.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive, got %s", c.JWTExpiration)
	}
	if c.RefreshTokenExpiration <= 0 {
		return fmt.Errorf(
			"JWT_REFRESH_EXPIRATION must be positive, got %s",
			c.RefreshTokenExpiration,
		)
	}
	if c.StoragePath == "" {
		return errors.New("STORAGE_PATH must be set")
	}

	switch c.DatabaseDriver {
	case DatabaseDriverSQLite, DatabaseDriverPostgres:
	default:
		return fmt.Errorf(
			"invalid DATABASE_DRIVER value: %q (must be %q or %q)",
			c.DatabaseDriver, DatabaseDriverSQLite, DatabaseDriverPostgres,
		)
	}

	switch c.RateLimitStore {
	case RateLimitStoreMemory:
	case RateLimitStoreRedis:
		if c.EnableRateLimit && c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when RATE_LIMIT_STORE=redis")
		}
	default:
		return fmt.Errorf(
			"invalid RATE_LIMIT_STORE value: %q (must be %q or %q)",
			c.RateLimitStore, RateLimitStoreMemory, RateLimitStoreRedis,
		)
	}

	if err := c.validateCacheType("USER_CACHE_TYPE", c.UserCacheType); err != nil {
		return err
	}
	if c.UserCacheTTL <= 0 {
		return fmt.Errorf("USER_CACHE_TTL must be positive, got %s", c.UserCacheTTL)
	}
	if c.UserCacheType == CacheTypeRedisAside && c.UserCacheClientTTL <= 0 {
		return fmt.Errorf("USER_CACHE_CLIENT_TTL must be positive, got %s", c.UserCacheClientTTL)
	}

	if c.EnableAuditLogging && c.AuditLogBufferSize <= 0 {
		return fmt.Errorf("AUDIT_LOG_BUFFER_SIZE must be positive, got %d", c.AuditLogBufferSize)
	}

	if c.MetricsEnabled && c.MetricsGaugeUpdateEnabled {
		if err := c.validateCacheType("METRICS_CACHE_TYPE", c.MetricsCacheType); err != nil {
			return err
		}
		if c.MetricsGaugeUpdateInterval <= 0 {
			return fmt.Errorf(
				"METRICS_GAUGE_UPDATE_INTERVAL must be positive, got %s",
				c.MetricsGaugeUpdateInterval,
			)
		}
	}

	return nil
}

func (c *Config) validateCacheType(key, value string) error {
	switch value {
	case CacheTypeMemory:
		return nil
	case CacheTypeRedis, CacheTypeRedisAside:
		if c.RedisAddr == "" {
			return fmt.Errorf("%s=%q requires REDIS_ADDR", key, value)
		}
		return nil
	default:
		return fmt.Errorf(
			"invalid %s value: %q (must be %q, %q or %q)",
			key, value, CacheTypeMemory, CacheTypeRedis, CacheTypeRedisAside,
		)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
