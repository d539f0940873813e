package core

import (
	"context"
	"time"
)

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Token Operations
	RecordTokenIssued(tokenType string, generationTime time.Duration)
	RecordTokenValidation(result string)

	// Authentication
	RecordAuthAttempt(method string, success bool, duration time.Duration)
	RecordLogout()

	// Review attestations
	RecordReviewSigned(operation, result string, duration time.Duration)

	// Gauge Setters (for periodic updates)
	SetReviewsCount(status string, count int)

	// Database Operations
	RecordDatabaseQueryError(operation string)
}

// MetricsStore defines the DB operations needed by CacheWrapper.
type MetricsStore interface {
	CountReviewsByStatus(ctx context.Context, status string) (int64, error)
}
