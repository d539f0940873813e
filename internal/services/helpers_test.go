package services

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/metrics"
	"github.com/fabianthdev/sidestore-id-backend/internal/signing"
	"github.com/fabianthdev/sidestore-id-backend/internal/store"

	"github.com/stretchr/testify/require"
)

// setupTestStore opens a fresh in-memory SQLite store
func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestKeypair(t *testing.T) *signing.Keypair {
	t.Helper()
	_, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	kp, err := signing.NewKeypair(private)
	require.NoError(t, err)
	return kp
}

func disabledAudit() *AuditService {
	return NewAuditService(nil, false, 0)
}

// fixedClock returns a clock that reads the value of *now on every call
func fixedClock(now *time.Time) func() time.Time {
	return func() time.Time { return *now }
}

func newTestReviewService(t *testing.T) (*ReviewService, *store.Store, *signing.Keypair) {
	t.Helper()
	db := setupTestStore(t)
	kp := newTestKeypair(t)
	return NewReviewService(db, kp, disabledAudit(), metrics.NewNoopMetrics()), db, kp
}
