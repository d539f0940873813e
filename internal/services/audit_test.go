package services

import (
	"context"
	"testing"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/models"
	"github.com/fabianthdev/sidestore-id-backend/internal/store"
	"github.com/fabianthdev/sidestore-id-backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_FlushOnShutdown(t *testing.T) {
	db := setupTestStore(t)
	svc := NewAuditService(db, true, 10)
	ctx := util.SetIPContext(context.Background(), "203.0.113.7")

	for range 3 {
		svc.Log(ctx, AuditLogEntry{
			EventType:    models.EventAuthenticationSuccess,
			ActorUserID:  "user-1",
			ResourceType: models.ResourceUser,
			ResourceID:   "user-1",
			Action:       "Login",
			Success:      true,
		})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(shutdownCtx))
	// A second shutdown is harmless
	require.NoError(t, svc.Shutdown(shutdownCtx))

	logs, meta, err := svc.GetUserActivity(
		context.Background(),
		"user-1",
		store.NewPaginationParams(1, 10, ""),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(3), meta.Total)
	require.Len(t, logs, 3)
	assert.Equal(t, "203.0.113.7", logs[0].ActorIP)
	assert.Equal(t, models.SeverityInfo, logs[0].Severity)
}

func TestAuditService_LogSync(t *testing.T) {
	db := setupTestStore(t)
	svc := NewAuditService(db, true, 10)
	t.Cleanup(func() { _ = svc.Shutdown(context.Background()) })

	ctx := util.WithUserID(context.Background(), "user-2")
	require.NoError(t, svc.LogSync(ctx, AuditLogEntry{
		EventType:    models.EventReviewWithdrawn,
		ResourceType: models.ResourceReview,
		Action:       "Review withdrawn",
		Success:      true,
	}))

	logs, _, err := svc.GetUserActivity(ctx, "user-2", store.NewPaginationParams(1, 10, ""))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.EventReviewWithdrawn, logs[0].EventType)
}

func TestAuditService_Disabled(t *testing.T) {
	svc := disabledAudit()
	ctx := context.Background()

	svc.Log(ctx, AuditLogEntry{EventType: models.EventLogout, Action: "Logout"})
	assert.NoError(t, svc.LogSync(ctx, AuditLogEntry{EventType: models.EventLogout}))
	assert.NoError(t, svc.Shutdown(ctx))
}

func TestAuditService_CleanupOldLogs(t *testing.T) {
	db := setupTestStore(t)
	svc := NewAuditService(db, true, 10)
	t.Cleanup(func() { _ = svc.Shutdown(context.Background()) })
	ctx := context.Background()

	require.NoError(t, svc.LogSync(ctx, AuditLogEntry{
		EventType:   models.EventSignup,
		ActorUserID: "user-3",
		Action:      "Account created",
		Success:     true,
	}))

	deleted, err := svc.CleanupOldLogs(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, deleted, "recent entries are kept")

	deleted, err = svc.CleanupOldLogs(ctx, -time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestMaskSensitiveDetails(t *testing.T) {
	masked := maskSensitiveDetails(models.AuditDetails{
		"password":      "hunter22",
		"refresh_token": "eyJhbGciOi",
		"signature":     "MEUCIQDx1234567890abcdef==",
		"source_id":     "io.example.App",
	})

	assert.Equal(t, "***REDACTED***", masked["password"])
	assert.Equal(t, "***REDACTED***", masked["refresh_token"])
	assert.Equal(t, "MEUCIQDx...ef==", masked["signature"])
	assert.Equal(t, "io.example.App", masked["source_id"])
	assert.Nil(t, maskSensitiveDetails(nil))
}
