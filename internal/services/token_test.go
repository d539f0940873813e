package services

import (
	"context"
	"testing"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/config"
	"github.com/fabianthdev/sidestore-id-backend/internal/metrics"
	"github.com/fabianthdev/sidestore-id-backend/internal/mocks"
	"github.com/fabianthdev/sidestore-id-backend/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestTokenProvider() *token.LocalProvider {
	return token.NewLocalProvider(&config.Config{
		JWTSecret:              "test-secret-at-least-32-bytes-long!!",
		JWTIssuer:              "https://id.example.com",
		JWTExpiration:          time.Hour,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
	})
}

func TestTokenService_IssuePair(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockRecorder(ctrl)
	recorder.EXPECT().RecordTokenIssued("access", gomock.Any())
	recorder.EXPECT().RecordTokenIssued("refresh", gomock.Any())

	provider := newTestTokenProvider()
	svc := NewTokenService(provider, disabledAudit(), recorder)

	pair, err := svc.IssuePair("user-1", token.ScopeFull)
	require.NoError(t, err)

	access, err := provider.Verify(pair.Access.TokenString)
	require.NoError(t, err)
	assert.Equal(t, token.TypeAccess, access.Type)
	assert.Equal(t, token.ScopeFull, access.Scope)
	assert.Equal(t, "user-1", access.Subject)

	refresh, err := provider.Verify(pair.Refresh.TokenString)
	require.NoError(t, err)
	assert.Equal(t, token.TypeRefresh, refresh.Type)
	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))
}

func TestTokenService_RefreshAndLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockRecorder(ctrl)
	recorder.EXPECT().RecordTokenIssued(gomock.Any(), gomock.Any()).Times(2)
	recorder.EXPECT().RecordLogout().Times(2)

	svc := NewTokenService(newTestTokenProvider(), disabledAudit(), recorder)

	pair, err := svc.Refresh(context.Background(), "user-1", token.ScopeProfile)
	require.NoError(t, err)
	assert.Equal(t, token.ScopeProfile, pair.Access.Claims.Scope)

	svc.Logout(context.Background(), "user-1")
	svc.Logout(context.Background(), "")
}

func TestTokenService_NoopMetrics(t *testing.T) {
	svc := NewTokenService(newTestTokenProvider(), disabledAudit(), metrics.NewNoopMetrics())
	_, err := svc.IssuePair("user-1", token.ScopeFull)
	assert.NoError(t, err)
}
