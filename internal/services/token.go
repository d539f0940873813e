package services

import (
	"context"
	"log"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/core"
	"github.com/fabianthdev/sidestore-id-backend/internal/models"
	"github.com/fabianthdev/sidestore-id-backend/internal/token"
)

type TokenService struct {
	provider     *token.LocalProvider
	auditService *AuditService
	metrics      core.Recorder
}

func NewTokenService(
	provider *token.LocalProvider,
	auditService *AuditService,
	m core.Recorder,
) *TokenService {
	return &TokenService{
		provider:     provider,
		auditService: auditService,
		metrics:      m,
	}
}

// IssuePair issues an access and refresh token for a user
func (s *TokenService) IssuePair(userID string, scope token.Scope) (*token.Pair, error) {
	start := time.Now()
	pair, err := s.provider.IssuePair(userID, scope)
	if err != nil {
		log.Printf("[Token] Issue failed provider=%s user=%s: %v", s.provider.Name(), userID, err)
		return nil, err
	}

	// Both tokens are signed in one call, split the time between them
	half := time.Since(start) / 2
	s.metrics.RecordTokenIssued(string(token.TypeAccess), half)
	s.metrics.RecordTokenIssued(string(token.TypeRefresh), half)
	return pair, nil
}

// Refresh re-issues both tokens for the holder of a valid refresh token
func (s *TokenService) Refresh(ctx context.Context, userID string, scope token.Scope) (*token.Pair, error) {
	pair, err := s.IssuePair(userID, scope)
	if err != nil {
		return nil, err
	}

	s.auditService.Log(ctx, AuditLogEntry{
		EventType:    models.EventTokenRefreshed,
		ActorUserID:  userID,
		ResourceType: models.ResourceToken,
		ResourceID:   userID,
		Action:       "Tokens refreshed",
		Details:      models.AuditDetails{"scope": scope.String()},
		Success:      true,
	})
	return pair, nil
}

// Logout records the logout; tokens are stateless and expire on their own
func (s *TokenService) Logout(ctx context.Context, userID string) {
	s.metrics.RecordLogout()
	if userID == "" {
		return
	}
	s.auditService.Log(ctx, AuditLogEntry{
		EventType:    models.EventLogout,
		ActorUserID:  userID,
		ResourceType: models.ResourceUser,
		ResourceID:   userID,
		Action:       "Logout",
		Success:      true,
	})
}
