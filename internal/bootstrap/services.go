package bootstrap

import (
	"github.com/fabianthdev/sidestore-id-backend/internal/auth"
	"github.com/fabianthdev/sidestore-id-backend/internal/config"
	"github.com/fabianthdev/sidestore-id-backend/internal/core"
	"github.com/fabianthdev/sidestore-id-backend/internal/models"
	"github.com/fabianthdev/sidestore-id-backend/internal/services"
	"github.com/fabianthdev/sidestore-id-backend/internal/signing"
	"github.com/fabianthdev/sidestore-id-backend/internal/store"
	"github.com/fabianthdev/sidestore-id-backend/internal/token"
)

// initializeServices creates all business logic services
func initializeServices(
	cfg *config.Config,
	db *store.Store,
	keypair *signing.Keypair,
	tokenProvider *token.LocalProvider,
	userCache core.Cache[models.User],
	auditService *services.AuditService,
	prometheusMetrics core.Recorder,
) (*services.UserService, *services.TokenService, *services.ReviewService) {
	userService := services.NewUserService(
		db,
		auth.NewLocalAuthProvider(db),
		auditService,
		prometheusMetrics,
		userCache,
		cfg.UserCacheTTL,
	)
	tokenService := services.NewTokenService(tokenProvider, auditService, prometheusMetrics)
	reviewService := services.NewReviewService(db, keypair, auditService, prometheusMetrics)

	return userService, tokenService, reviewService
}
