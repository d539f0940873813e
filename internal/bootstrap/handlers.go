package bootstrap

import (
	"github.com/fabianthdev/sidestore-id-backend/internal/config"
	"github.com/fabianthdev/sidestore-id-backend/internal/handlers"
	"github.com/fabianthdev/sidestore-id-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// handlerSet holds all HTTP handlers
type handlerSet struct {
	auth   *handlers.AuthHandler
	review *handlers.ReviewHandler
	audit  *handlers.AuditHandler

	// Served at OAUTH_AUTHORIZE_PATH behind the auth guard
	authorize gin.HandlerFunc
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	cfg *config.Config,
	userService *services.UserService,
	tokenService *services.TokenService,
	reviewService *services.ReviewService,
	auditService *services.AuditService,
	publicKey handlers.PublicKeySource,
) handlerSet {
	return handlerSet{
		auth:   handlers.NewAuthHandler(userService, tokenService, cfg.IsProduction),
		review: handlers.NewReviewHandler(reviewService, publicKey),
		audit:  handlers.NewAuditHandler(auditService),

		authorize: handlers.AuthorizeNotConfigured,
	}
}
