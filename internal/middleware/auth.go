package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/core"
	"github.com/fabianthdev/sidestore-id-backend/internal/token"
	"github.com/fabianthdev/sidestore-id-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const principalKey = "principal"

// Token validation results reported to metrics
const (
	validationValid       = "valid"
	validationMissing     = "missing"
	validationInvalid     = "invalid"
	validationExpired     = "expired"
	validationNotYetValid = "not_yet_valid"
	validationAnonymous   = "anonymous"
)

var ErrMissingToken = errors.New("missing bearer token")

// Principal is the identity and scope resolved for one request
type Principal struct {
	UserID string
	Scope  token.Scope
}

// TokenVerifier decodes a token and checks its signature
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// AuthGuardConfig configures the path policy of the guard
type AuthGuardConfig struct {
	Verifier TokenVerifier
	Metrics  core.Recorder

	// Paths served without a token, matched exactly
	UnprotectedPaths []string
	// The only path that accepts refresh tokens
	RefreshPath string
	// Path that may proceed as an anonymous profile-scoped principal when
	// the request carries no token at all
	AnonymousPath string

	Now func() time.Time
}

// AuthGuard resolves a Principal for every request before any handler runs
type AuthGuard struct {
	verifier    TokenVerifier
	metrics     core.Recorder
	unprotected map[string]struct{}
	refreshPath string
	anonymous   string
	now         func() time.Time
}

func NewAuthGuard(cfg AuthGuardConfig) *AuthGuard {
	unprotected := make(map[string]struct{}, len(cfg.UnprotectedPaths))
	for _, p := range cfg.UnprotectedPaths {
		unprotected[p] = struct{}{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &AuthGuard{
		verifier:    cfg.Verifier,
		metrics:     cfg.Metrics,
		unprotected: unprotected,
		refreshPath: cfg.RefreshPath,
		anonymous:   cfg.AnonymousPath,
		now:         now,
	}
}

// ExpectedType returns the token type accepted on path
func (g *AuthGuard) ExpectedType(path string) token.Type {
	if path == g.refreshPath {
		return token.TypeRefresh
	}
	return token.TypeAccess
}

// Authenticate resolves the Principal of r or returns why it cannot
func (g *AuthGuard) Authenticate(r *http.Request) (*Principal, error) {
	path := r.URL.Path
	if _, ok := g.unprotected[path]; ok {
		return &Principal{UserID: uuid.Nil.String(), Scope: token.ScopeFull}, nil
	}

	expected := g.ExpectedType(path)
	tokenString, ok := ExtractToken(r, expected)
	if !ok {
		if g.anonymous != "" && path == g.anonymous && r.Header.Get("Authorization") == "" {
			g.record(validationAnonymous)
			return &Principal{UserID: uuid.Nil.String(), Scope: token.ScopeProfile}, nil
		}
		g.record(validationMissing)
		return nil, ErrMissingToken
	}

	claims, err := g.verifier.Verify(tokenString)
	if err != nil {
		g.record(validationInvalid)
		return nil, err
	}

	if err := token.Validate(claims, expected, g.now()); err != nil {
		switch {
		case errors.Is(err, token.ErrExpiredToken):
			g.record(validationExpired)
		case errors.Is(err, token.ErrTokenNotYetValid):
			g.record(validationNotYetValid)
		default:
			g.record(validationInvalid)
		}
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		g.record(validationInvalid)
		return nil, token.ErrInvalidToken
	}

	g.record(validationValid)
	return &Principal{UserID: userID.String(), Scope: claims.Scope}, nil
}

func (g *AuthGuard) record(result string) {
	if g.metrics != nil {
		g.metrics.RecordTokenValidation(result)
	}
}

// Middleware runs Authenticate and stores the Principal on the request
func (g *AuthGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := g.Authenticate(c.Request)
		if err != nil {
			abortUnauthorized(c, describeAuthError(err))
			return
		}

		c.Set(principalKey, principal)
		c.Request = c.Request.WithContext(util.WithUserID(c.Request.Context(), principal.UserID))
		c.Next()
	}
}

// GetPrincipal returns the Principal stored by the guard
func GetPrincipal(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}

func describeAuthError(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "Authorization header not found"
	case errors.Is(err, token.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, token.ErrTokenNotYetValid):
		return "Token used before issued"
	default:
		return "Invalid token"
	}
}

func abortUnauthorized(c *gin.Context, description string) {
	c.Header("WWW-Authenticate", `Bearer realm="SideStore ID"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":             "unauthorized",
		"error_description": description,
	})
}
