package token

import (
	"fmt"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// LocalProvider issues and decodes HS256 tokens with the configured secret.
type LocalProvider struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewLocalProvider creates a new local token provider
func NewLocalProvider(cfg *config.Config) *LocalProvider {
	return &LocalProvider{
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.JWTIssuer,
		accessTTL:  cfg.JWTExpiration,
		refreshTTL: cfg.RefreshTokenExpiration,
		now:        time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (p *LocalProvider) WithClock(now func() time.Time) *LocalProvider {
	p.now = now
	return p
}

func (p *LocalProvider) ttl(typ Type) time.Duration {
	if typ == TypeRefresh {
		return p.refreshTTL
	}
	return p.accessTTL
}

// Issue signs a new token for subject.
func (p *LocalProvider) Issue(subject string, typ Type, scope Scope, fresh bool) (*Result, error) {
	now := p.now()
	expiresAt := now.Add(p.ttl(typ))

	claims := &Claims{
		Type:  typ,
		Fresh: fresh,
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &Result{
		TokenString: tokenString,
		TokenType:   TokenTypeBearer,
		ExpiresAt:   claims.ExpiresAt.Time,
		Claims:      claims,
	}, nil
}

// IssuePair issues a fresh access token and a refresh token with the same scope.
func (p *LocalProvider) IssuePair(subject string, scope Scope) (*Pair, error) {
	access, err := p.Issue(subject, TypeAccess, scope, true)
	if err != nil {
		return nil, err
	}
	refresh, err := p.Issue(subject, TypeRefresh, scope, false)
	if err != nil {
		return nil, err
	}
	return &Pair{Access: access, Refresh: refresh}, nil
}

// Verify checks the signature and structure of tokenString and returns its
// claims. Expiry and type are not checked here; see Validate.
func (p *LocalProvider) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(*jwt.Token) (any, error) { return p.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// Name returns provider name for logging
func (p *LocalProvider) Name() string {
	return "local"
}
