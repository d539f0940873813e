package token

import (
	"strings"
	"testing"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider() *LocalProvider {
	return NewLocalProvider(&config.Config{
		JWTSecret:              "test-secret-key-for-jwt-signing",
		JWTIssuer:              "sidestore.test",
		JWTExpiration:          time.Hour,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
	})
}

func TestLocalProvider_IssueVerifyRoundTrip(t *testing.T) {
	provider := newTestProvider()

	tests := []struct {
		name  string
		typ   Type
		scope Scope
		ttl   time.Duration
	}{
		{"access full", TypeAccess, ScopeFull, time.Hour},
		{"access profile", TypeAccess, ScopeProfile, time.Hour},
		{"refresh full", TypeRefresh, ScopeFull, 7 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := provider.Issue("user-123", tt.typ, tt.scope, true)
			require.NoError(t, err)
			assert.Equal(t, TokenTypeBearer, result.TokenType)
			assert.WithinDuration(t, time.Now().Add(tt.ttl), result.ExpiresAt, 5*time.Second)

			claims, err := provider.Verify(result.TokenString)
			require.NoError(t, err)
			assert.Equal(t, "user-123", claims.Subject)
			assert.Equal(t, tt.typ, claims.Type)
			assert.Equal(t, tt.scope, claims.Scope)
			assert.Equal(t, "sidestore.test", claims.Issuer)
			assert.True(t, claims.Fresh)
			assert.False(t, claims.ExpiresAt.Before(claims.IssuedAt.Time))
		})
	}
}

func TestLocalProvider_IssuePair(t *testing.T) {
	provider := newTestProvider()

	pair, err := provider.IssuePair("user-123", ScopeFull)
	require.NoError(t, err)

	access, err := provider.Verify(pair.Access.TokenString)
	require.NoError(t, err)
	assert.Equal(t, TypeAccess, access.Type)
	assert.True(t, access.Fresh)

	refresh, err := provider.Verify(pair.Refresh.TokenString)
	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, refresh.Type)
	assert.False(t, refresh.Fresh)
	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))
}

func TestLocalProvider_VerifyDoesNotCheckExpiry(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	provider := newTestProvider().WithClock(func() time.Time { return past })

	result, err := provider.Issue("user-123", TypeAccess, ScopeFull, false)
	require.NoError(t, err)

	claims, err := provider.Verify(result.TokenString)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Before(time.Now()))
}

func TestLocalProvider_VerifyRejects(t *testing.T) {
	provider := newTestProvider()
	valid, err := provider.Issue("user-123", TypeAccess, ScopeFull, false)
	require.NoError(t, err)

	claims := &Claims{
		Type:  TypeAccess,
		Scope: ScopeFull,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("another-secret"))
	require.NoError(t, err)

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).
		SignedString([]byte("test-secret-key-for-jwt-signing"))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	parts := strings.Split(valid.TokenString, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := map[string]string{
		"garbage":      "not-a-token",
		"empty":        "",
		"other secret": otherSecret,
		"hs512":        wrongAlg,
		"alg none":     noneAlg,
		"tampered":     tampered,
	}

	for name, tokenString := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := provider.Verify(tokenString)
			require.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
