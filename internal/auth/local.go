package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/fabianthdev/sidestore-id-backend/internal/core"
	"github.com/fabianthdev/sidestore-id-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 8

// LocalAuthProvider handles local database authentication
type LocalAuthProvider struct {
	store core.UserStore
	cost  int
}

// NewLocalAuthProvider creates a new local authentication provider
func NewLocalAuthProvider(s core.UserStore) *LocalAuthProvider {
	return &LocalAuthProvider{store: s, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost (tests use bcrypt.MinCost).
func (p *LocalAuthProvider) WithCost(cost int) *LocalAuthProvider {
	p.cost = cost
	return p
}

// Authenticate verifies credentials against local database
func (p *LocalAuthProvider) Authenticate(
	ctx context.Context,
	email, password string,
) (*models.User, error) {
	user, err := p.store.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(password),
	); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// HashPassword validates and hashes a new password.
func (p *LocalAuthProvider) HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPasswordHashing, err)
	}
	return string(hash), nil
}

// Name returns provider name for logging
func (p *LocalAuthProvider) Name() string {
	return "local"
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
