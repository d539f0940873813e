package token

import (
	"fmt"
	"time"
)

// Validate applies the claim-content checks to already verified claims:
// the token type must be expected, now must be before the expiry and the
// issue time must not lie in the future.
func Validate(claims *Claims, expected Type, now time.Time) error {
	if claims == nil {
		return ErrInvalidToken
	}
	if claims.Type != expected {
		return fmt.Errorf("%w: expected %s token, got %q", ErrInvalidToken, expected, claims.Type)
	}
	if !claims.Scope.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidScope, claims.Scope)
	}
	if claims.ExpiresAt == nil || !now.Before(claims.ExpiresAt.Time) {
		return ErrExpiredToken
	}
	if claims.IssuedAt == nil {
		return fmt.Errorf("%w: missing iat", ErrInvalidToken)
	}
	if claims.IssuedAt.After(now) {
		return ErrTokenNotYetValid
	}
	return nil
}
