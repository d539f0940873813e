package token

import "errors"

var (
	// ErrTokenGeneration indicates token generation failed
	ErrTokenGeneration = errors.New("failed to generate token")

	// ErrInvalidToken indicates the token is malformed, badly signed or of the wrong type
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenNotYetValid indicates the token was issued in the future
	ErrTokenNotYetValid = errors.New("token not yet valid")

	// ErrInvalidScope indicates the token carries a scope this server does not know
	ErrInvalidScope = errors.New("invalid scope")
)
