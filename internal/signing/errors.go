package signing

import "errors"

var (
	// ErrSignatureMismatch indicates the signature does not cover the payload
	ErrSignatureMismatch = errors.New("signature does not match payload")

	// ErrMalformedSignature indicates the signature is not valid base64 of the right length
	ErrMalformedSignature = errors.New("malformed signature")

	// ErrInvalidKey indicates a PEM artifact did not hold an Ed25519 key
	ErrInvalidKey = errors.New("invalid signing key")

	// ErrKeyMismatch indicates the stored public key does not belong to the stored private key
	ErrKeyMismatch = errors.New("public key does not match private key")
)
