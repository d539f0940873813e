package signing

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
)

// Sign signs the canonical encoding of p and returns the standard base64
// encoding of the raw signature.
func (k *Keypair) Sign(p *Payload) (string, error) {
	msg, err := p.Canonical()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ed25519.Sign(k.private, msg)), nil
}

// Verify checks that signature is a valid signature of p under public.
func Verify(public ed25519.PublicKey, p *Payload, signature string) error {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	if len(raw) != ed25519.SignatureSize {
		return fmt.Errorf("%w: %d bytes, want %d", ErrMalformedSignature, len(raw), ed25519.SignatureSize)
	}
	if len(public) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: public key has %d bytes", ErrInvalidKey, len(public))
	}

	msg, err := p.Canonical()
	if err != nil {
		return err
	}
	if !ed25519.Verify(public, msg, raw) {
		return ErrSignatureMismatch
	}
	return nil
}
