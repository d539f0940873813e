package signing

import (
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_GeneratesOnFirstBoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "storage")

	kp, generated, err := Acquire(dir)
	require.NoError(t, err)
	assert.True(t, generated)

	privInfo, err := os.Stat(filepath.Join(dir, PrivateKeyFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), privInfo.Mode().Perm())

	pubBytes, err := os.ReadFile(filepath.Join(dir, PublicKeyFile))
	require.NoError(t, err)
	assert.Equal(t, pubBytes, kp.PublicKeyPEM())
	assert.Equal(t, filepath.Join(dir, PublicKeyFile), kp.PublicKeyPath())
	assert.Contains(t, string(pubBytes), "-----BEGIN PUBLIC KEY-----")

	public, err := ParsePublicKeyPEM(pubBytes)
	require.NoError(t, err)
	assert.True(t, public.Equal(kp.PublicKey()))
}

func TestAcquire_ReloadsExistingPair(t *testing.T) {
	dir := t.TempDir()

	first, generated, err := Acquire(dir)
	require.NoError(t, err)
	require.True(t, generated)

	second, generated, err := Acquire(dir)
	require.NoError(t, err)
	assert.False(t, generated)
	assert.True(t, first.PublicKey().Equal(second.PublicKey()))

	payload := testPayload()
	sig1, err := first.Sign(payload)
	require.NoError(t, err)
	sig2, err := second.Sign(payload)
	require.NoError(t, err)
	assert.Equal(t, sig1, sig2)
}

func TestAcquire_RegeneratesHalfPresentPair(t *testing.T) {
	dir := t.TempDir()

	first, _, err := Acquire(dir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, PublicKeyFile)))

	second, generated, err := Acquire(dir)
	require.NoError(t, err)
	assert.True(t, generated)
	assert.False(t, first.PublicKey().Equal(second.PublicKey()))
}

func TestAcquire_CorruptPrivateKeyIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, _, err := Acquire(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, PrivateKeyFile), []byte("garbage"), 0o600))

	kp, _, err := Acquire(dir)
	require.ErrorIs(t, err, ErrInvalidKey)
	assert.Nil(t, kp)
}

func TestAcquire_MismatchedPublicKeyIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, _, err := Acquire(dir)
	require.NoError(t, err)

	other, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	otherPEM, err := EncodePublicKeyPEM(other)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, PublicKeyFile), otherPEM, 0o644))

	_, _, err = Acquire(dir)
	require.ErrorIs(t, err, ErrKeyMismatch)
}

func TestAcquire_UnwritableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	parent := t.TempDir()
	require.NoError(t, os.Chmod(parent, 0o500))
	t.Cleanup(func() { _ = os.Chmod(parent, 0o700) })

	_, _, err := Acquire(filepath.Join(parent, "keys"))
	require.Error(t, err)
}

func TestPEMRoundTrip(t *testing.T) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	privPEM, err := EncodePrivateKeyPEM(private)
	require.NoError(t, err)
	parsedPriv, err := ParsePrivateKeyPEM(privPEM)
	require.NoError(t, err)
	assert.True(t, private.Equal(parsedPriv))

	pubPEM, err := EncodePublicKeyPEM(public)
	require.NoError(t, err)
	parsedPub, err := ParsePublicKeyPEM(pubPEM)
	require.NoError(t, err)
	assert.True(t, public.Equal(parsedPub))

	_, err = ParsePublicKeyPEM(privPEM)
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = ParsePrivateKeyPEM(pubPEM)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestNewKeypair(t *testing.T) {
	_, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	kp, err := NewKeypair(private)
	require.NoError(t, err)
	assert.Empty(t, kp.PublicKeyPath())
	assert.NotEmpty(t, kp.PublicKeyPEM())

	_, err = NewKeypair(private[:10])
	assert.ErrorIs(t, err, ErrInvalidKey)
}
