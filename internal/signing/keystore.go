package signing

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	PrivateKeyFile = "reviews_private_key.pem"
	PublicKeyFile  = "reviews_public_key.pem"

	pemTypePrivate = "PRIVATE KEY"
	pemTypePublic  = "PUBLIC KEY"
)

// Keypair is the review signing identity. It is immutable after Acquire and
// safe for concurrent use.
type Keypair struct {
	private    ed25519.PrivateKey
	public     ed25519.PublicKey
	publicPEM  []byte
	publicPath string
}

// PublicKey returns the verification half of the pair.
func (k *Keypair) PublicKey() ed25519.PublicKey {
	return k.public
}

// PublicKeyPEM returns the distributed public key file contents.
func (k *Keypair) PublicKeyPEM() []byte {
	return k.publicPEM
}

// PublicKeyPath returns the on-disk location of the public key file.
func (k *Keypair) PublicKeyPath() string {
	return k.publicPath
}

// NewKeypair wraps an existing private key. The public key file path is left
// empty; use Acquire for a disk-backed pair.
func NewKeypair(private ed25519.PrivateKey) (*Keypair, error) {
	if len(private) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: private key has %d bytes, want %d",
			ErrInvalidKey, len(private), ed25519.PrivateKeySize)
	}
	public := private.Public().(ed25519.PublicKey)
	publicPEM, err := EncodePublicKeyPEM(public)
	if err != nil {
		return nil, err
	}
	return &Keypair{private: private, public: public, publicPEM: publicPEM}, nil
}

// Acquire loads the keypair stored under dir, or generates and saves a new
// one when either file is missing. The returned bool reports whether a new
// pair was generated. Any other failure is returned unchanged and must stop
// the process from serving.
func Acquire(dir string) (*Keypair, bool, error) {
	privatePath := filepath.Join(dir, PrivateKeyFile)
	publicPath := filepath.Join(dir, PublicKeyFile)

	havePrivate, err := fileExists(privatePath)
	if err != nil {
		return nil, false, err
	}
	havePublic, err := fileExists(publicPath)
	if err != nil {
		return nil, false, err
	}

	if havePrivate && havePublic {
		kp, err := load(privatePath, publicPath)
		if err != nil {
			return nil, false, err
		}
		return kp, false, nil
	}

	kp, err := generate(dir, privatePath, publicPath)
	if err != nil {
		return nil, false, err
	}
	return kp, true, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}

func load(privatePath, publicPath string) (*Keypair, error) {
	privateBytes, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}
	private, err := ParsePrivateKeyPEM(privateBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", privatePath, err)
	}

	publicBytes, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("reading public key: %w", err)
	}
	public, err := ParsePublicKeyPEM(publicBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", publicPath, err)
	}

	if !public.Equal(private.Public()) {
		return nil, fmt.Errorf("%w: %s", ErrKeyMismatch, publicPath)
	}

	return &Keypair{
		private:    private,
		public:     public,
		publicPEM:  publicBytes,
		publicPath: publicPath,
	}, nil
}

func generate(dir, privatePath, publicPath string) (*Keypair, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating Ed25519 keypair: %w", err)
	}

	privatePEM, err := EncodePrivateKeyPEM(private)
	if err != nil {
		return nil, err
	}
	publicPEM, err := EncodePublicKeyPEM(public)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating key directory: %w", err)
	}
	if err := os.WriteFile(privatePath, privatePEM, 0o600); err != nil {
		return nil, fmt.Errorf("writing private key: %w", err)
	}
	if err := os.WriteFile(publicPath, publicPEM, 0o644); err != nil {
		return nil, fmt.Errorf("writing public key: %w", err)
	}

	return &Keypair{
		private:    private,
		public:     public,
		publicPEM:  publicPEM,
		publicPath: publicPath,
	}, nil
}

// EncodePrivateKeyPEM encodes key as a PKCS#8 "PRIVATE KEY" block.
func EncodePrivateKeyPEM(key ed25519.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("encoding private key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemTypePrivate, Bytes: der}), nil
}

// EncodePublicKeyPEM encodes key as a PKIX "PUBLIC KEY" block.
func EncodePublicKeyPEM(key ed25519.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, fmt.Errorf("encoding public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemTypePublic, Bytes: der}), nil
}

// ParsePrivateKeyPEM decodes a PKCS#8 Ed25519 private key.
func ParsePrivateKeyPEM(data []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemTypePrivate {
		return nil, fmt.Errorf("%w: no %q PEM block", ErrInvalidKey, pemTypePrivate)
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	private, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an Ed25519 key (%T)", ErrInvalidKey, key)
	}
	return private, nil
}

// ParsePublicKeyPEM decodes a PKIX Ed25519 public key.
func ParsePublicKeyPEM(data []byte) (ed25519.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemTypePublic {
		return nil, fmt.Errorf("%w: no %q PEM block", ErrInvalidKey, pemTypePublic)
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	public, ok := key.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an Ed25519 key (%T)", ErrInvalidKey, key)
	}
	return public, nil
}
