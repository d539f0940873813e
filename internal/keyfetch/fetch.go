// Package keyfetch downloads the review attestation public key from a running
// server so that signatures can be verified offline.
package keyfetch

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/signing"

	retry "github.com/appleboy/go-httpretry"
)

// PublicKeyPath is where the server serves its PEM encoded review key.
const PublicKeyPath = "/api/reviews/public_key"

const (
	defaultAttempts     = 4
	defaultInitialDelay = 500 * time.Millisecond
	defaultMaxDelay     = 5 * time.Second
	defaultTimeout      = 10 * time.Second
	maxKeySize          = 16 << 10
)

// ErrUnexpectedStatus is returned when the server does not answer 200, after
// retries for 5xx and 429 are used up.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Fetcher retrieves public keys through a retrying HTTP client. Network
// errors, 5xx and 429 responses are retried with exponential backoff.
type Fetcher struct {
	httpClient   *http.Client
	attempts     int
	initialDelay time.Duration
	maxDelay     time.Duration
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithAttempts sets the total number of requests made before giving up
func WithAttempts(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.attempts = n
		}
	}
}

// WithBackoff sets the first retry delay and the cap it grows to
func WithBackoff(initial, maxDelay time.Duration) Option {
	return func(f *Fetcher) {
		if initial > 0 {
			f.initialDelay = initial
		}
		if maxDelay > 0 {
			f.maxDelay = maxDelay
		}
	}
}

// WithHTTPClient sets the client each attempt goes through
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.httpClient = c
		}
	}
}

// New creates a Fetcher
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		attempts:     defaultAttempts,
		initialDelay: defaultInitialDelay,
		maxDelay:     defaultMaxDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) retryClient() (*retry.Client, error) {
	client, err := retry.NewRealtimeClient(
		retry.WithHTTPClient(f.httpClient),
		retry.WithMaxRetries(f.attempts-1),
		retry.WithInitialRetryDelay(f.initialDelay),
		retry.WithMaxRetryDelay(f.maxDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry client: %w", err)
	}
	return client, nil
}

// PublicKey downloads and parses the review key served at baseURL.
func (f *Fetcher) PublicKey(ctx context.Context, baseURL string) (ed25519.PublicKey, error) {
	endpoint, err := url.JoinPath(strings.TrimSuffix(baseURL, "/"), PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}

	client, err := f.retryClient()
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxKeySize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", endpoint, err)
	}
	return signing.ParsePublicKeyPEM(body)
}
