// Command review-verify checks a review attestation against the server's
// public key. The payload is the signed review state as JSON, read from a
// file or from stdin. The key comes from a local PEM file or is downloaded
// from a running server.
//
//	review-verify --public-key public_key.pem --signature <base64> --payload review.json
//	review-verify --server https://id.example.com --signature <base64> < review.json
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/keyfetch"
	"github.com/fabianthdev/sidestore-id-backend/internal/signing"

	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns 0 for a valid signature, 1 for an invalid one and 2 for usage
// or input errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		publicKeyPath string
		serverURL     string
		signature     string
		payloadPath   string
		timeout       time.Duration
	)

	flagSet := pflag.NewFlagSet("review-verify", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&publicKeyPath, "public-key", "", "path to the PEM encoded review public key")
	flagSet.StringVar(&serverURL, "server", "", "base url of a server to download the public key from")
	flagSet.DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout for downloading the public key")
	flagSet.StringVar(&signature, "signature", "", "base64 signature returned by the sign endpoint")
	flagSet.StringVar(&payloadPath, "payload", "-", "path to the signed review JSON (- for stdin)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if (publicKeyPath == "") == (serverURL == "") || signature == "" {
		fmt.Fprintln(stderr, "error: --signature and exactly one of --public-key or --server are required")
		flagSet.PrintDefaults()
		return 2
	}

	public, err := loadPublicKey(publicKeyPath, serverURL, timeout)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	payload, err := readPayload(payloadPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	if err := signing.Verify(public, payload, signature); err != nil {
		if errors.Is(err, signing.ErrMalformedSignature) {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 2
		}
		fmt.Fprintf(stdout, "invalid: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "valid: review #%d of %s/%s by %s\n",
		payload.SequenceNumber, payload.SourceIdentifier, payload.AppBundleIdentifier, payload.SidestoreUserID)
	return 0
}

func loadPublicKey(path, serverURL string, timeout time.Duration) (ed25519.PublicKey, error) {
	if serverURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return keyfetch.New().PublicKey(ctx, serverURL)
	}

	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return signing.ParsePublicKeyPEM(pemBytes)
}

func readPayload(path string, stdin io.Reader) (*signing.Payload, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var p signing.Payload
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	return &p, nil
}
