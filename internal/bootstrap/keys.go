package bootstrap

import (
	"fmt"
	"log"

	"github.com/fabianthdev/sidestore-id-backend/internal/config"
	"github.com/fabianthdev/sidestore-id-backend/internal/signing"
)

// initializeSigningKeys loads or creates the review signing keypair. The
// server must not start without one.
func initializeSigningKeys(cfg *config.Config) (*signing.Keypair, error) {
	kp, generated, err := signing.Acquire(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire review signing keys: %w", err)
	}

	if generated {
		log.Printf("[Keys] Generated new review signing keypair in %s", cfg.StoragePath)
	} else {
		log.Printf("[Keys] Loaded review signing keypair from %s", cfg.StoragePath)
	}
	return kp, nil
}
