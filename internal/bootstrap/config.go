package bootstrap

import (
	"log"

	"github.com/fabianthdev/sidestore-id-backend/internal/config"
)

// validateAllConfiguration validates all configuration settings
func validateAllConfiguration(cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.IsProduction && len(cfg.JWTSecret) < 32 {
		log.Printf("WARNING: JWT_SECRET is shorter than 32 bytes")
	}
}
