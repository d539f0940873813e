package store

import (
	"context"
	"fmt"
	"os"

	"github.com/fabianthdev/sidestore-id-backend/internal/models"

	"gorm.io/gorm"
)

type Store struct {
	db     *gorm.DB
	driver string
}

// New opens the database, applies migrations and returns a ready store.
func New(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := openDB(driver, dsn, newLogger(os.Stdout))
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.AppReview{},
		&models.ReviewSequence{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

// Health checks the database connection
func (s *Store) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Driver returns the configured driver name
func (s *Store) Driver() string {
	return s.driver
}
