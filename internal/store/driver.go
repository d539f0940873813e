package store

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// driver opens a dialector and tunes the connection pool behind it
type driver struct {
	open      func(dsn string) gorm.Dialector
	configure func(pool *sql.DB)
}

var drivers = map[string]driver{
	"sqlite": {
		open: sqlite.Open,
		// One connection serialises writers, which the sequence counter
		// transaction relies on, and keeps ":memory:" databases shared.
		configure: func(pool *sql.DB) {
			pool.SetMaxOpenConns(1)
		},
	},
	"postgres": {
		open: postgres.Open,
		configure: func(pool *sql.DB) {
			pool.SetMaxOpenConns(25)
			pool.SetMaxIdleConns(10)
			pool.SetConnMaxLifetime(30 * time.Minute)
		},
	},
}

func lookupDriver(name string) (driver, error) {
	d, ok := drivers[name]
	if !ok {
		return driver{}, fmt.Errorf("unsupported database driver: %s", name)
	}
	return d, nil
}

// openDB opens name/dsn and applies the driver's pool settings
func openDB(name, dsn string, gormLogger logger.Interface) (*gorm.DB, error) {
	d, err := lookupDriver(name)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d.open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	pool, err := db.DB()
	if err != nil {
		return nil, err
	}
	d.configure(pool)
	return db, nil
}

// newLogger reports slow queries and real errors. Lookups that find nothing
// are a normal outcome (first review of an app, unknown email) and stay quiet.
func newLogger(w io.Writer) logger.Interface {
	return logger.New(log.New(w, "[Store] ", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
