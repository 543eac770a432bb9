package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options carries the connection tunables. Zero values fall back to
// defaults suitable for local development.
type Options struct {
	DSN             string
	LogLevel        string // silent | warn | info
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

func (o *Options) applyDefaults() {
	if o.LogLevel == "" {
		o.LogLevel = "warn"
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = 10
	}
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = 100
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = time.Hour
	}
}

func gormLogger(level string) logger.Interface {
	logLevel := logger.Warn
	switch level {
	case "silent":
		logLevel = logger.Silent
	case "info":
		logLevel = logger.Info
	}

	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)
}

// NewGormDB opens a postgres connection with the given tunables.
func NewGormDB(opts Options) (*gorm.DB, error) {
	opts.applyDefaults()

	db, err := gorm.Open(postgres.Open(opts.DSN), &gorm.Config{
		Logger: gormLogger(opts.LogLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	return db, nil
}

// NewGormDBFromDSN opens a connection with default tunables, for one-shot
// commands and tests that only carry a DSN.
func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	return NewGormDB(Options{DSN: dsn})
}
