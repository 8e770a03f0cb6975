package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mindsprint_backend/internals/configs"
)

// ConnectPostgres opens the pool. PreferSimpleProtocol keeps it usable behind
// PgBouncer in transaction pooling mode.
func ConnectPostgres(cfg configs.Postgres, log logrus.FieldLogger) (*gorm.DB, error) {
	log.WithField("host", cfg.Host).Info("connecting to PostgreSQL")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := TunePool(db); err != nil {
		return nil, err
	}
	log.Info("postgres connected")
	return db, nil
}

func TunePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("pool tune: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// WarmUp pings in the background so the first request does not pay for the handshake.
func WarmUp(ping func(context.Context) error, log logrus.FieldLogger) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			log.WithError(err).Warn("warm-up ping failed")
		}
	}()
}
