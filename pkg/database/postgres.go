package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"go-inquiry-backend/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// ErrNotConfigured means no DSN was provided; callers run without storage.
var ErrNotConfigured = errors.New("database not configured")

// ConnectOptions bounds the startup retry.
type ConnectOptions struct {
	MaxElapsed time.Duration
}

// NewPostgresConnection opens a gorm handle, retrying transient failures
// with exponential backoff until opts.MaxElapsed.
func NewPostgresConnection(ctx context.Context, dsn string, opts ConnectOptions) (*gorm.DB, error) {
	if dsn == "" {
		return nil, ErrNotConfigured
	}
	if opts.MaxElapsed <= 0 {
		opts.MaxElapsed = 20 * time.Second
	}

	connect := func() (*gorm.DB, error) {
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN: dsn,
			// Supabase/PgBouncer transaction mode rejects named prepared statements.
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			Logger:                 gormLogger.Default.LogMode(gormLogger.Warn),
			SkipDefaultTransaction: true,
		})
		if err != nil {
			if isTransientError(err) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		return db, nil
	}

	notify := func(err error, d time.Duration) {
		logger.Log.Warn("Retrying database connection", zap.Error(err), zap.Duration("after", d))
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = opts.MaxElapsed

	db, err := backoff.RetryNotifyWithData(connect, backoff.WithContext(b, ctx), notify)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	logger.Log.Info("Database connection established successfully")
	return db, nil
}

// Migrate creates or updates the given tables.
func Migrate(db *gorm.DB, models ...interface{}) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}
	return nil
}

// Ping reports whether the database answers within ctx.
func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return ErrNotConfigured
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying pool.
func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func isTransientError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Class 08: connection exception. Class 53: insufficient resources.
	// 57P03: cannot_connect_now (server starting up).
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08") ||
			strings.HasPrefix(pgErr.Code, "53") ||
			pgErr.Code == "57P03"
	}

	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
