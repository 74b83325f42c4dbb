package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/nxzen/onboardd/pkg/config"
	"github.com/nxzen/onboardd/pkg/logger"
)

// DB wraps sqlx.DB with additional functionality
type DB struct {
	*sqlx.DB
	logger *logger.Logger
}

// Opener opens a connection for a DSN. Tests substitute it with sqlmock.
type Opener func(ctx context.Context, dsn string) (*DB, error)

// New connects to the configured target database
func New(ctx context.Context, cfg *config.DatabaseConfig, log *logger.Logger) (*DB, error) {
	return NewWithDSN(ctx, cfg.DSN(), log)
}

// NewWithDSN creates a new database connection with a DSN string.
// The pool is capped at a single connection: provisioning runs every
// statement on one session.
func NewWithDSN(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return Wrap(db, log), nil
}

// Wrap adopts an existing sqlx handle
func Wrap(db *sqlx.DB, log *logger.Logger) *DB {
	if log == nil {
		log = logger.Nop()
	}
	return &DB{
		DB:     db,
		logger: log,
	}
}

// NewOpener returns an Opener bound to log
func NewOpener(log *logger.Logger) Opener {
	return func(ctx context.Context, dsn string) (*DB, error) {
		return NewWithDSN(ctx, dsn, log)
	}
}

// Transaction executes a function within a transaction
func (db *DB) Transaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
