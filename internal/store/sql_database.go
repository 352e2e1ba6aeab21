package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/migrations"
	sq "github.com/Masterminds/squirrel"
)

// waitRetryInterval is the pause between two pings while waiting for the
// database to come up.
var waitRetryInterval = time.Second

// DB wraps *sql.DB with the driver-specific pieces the repositories need:
// a squirrel builder with the right placeholder format and an error
// classifier for constraint violations.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectDB opens a connection for cfg.Driver, waits until the database
// answers a ping and applies the pending migrations.
func NewConnectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewConnectDB").Msg("error applying migrations")
		db.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectDB").Str("driver", cfg.Driver).Msg("database is ready")

	return db, nil
}

func newDB(conn *sql.DB, driver string, classifier ErrorClassificator, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if driver == config.DriverPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		driver:             driver,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
	}
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// Driver returns the database/sql driver name of the connection.
func (db *DB) Driver() string {
	return db.driver
}

// inTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// waitForDB pings conn until it answers or timeout elapses. A zero timeout
// means a single attempt.
func waitForDB(ctx context.Context, conn *sql.DB, timeout time.Duration, log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, max(timeout, waitRetryInterval))
	defer cancel()

	for attempt := 1; ; attempt++ {
		err := conn.PingContext(ctx)
		if err == nil {
			return nil
		}
		if timeout == 0 {
			return fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
		}

		log.Warn().Err(err).
			Str("func", "waitForDB").
			Int("attempt", attempt).
			Msg("database unavailable, waiting")

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrDatabaseUnavailable, errors.Join(err, ctx.Err()))
		case <-time.After(waitRetryInterval):
		}
	}
}
