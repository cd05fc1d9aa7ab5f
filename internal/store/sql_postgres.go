// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/safeher/internal/config"
	"github.com/MKhiriev/safeher/internal/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
)

const (
	postgresMaxOpenConns    = 10
	postgresMaxIdleConns    = 4
	postgresConnMaxLifetime = 30 * time.Minute

	// the database container usually starts alongside the server
	pingRetryBase = 200 * time.Millisecond
	pingRetryMax  = 5
)

// NewConnectPostgres opens a pgx-backed connection pool and pings it,
// retrying with exponential backoff. Errors are logged without the DSN,
// which carries credentials.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open(config.DriverPostgres, cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	conn.SetMaxOpenConns(postgresMaxOpenConns)
	conn.SetMaxIdleConns(postgresMaxIdleConns)
	conn.SetConnMaxLifetime(postgresConnMaxLifetime)

	if err = pingWithRetry(ctx, conn, log); err != nil {
		conn.Close()
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, fmt.Errorf("error connecting database (ping): %w", err)
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return newDB(conn, config.DriverPostgres, log), nil
}

// pingWithRetry pings conn up to pingRetryMax extra times with exponential
// backoff starting at pingRetryBase.
func pingWithRetry(ctx context.Context, conn *sql.DB, log *logger.Logger) error {
	backoff := retry.WithMaxRetries(pingRetryMax, retry.NewExponential(pingRetryBase))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := conn.PingContext(ctx); err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("database ping failed")
			return retry.RetryableError(err)
		}
		return nil
	})
}
