// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container of the server.
// It is populated by merging command-line flags, environment variables and
// an optional JSON file, then completed with defaults and validated.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the process-wide secrets and application-level settings.
	App App `envPrefix:"APP_"`

	// Storage holds the database and QR artifact storage settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network, timeout and throttling settings of the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds the intervals of the background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the secrets and application-level values shared by every
// component. It is constructed once at startup and passed by value into
// the services that need it.
type App struct {
	// TokenSignKey is the secret used to sign and verify admin JWTs.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenSignAlgorithm is the HMAC JWT algorithm name (HS256, HS384, HS512).
	// Env: APP_TOKEN_SIGN_ALGORITHM
	TokenSignAlgorithm string `env:"TOKEN_SIGN_ALGORITHM"`

	// TokenDuration is the lifetime of an admin JWT. Defaults to 2h.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// QRSecretKey is the base64 encoding of the 32-byte key that encrypts
	// identity records into QR tokens.
	// Env: APP_QR_SECRET_KEY
	QRSecretKey string `env:"QR_SECRET_KEY"`

	// DeviceHashKey is the HMAC key SOS devices sign their reports with.
	// The device feed is disabled when it is empty.
	// Env: APP_DEVICE_HASH_KEY
	DeviceHashKey string `env:"DEVICE_HASH_KEY"`

	// AdminSignupDisabled removes the open admin registration endpoint.
	// Env: APP_ADMIN_SIGNUP_DISABLED
	AdminSignupDisabled bool `env:"ADMIN_SIGNUP_DISABLED"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name. Defaults to "debug".
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration of all persistence backends.
type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the relational store.
type DB struct {
	// Driver is the database/sql driver name: "pgx" (default) or "sqlite3".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name. For postgres it carries the endpoint and
	// the credentials, so it is never logged.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for rendered QR images.
type Files struct {
	// QRCodesDir is the directory QR images are written to and served
	// from. Defaults to "qr_codes".
	// Env: STORAGE_FILES_QR_CODES_DIR
	QRCodesDir string `env:"QR_CODES_DIR"`
}

// Server holds network and timeout settings for the inbound transports.
type Server struct {
	// HTTPAddress is the "host:port" the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the "host:port" the gRPC health server listens on.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request. Defaults to 30s.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimitRPS is the sustained per-client request rate allowed on
	// admin login and QR scan. Defaults to 1.
	// Env: SERVER_RATE_LIMIT_RPS
	RateLimitRPS float64 `env:"RATE_LIMIT_RPS"`

	// RateLimitBurst is the per-client burst on the same routes.
	// Defaults to 5.
	// Env: SERVER_RATE_LIMIT_BURST
	RateLimitBurst int `env:"RATE_LIMIT_BURST"`

	// CORSAllowedOrigins lists allowed browser origins; "*" allows all.
	// Env: SERVER_CORS_ALLOWED_ORIGINS (comma separated)
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// TrustProxy takes the client address from True-Client-IP, X-Real-IP or
	// X-Forwarded-For. Enable it only behind a reverse proxy that overwrites
	// those headers; otherwise clients pick their own rate limit bucket.
	// Env: SERVER_TRUST_PROXY
	TrustProxy bool `env:"TRUST_PROXY"`
}

// Workers holds the schedule of background workers.
type Workers struct {
	// HealthInterval is how often storage is pinged to drive the gRPC
	// health status. Defaults to 15s.
	// Env: WORKERS_HEALTH_INTERVAL
	HealthInterval time.Duration `env:"HEALTH_INTERVAL"`

	// QRBackfillInterval is how often identities without a QR image are
	// re-rendered. Defaults to 1m.
	// Env: WORKERS_QR_BACKFILL_INTERVAL
	QRBackfillInterval time.Duration `env:"QR_BACKFILL_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the server
// configuration. Sources are applied in the following priority order
// (earlier sources win for non-zero fields):
//  1. Command-line flags
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// A missing secret or storage DSN is a validation error, so the process
// never starts half-configured.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(os.Args[1:]).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
