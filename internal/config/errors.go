// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a required
// value is absent or unusable. The process must not start on any of them.
var (
	// ErrMissingTokenSignKey indicates an empty APP_TOKEN_SIGN_KEY.
	ErrMissingTokenSignKey = errors.New("token sign key is required")
	// ErrInvalidTokenAlgorithm indicates an algorithm other than HS256, HS384 or HS512.
	ErrInvalidTokenAlgorithm = errors.New("unsupported token sign algorithm")
	// ErrInvalidTokenDuration indicates a zero or negative APP_TOKEN_DURATION.
	ErrInvalidTokenDuration = errors.New("token duration must be positive")
	// ErrMissingQRSecretKey indicates an empty APP_QR_SECRET_KEY.
	ErrMissingQRSecretKey = errors.New("qr secret key is required")
	// ErrInvalidQRSecretKey indicates a QR key that is not base64 of 32 bytes.
	ErrInvalidQRSecretKey = errors.New("invalid qr secret key")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	// ErrUnsupportedDBDriver indicates a driver other than pgx or sqlite3.
	ErrUnsupportedDBDriver = errors.New("unsupported database driver")
	// ErrMissingDSN indicates an empty STORAGE_DB_DATABASE_URI.
	ErrMissingDSN         = errors.New("database dsn is required")
	ErrMissingHTTPAddress = errors.New("http server address is required")
)
