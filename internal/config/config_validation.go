// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/base64"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// QRKeySize is the length in bytes of the decoded QR encryption key.
const QRKeySize = 32

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

var supportedTokenAlgorithms = []string{"HS256", "HS384", "HS512"}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of
// the sentinel errors from errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrMissingTokenSignKey
	}

	if !slices.Contains(supportedTokenAlgorithms, cfg.App.TokenSignAlgorithm) {
		return fmt.Errorf("%w: %q", ErrInvalidTokenAlgorithm, cfg.App.TokenSignAlgorithm)
	}

	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTokenDuration, cfg.App.TokenDuration)
	}

	if cfg.App.QRSecretKey == "" {
		return ErrMissingQRSecretKey
	}
	if _, err := cfg.App.QREncryptionKey(); err != nil {
		return err
	}

	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.App.LogLevel)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDBDriver, cfg.Storage.DB.Driver)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrMissingDSN
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrMissingHTTPAddress
	}

	return nil
}

// QREncryptionKey decodes QRSecretKey. Both standard and URL-safe base64
// alphabets are accepted; the decoded key must be exactly [QRKeySize] bytes.
func (a App) QREncryptionKey() ([]byte, error) {
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.RawURLEncoding} {
		key, err := enc.DecodeString(a.QRSecretKey)
		if err != nil {
			continue
		}
		if len(key) != QRKeySize {
			return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrInvalidQRSecretKey, len(key), QRKeySize)
		}
		return key, nil
	}

	return nil, fmt.Errorf("%w: not base64", ErrInvalidQRSecretKey)
}
