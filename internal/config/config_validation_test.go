// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{
			name:    "missing sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" },
			wantErr: ErrMissingTokenSignKey,
		},
		{
			name:    "asymmetric algorithm",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignAlgorithm = "RS256" },
			wantErr: ErrInvalidTokenAlgorithm,
		},
		{
			name:    "none algorithm",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignAlgorithm = "none" },
			wantErr: ErrInvalidTokenAlgorithm,
		},
		{
			name:    "negative token duration",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenDuration = -time.Hour },
			wantErr: ErrInvalidTokenDuration,
		},
		{
			name:    "zero token duration",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenDuration = 0 },
			wantErr: ErrInvalidTokenDuration,
		},
		{
			name:    "missing qr key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.QRSecretKey = "" },
			wantErr: ErrMissingQRSecretKey,
		},
		{
			name:    "short qr key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.QRSecretKey = "c2hvcnQ=" },
			wantErr: ErrInvalidQRSecretKey,
		},
		{
			name:    "qr key not base64",
			mutate:  func(cfg *StructuredConfig) { cfg.App.QRSecretKey = "not base64 at all!" },
			wantErr: ErrInvalidQRSecretKey,
		},
		{
			name:    "bad log level",
			mutate:  func(cfg *StructuredConfig) { cfg.App.LogLevel = "loud" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" },
			wantErr: ErrUnsupportedDBDriver,
		},
		{
			name:    "missing dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrMissingDSN,
		},
		{
			name:    "missing http address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrMissingHTTPAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApp_QREncryptionKey(t *testing.T) {
	key, err := App{QRSecretKey: testQRKey}.QREncryptionKey()
	require.NoError(t, err)
	assert.Equal(t, []byte("0123456789abcdef0123456789abcdef"), key)

	key, err = App{QRSecretKey: "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY"}.QREncryptionKey()
	require.NoError(t, err)
	assert.Len(t, key, QRKeySize)
}

func TestMarshalZerologObject_RedactsSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.App.DeviceHashKey = "device_secret"

	var buf bytes.Buffer
	zerolog.New(&buf).Info().Object("config", cfg).Send()

	out := buf.String()
	assert.NotContains(t, out, "jwt_secret")
	assert.NotContains(t, out, testQRKey)
	assert.NotContains(t, out, "device_secret")
	assert.NotContains(t, out, "postgres://u:p@localhost/db")
	assert.Contains(t, out, redacted)
	assert.Contains(t, out, `"token_sign_algorithm":"HS256"`)
}
