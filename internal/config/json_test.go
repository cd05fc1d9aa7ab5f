// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": {
			"token_sign_key": "jwt_secret",
			"token_sign_algorithm": "HS256",
			"token_duration": "1h",
			"qr_secret_key": "qr_secret",
			"device_hash_key": "device_secret",
			"admin_signup_disabled": true,
			"version": "1.2.3",
			"log_level": "warn"
		},
		"server": {
			"http_address": "localhost:8080",
			"grpc_address": "localhost:9090",
			"request_timeout": "30s",
			"rate_limit_rps": 2.5,
			"rate_limit_burst": 10,
			"cors_allowed_origins": ["https://a.example", "https://b.example"],
			"trust_proxy": true
		},
		"storage": {
			"db": { "driver": "sqlite3", "dsn": "file:safeher.db" },
			"files": { "qr_codes_dir": "/var/qr" }
		},
		"workers": {
			"health_interval": "5s",
			"qr_backfill_interval": 120000000000
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "HS256", cfg.App.TokenSignAlgorithm)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "qr_secret", cfg.App.QRSecretKey)
	assert.Equal(t, "device_secret", cfg.App.DeviceHashKey)
	assert.True(t, cfg.App.AdminSignupDisabled)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "warn", cfg.App.LogLevel)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "localhost:9090", cfg.Server.GRPCAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 2.5, cfg.Server.RateLimitRPS)
	assert.Equal(t, 10, cfg.Server.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.True(t, cfg.Server.TrustProxy)

	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, "file:safeher.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/var/qr", cfg.Storage.Files.QRCodesDir)

	assert.Equal(t, 5*time.Second, cfg.Workers.HealthInterval)
	assert.Equal(t, 2*time.Minute, cfg.Workers.QRBackfillInterval)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": `), 0o600))

	cfg, err := parseJSON(p)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": {"token_duration": "soon"}}`), 0o600))

	_, err := parseJSON(p)
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", input: `"90s"`, want: 90 * time.Second},
		{name: "nanoseconds", input: `1000`, want: time.Microsecond},
		{name: "bool", input: `true`, wantErr: true},
		{name: "bad string", input: `"x"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration(2 * time.Hour))
	require.NoError(t, err)
	assert.JSONEq(t, `"2h0m0s"`, string(b))
}
