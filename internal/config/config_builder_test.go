// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQRKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:       "jwt_secret",
			TokenSignAlgorithm: "HS256",
			TokenDuration:      2 * time.Hour,
			QRSecretKey:        testQRKey,
			LogLevel:           "debug",
		},
		Storage: Storage{DB: DB{Driver: DriverPostgres, DSN: "postgres://u:p@localhost/db"}},
		Server:  Server{HTTPAddress: ":8080"},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that an empty configuration never passes
// validation.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingTokenSignKey)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierConfigWins verifies that a non-zero field of an earlier
// source is not overridden by a later one, while zero fields are filled.
func TestBuild_EarlierConfigWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "from-flags"}},
		validConfig(),
		&StructuredConfig{App: App{Version: "from-json", DeviceHashKey: "device"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-flags", cfg.App.Version)
	assert.Equal(t, "device", cfg.App.DeviceHashKey)
	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_TOKEN_SIGN_KEY":        "jwt_secret",
		"APP_TOKEN_SIGN_ALGORITHM":  "HS512",
		"APP_TOKEN_DURATION":        "1h",
		"APP_QR_SECRET_KEY":         testQRKey,
		"APP_DEVICE_HASH_KEY":       "device_secret",
		"APP_ADMIN_SIGNUP_DISABLED": "true",

		"SERVER_ADDRESS":              "localhost:8080",
		"SERVER_GRPC_ADDRESS":         "localhost:9090",
		"SERVER_REQUEST_TIMEOUT":      "30s",
		"SERVER_RATE_LIMIT_RPS":       "3",
		"SERVER_RATE_LIMIT_BURST":     "7",
		"SERVER_CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",

		"STORAGE_DB_DRIVER":          "sqlite3",
		"STORAGE_DB_DATABASE_URI":    "file:safeher.db",
		"STORAGE_FILES_QR_CODES_DIR": "/var/qr",

		"WORKERS_HEALTH_INTERVAL":      "5s",
		"WORKERS_QR_BACKFILL_INTERVAL": "2m",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	b := newConfigBuilder().withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	cfg := b.configs[0]

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "HS512", cfg.App.TokenSignAlgorithm)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, testQRKey, cfg.App.QRSecretKey)
	assert.Equal(t, "device_secret", cfg.App.DeviceHashKey)
	assert.True(t, cfg.App.AdminSignupDisabled)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "localhost:9090", cfg.Server.GRPCAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 3.0, cfg.Server.RateLimitRPS)
	assert.Equal(t, 7, cfg.Server.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, "file:safeher.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/var/qr", cfg.Storage.Files.QRCodesDir)
	assert.Equal(t, 5*time.Second, cfg.Workers.HealthInterval)
	assert.Equal(t, 2*time.Minute, cfg.Workers.QRBackfillInterval)
}

func TestWithEnv_InvalidValueSetsError(t *testing.T) {
	t.Setenv("APP_TOKEN_DURATION", "forever")

	b := newConfigBuilder().withEnv()
	require.Error(t, b.err)
	assert.Contains(t, b.err.Error(), "error getting env configs")
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_AppendsParsedFlags(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-token-sign-key", "flag_secret"})
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "flag_secret", b.configs[0].App.TokenSignKey)
}

func TestWithFlags_ErrorIsKept(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-a", "bad"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_SkipsWhenNoPath(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_UsesFirstPath(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{"version": "json-version"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "json-version", b.configs[2].App.Version)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})
	b.withJSON()
	assert.Error(t, b.err)
}

// ── full chain ────────────────────────────────────────────────────────────────

// TestBuilderChain_Priority verifies flags > env > JSON > defaults.
func TestBuilderChain_Priority(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{
			"token_sign_key":       "json_secret",
			"token_sign_algorithm": "HS384",
			"qr_secret_key":        testQRKey,
			"version":              "json-version",
		},
		"storage": map[string]any{"db": map[string]any{"dsn": "postgres://json"}},
	})
	t.Setenv("CONFIG", path)
	t.Setenv("APP_TOKEN_SIGN_KEY", "env_secret")
	t.Setenv("APP_VERSION", "env-version")

	cfg, err := newConfigBuilder().
		withFlags([]string{"-token-sign-key", "flag_secret"}).
		withEnv().
		withJSON().
		withDefaults().
		build()
	require.NoError(t, err)

	assert.Equal(t, "flag_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "env-version", cfg.App.Version)
	assert.Equal(t, "HS384", cfg.App.TokenSignAlgorithm)
	assert.Equal(t, "postgres://json", cfg.Storage.DB.DSN)

	assert.Equal(t, defaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DriverPostgres, cfg.Storage.DB.Driver)
	assert.Equal(t, defaultQRCodesDir, cfg.Storage.Files.QRCodesDir)
	assert.Equal(t, defaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, defaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, float64(defaultRateLimitRPS), cfg.Server.RateLimitRPS)
	assert.Equal(t, defaultRateLimitBurst, cfg.Server.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, defaultHealthInterval, cfg.Workers.HealthInterval)
	assert.Equal(t, defaultQRBackfillInterval, cfg.Workers.QRBackfillInterval)
}

func TestBuilderChain_RejectsNegativeTokenDuration(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "env_secret")
	t.Setenv("APP_TOKEN_SIGN_ALGORITHM", "HS256")
	t.Setenv("APP_QR_SECRET_KEY", testQRKey)
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env")
	t.Setenv("APP_TOKEN_DURATION", "-1h")

	cfg, err := newConfigBuilder().
		withFlags(nil).
		withEnv().
		withJSON().
		withDefaults().
		build()
	require.ErrorIs(t, err, ErrInvalidTokenDuration)
	assert.Nil(t, cfg)
}

func TestWithEnv_TrustProxy(t *testing.T) {
	t.Setenv("SERVER_TRUST_PROXY", "true")

	b := newConfigBuilder().withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.True(t, b.configs[0].Server.TrustProxy)
}
