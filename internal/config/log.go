// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "github.com/rs/zerolog"

const redacted = "[REDACTED]"

// MarshalZerologObject logs the configuration with every secret and the DSN
// replaced by a placeholder.
func (cfg *StructuredConfig) MarshalZerologObject(e *zerolog.Event) {
	e.Dict("app", zerolog.Dict().
		Str("token_sign_key", redact(cfg.App.TokenSignKey)).
		Str("token_sign_algorithm", cfg.App.TokenSignAlgorithm).
		Dur("token_duration", cfg.App.TokenDuration).
		Str("qr_secret_key", redact(cfg.App.QRSecretKey)).
		Str("device_hash_key", redact(cfg.App.DeviceHashKey)).
		Bool("admin_signup_disabled", cfg.App.AdminSignupDisabled).
		Str("version", cfg.App.Version).
		Str("log_level", cfg.App.LogLevel))
	e.Dict("storage", zerolog.Dict().
		Str("driver", cfg.Storage.DB.Driver).
		Str("dsn", redact(cfg.Storage.DB.DSN)).
		Str("qr_codes_dir", cfg.Storage.Files.QRCodesDir))
	e.Dict("server", zerolog.Dict().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Dur("request_timeout", cfg.Server.RequestTimeout).
		Float64("rate_limit_rps", cfg.Server.RateLimitRPS).
		Int("rate_limit_burst", cfg.Server.RateLimitBurst).
		Strs("cors_allowed_origins", cfg.Server.CORSAllowedOrigins).
		Bool("trust_proxy", cfg.Server.TrustProxy))
	e.Dict("workers", zerolog.Dict().
		Dur("health_interval", cfg.Workers.HealthInterval).
		Dur("qr_backfill_interval", cfg.Workers.QRBackfillInterval))
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}
