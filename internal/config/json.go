// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the
// optional JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey        string   `json:"token_sign_key"`
		TokenSignAlgorithm  string   `json:"token_sign_algorithm"`
		TokenDuration       Duration `json:"token_duration"`
		QRSecretKey         string   `json:"qr_secret_key"`
		DeviceHashKey       string   `json:"device_hash_key"`
		AdminSignupDisabled bool     `json:"admin_signup_disabled"`
		Version             string   `json:"version"`
		LogLevel            string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			QRCodesDir string `json:"qr_codes_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		GRPCAddress        string   `json:"grpc_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		RateLimitRPS       float64  `json:"rate_limit_rps"`
		RateLimitBurst     int      `json:"rate_limit_burst"`
		CORSAllowedOrigins []string `json:"cors_allowed_origins"`
		TrustProxy         bool     `json:"trust_proxy"`
	} `json:"server,omitempty"`

	Workers struct {
		HealthInterval     Duration `json:"health_interval"`
		QRBackfillInterval Duration `json:"qr_backfill_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:        jsonCfg.App.TokenSignKey,
			TokenSignAlgorithm:  jsonCfg.App.TokenSignAlgorithm,
			TokenDuration:       time.Duration(jsonCfg.App.TokenDuration),
			QRSecretKey:         jsonCfg.App.QRSecretKey,
			DeviceHashKey:       jsonCfg.App.DeviceHashKey,
			AdminSignupDisabled: jsonCfg.App.AdminSignupDisabled,
			Version:             jsonCfg.App.Version,
			LogLevel:            jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				QRCodesDir: jsonCfg.Storage.Files.QRCodesDir,
			},
		},
		Server: Server{
			HTTPAddress:        jsonCfg.Server.HTTPAddress,
			GRPCAddress:        jsonCfg.Server.GRPCAddress,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
			RateLimitRPS:       jsonCfg.Server.RateLimitRPS,
			RateLimitBurst:     jsonCfg.Server.RateLimitBurst,
			CORSAllowedOrigins: jsonCfg.Server.CORSAllowedOrigins,
			TrustProxy:         jsonCfg.Server.TrustProxy,
		},
		Workers: Workers{
			HealthInterval:     time.Duration(jsonCfg.Workers.HealthInterval),
			QRBackfillInterval: time.Duration(jsonCfg.Workers.QRBackfillInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
