// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

const (
	defaultHTTPAddress        = ":8080"
	defaultDBDriver           = DriverPostgres
	defaultQRCodesDir         = "qr_codes"
	defaultTokenDuration      = 2 * time.Hour
	defaultRequestTimeout     = 30 * time.Second
	defaultRateLimitRPS       = 1
	defaultRateLimitBurst     = 5
	defaultHealthInterval     = 15 * time.Second
	defaultQRBackfillInterval = time.Minute
	defaultLogLevel           = "debug"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

// build merges the collected configs (earlier ones win) and validates the
// result.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := parseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := env.Parse(envCfg); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error getting env configs: %w", err))
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		App: App{
			TokenDuration: defaultTokenDuration,
			LogLevel:      defaultLogLevel,
		},
		Storage: Storage{
			DB:    DB{Driver: defaultDBDriver},
			Files: Files{QRCodesDir: defaultQRCodesDir},
		},
		Server: Server{
			HTTPAddress:        defaultHTTPAddress,
			RequestTimeout:     defaultRequestTimeout,
			RateLimitRPS:       defaultRateLimitRPS,
			RateLimitBurst:     defaultRateLimitBurst,
			CORSAllowedOrigins: []string{"*"},
		},
		Workers: Workers{
			HealthInterval:     defaultHealthInterval,
			QRBackfillInterval: defaultQRBackfillInterval,
		},
	})
	return b
}
