// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler creates the transport handlers enabled by configuration.
package handler

import (
	"github.com/MKhiriev/safeher/internal/config"
	"github.com/MKhiriev/safeher/internal/handler/grpc"
	"github.com/MKhiriev/safeher/internal/handler/http"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/metrics"
	"github.com/MKhiriev/safeher/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, m *metrics.Metrics, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, m, http.NewSettings(cfg), logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
