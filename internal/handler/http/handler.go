// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/safeher/internal/config"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/metrics"
	"github.com/MKhiriev/safeher/internal/service"
	"github.com/MKhiriev/safeher/internal/utils"
)

// Settings holds the transport-level options of the HTTP handler.
type Settings struct {
	// QRCodesDir is served read-only under /qr/.
	QRCodesDir string

	RequestTimeout     time.Duration
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string

	// TrustProxy resolves the client address from proxy headers.
	TrustProxy bool

	// DeviceHashKey keys the HMAC of device SOS reports. The device route
	// is not registered when it is empty.
	DeviceHashKey string

	// AdminSignupDisabled removes the admin registration route.
	AdminSignupDisabled bool
}

// NewSettings extracts the HTTP settings from the server configuration.
func NewSettings(cfg *config.StructuredConfig) Settings {
	return Settings{
		QRCodesDir:          cfg.Storage.Files.QRCodesDir,
		RequestTimeout:      cfg.Server.RequestTimeout,
		RateLimitRPS:        cfg.Server.RateLimitRPS,
		RateLimitBurst:      cfg.Server.RateLimitBurst,
		CORSAllowedOrigins:  cfg.Server.CORSAllowedOrigins,
		TrustProxy:          cfg.Server.TrustProxy,
		DeviceHashKey:       cfg.App.DeviceHashKey,
		AdminSignupDisabled: cfg.App.AdminSignupDisabled,
	}
}

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics
	settings Settings

	// deviceHasher verifies device SOS reports; nil when the feed is off.
	deviceHasher *utils.Hasher

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, settings Settings, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		metrics:  m,
		settings: settings,
		logger:   logger,
	}
	if settings.DeviceHashKey != "" {
		h.deviceHasher = utils.NewHasher(settings.DeviceHashKey)
	}

	logger.Info().Msg("http handler created")
	return h
}
