// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/safeher/internal/config"
	"github.com/MKhiriev/safeher/internal/crypto"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/metrics"
	"github.com/MKhiriev/safeher/internal/qr"
	"github.com/MKhiriev/safeher/internal/store"
	"github.com/MKhiriev/safeher/models"
)

// Services bundles every service the transport layer and the workers use.
// Identity, admin and alert services are wrapped with input validation.
type Services struct {
	IdentityService IdentityService
	AdminService    AdminService
	TokenService    TokenService
	AlertService    AlertService
	AppInfoService  AppInfoService
	HealthService   HealthService
}

// NewServices wires the services on top of storages. It fails when the QR
// encryption key in cfg is unusable or no version is known.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, build models.AppBuildInfo, renderer qr.Renderer, m *metrics.Metrics, logger *logger.Logger) (*Services, error) {
	key, err := cfg.App.QREncryptionKey()
	if err != nil {
		return nil, fmt.Errorf("error decoding qr encryption key: %w", err)
	}

	cipher, err := crypto.NewTokenCipher(key)
	if err != nil {
		return nil, fmt.Errorf("error creating token cipher: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	tokenService := NewTokenService(cfg.App)

	identityService := NewIdentityService(storages.IdentityRepository, cipher, renderer, m, logger)
	adminService := NewAdminService(storages.AdminRepository, crypto.NewPasswordHasher(), tokenService, cfg.App.AdminSignupDisabled, m, logger)
	alertService := NewAlertService(storages.AlertRepository, storages.IdentityRepository, m, logger)

	return &Services{
		IdentityService: NewIdentityValidationService().Wrap(identityService),
		AdminService:    NewAdminValidationService().Wrap(adminService),
		TokenService:    tokenService,
		AlertService:    NewAlertValidationService().Wrap(alertService),
		AppInfoService:  appInfoService,
		HealthService:   NewHealthService(storages.HealthChecker, m, logger),
	}, nil
}
