// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/safeher/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// IdentityService registers users and resolves QR tokens back to their
// authoritative identity.
type IdentityService interface {
	// Register stores a new identity, issues its QR token and renders the
	// QR image. A failed render leaves QRPath empty and is not an error.
	Register(ctx context.Context, payload models.IdentityPayload) (models.Identity, error)

	// Login returns the identity matching both email and phone.
	Login(ctx context.Context, credentials models.UserCredentials) (models.Identity, error)

	// Scan decrypts token and returns the stored record of the identity it
	// names. The stored record wins over the decrypted one.
	Scan(ctx context.Context, token string) (models.IdentityPayload, error)

	UpdateIdentity(ctx context.Context, update models.IdentityUpdate) (models.Identity, error)

	// BackfillQR renders QR images for up to limit identities that have
	// none and returns how many were attached.
	BackfillQR(ctx context.Context, limit uint64) (int, error)
}

// AdminService manages admin accounts and admin login.
type AdminService interface {
	Register(ctx context.Context, credentials models.AdminCredentials) (models.Admin, error)
	Login(ctx context.Context, credentials models.AdminCredentials) (models.Token, error)
}

// TokenService issues and verifies admin authorization tokens.
type TokenService interface {
	IssueAdminToken(ctx context.Context) (models.Token, error)

	// VerifyAdminToken returns [ErrUnauthorized] or [ErrForbidden] on
	// failure. It has no side effects.
	VerifyAdminToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AlertService records emergency alerts and serves them to admins.
type AlertService interface {
	CreateUserAlert(ctx context.Context, request models.UserAlertRequest) (models.Alert, error)
	CreateDeviceAlert(ctx context.Context, payload models.DeviceAlertPayload) (models.Alert, error)
	ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.AlertView, error)

	// ResolveAlert marks the alert resolved. Resolving again succeeds and
	// moves resolved_at forward.
	ResolveAlert(ctx context.Context, id int64) (models.Alert, error)
}

// AppInfoService exposes the running build.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetVersionInfo(ctx context.Context) models.VersionResponse
}

// HealthService reports storage reachability.
type HealthService interface {
	Check(ctx context.Context) error
}

// IdentityServiceWrapper decorates an [IdentityService] with additional
// behavior such as validation.
type IdentityServiceWrapper interface {
	Wrap(IdentityService) IdentityService
}

// AdminServiceWrapper decorates an [AdminService].
type AdminServiceWrapper interface {
	Wrap(AdminService) AdminService
}

// AlertServiceWrapper decorates an [AlertService].
type AlertServiceWrapper interface {
	Wrap(AlertService) AlertService
}
