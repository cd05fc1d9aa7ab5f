// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/safeher/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// IdentityRepository persists registered identities keyed by email.
type IdentityRepository interface {
	// CreateIdentity stores a new identity and returns it with the assigned
	// ID. A taken email yields [ErrEmailAlreadyExists].
	CreateIdentity(ctx context.Context, identity models.Identity) (models.Identity, error)

	FindIdentityByEmail(ctx context.Context, email string) (models.Identity, error)

	// FindIdentityByCredentials matches both email and phone.
	FindIdentityByCredentials(ctx context.Context, credentials models.UserCredentials) (models.Identity, error)

	UpdateIdentity(ctx context.Context, update models.IdentityUpdate) (models.Identity, error)

	// SetQRPath attaches the QR image path unless one is already stored.
	SetQRPath(ctx context.Context, id int64, path string) error

	// ListIdentitiesWithoutQR returns up to limit identities whose QR image
	// was never rendered.
	ListIdentitiesWithoutQR(ctx context.Context, limit uint64) ([]models.Identity, error)
}

// AdminRepository persists administrator accounts.
type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error)
	FindAdminByUsername(ctx context.Context, username string) (models.Admin, error)
}

// AlertRepository persists emergency alerts.
type AlertRepository interface {
	CreateAlert(ctx context.Context, alert models.Alert) (models.Alert, error)
	ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.AlertRecord, error)

	// ResolveAlert marks the alert resolved at the given time and returns it.
	ResolveAlert(ctx context.Context, id int64, resolvedAt time.Time) (models.Alert, error)
}

// HealthChecker reports whether the underlying storage is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
