// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the HTTP API. It is used by the
// command-line client and by SOS device simulators.
package adapter

import (
	"context"

	"github.com/MKhiriev/safeher/models"
)

// ServerAdapter calls the server API. Admin operations use the bearer token
// stored by LoginAdmin or SetToken.
type ServerAdapter interface {
	// RegisterUser enrolls an identity and returns its QR token and image
	// location.
	RegisterUser(ctx context.Context, payload models.IdentityPayload) (models.RegistrationResponse, error)
	// LoginUser returns the stored identity for matching email and phone.
	LoginUser(ctx context.Context, credentials models.UserCredentials) (models.Identity, error)
	// SendUserAlert raises an alert for a registered user.
	SendUserAlert(ctx context.Context, request models.UserAlertRequest) (int64, error)
	// SendDeviceSOS signs payload with the device key and submits it.
	SendDeviceSOS(ctx context.Context, payload models.DeviceAlertPayload) (int64, error)

	RegisterAdmin(ctx context.Context, credentials models.AdminCredentials) error
	// LoginAdmin stores the issued token for later admin calls.
	LoginAdmin(ctx context.Context, credentials models.AdminCredentials) (string, error)
	VerifyQR(ctx context.Context, encryptedQR string) (models.IdentityPayload, error)
	UpdateIdentity(ctx context.Context, update models.IdentityUpdate) (models.Identity, error)
	ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.AlertView, error)
	ResolveAlert(ctx context.Context, id int64) error

	Version(ctx context.Context) (models.VersionResponse, error)

	SetToken(token string)
	Token() string
}
