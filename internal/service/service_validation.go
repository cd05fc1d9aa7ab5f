// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/safeher/internal/validators"
	"github.com/MKhiriev/safeher/models"
)

// invalid wraps a validator error so that it matches both
// [ErrInvalidDataProvided] and the validator sentinel.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}

// normalizeEmail trims and lower-cases an email key so that lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ── identity ─────────────────────────────────────────────────────────────────

// IdentityValidationService validates and normalizes input before passing
// it to the wrapped [IdentityService].
type IdentityValidationService struct {
	inner          IdentityService
	validator      validators.Validator
	alertValidator validators.Validator
}

func NewIdentityValidationService() IdentityServiceWrapper {
	return &IdentityValidationService{
		validator:      validators.NewIdentityValidator(),
		alertValidator: validators.NewAlertValidator(),
	}
}

func (v *IdentityValidationService) Wrap(inner IdentityService) IdentityService {
	v.inner = inner
	return v
}

func (v *IdentityValidationService) Register(ctx context.Context, payload models.IdentityPayload) (models.Identity, error) {
	payload.Email = normalizeEmail(payload.Email)
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Phone = strings.TrimSpace(payload.Phone)
	payload.VoterID = strings.TrimSpace(payload.VoterID)
	payload.PanID = strings.TrimSpace(payload.PanID)

	if err := v.validator.Validate(ctx, payload); err != nil {
		return models.Identity{}, invalid(err)
	}

	return v.inner.Register(ctx, payload)
}

func (v *IdentityValidationService) Login(ctx context.Context, credentials models.UserCredentials) (models.Identity, error) {
	credentials.Email = normalizeEmail(credentials.Email)
	credentials.Phone = strings.TrimSpace(credentials.Phone)

	if err := v.validator.Validate(ctx, credentials); err != nil {
		return models.Identity{}, invalid(err)
	}

	return v.inner.Login(ctx, credentials)
}

func (v *IdentityValidationService) Scan(ctx context.Context, token string) (models.IdentityPayload, error) {
	token = strings.TrimSpace(token)
	if err := v.alertValidator.Validate(ctx, models.ScanRequest{EncryptedQR: token}); err != nil {
		return models.IdentityPayload{}, invalid(err)
	}

	return v.inner.Scan(ctx, token)
}

func (v *IdentityValidationService) UpdateIdentity(ctx context.Context, update models.IdentityUpdate) (models.Identity, error) {
	update.Email = normalizeEmail(update.Email)

	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Identity{}, invalid(err)
	}

	return v.inner.UpdateIdentity(ctx, update)
}

func (v *IdentityValidationService) BackfillQR(ctx context.Context, limit uint64) (int, error) {
	if limit == 0 {
		return 0, ErrInvalidDataProvided
	}
	return v.inner.BackfillQR(ctx, limit)
}

// ── admin ────────────────────────────────────────────────────────────────────

type AdminValidationService struct {
	inner     AdminService
	validator validators.Validator
}

func NewAdminValidationService() AdminServiceWrapper {
	return &AdminValidationService{
		validator: validators.NewAdminValidator(),
	}
}

func (v *AdminValidationService) Wrap(inner AdminService) AdminService {
	v.inner = inner
	return v
}

func (v *AdminValidationService) Register(ctx context.Context, credentials models.AdminCredentials) (models.Admin, error) {
	credentials.Username = strings.TrimSpace(credentials.Username)
	credentials.Email = normalizeEmail(credentials.Email)

	if err := v.validator.Validate(ctx, credentials, validators.FieldUsername, validators.FieldPassword, validators.FieldAdminEmail); err != nil {
		return models.Admin{}, invalid(err)
	}

	return v.inner.Register(ctx, credentials)
}

func (v *AdminValidationService) Login(ctx context.Context, credentials models.AdminCredentials) (models.Token, error) {
	credentials.Username = strings.TrimSpace(credentials.Username)

	if err := v.validator.Validate(ctx, credentials); err != nil {
		return models.Token{}, invalid(err)
	}

	return v.inner.Login(ctx, credentials)
}

// ── alerts ───────────────────────────────────────────────────────────────────

type AlertValidationService struct {
	inner     AlertService
	validator validators.Validator
}

func NewAlertValidationService() AlertServiceWrapper {
	return &AlertValidationService{
		validator: validators.NewAlertValidator(),
	}
}

func (v *AlertValidationService) Wrap(inner AlertService) AlertService {
	v.inner = inner
	return v
}

func (v *AlertValidationService) CreateUserAlert(ctx context.Context, request models.UserAlertRequest) (models.Alert, error) {
	request.UserEmail = normalizeEmail(request.UserEmail)

	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Alert{}, invalid(err)
	}

	return v.inner.CreateUserAlert(ctx, request)
}

func (v *AlertValidationService) CreateDeviceAlert(ctx context.Context, payload models.DeviceAlertPayload) (models.Alert, error) {
	payload.DeviceID = strings.TrimSpace(payload.DeviceID)

	if err := v.validator.Validate(ctx, payload); err != nil {
		return models.Alert{}, invalid(err)
	}

	return v.inner.CreateDeviceAlert(ctx, payload)
}

func (v *AlertValidationService) ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.AlertView, error) {
	return v.inner.ListAlerts(ctx, filter)
}

func (v *AlertValidationService) ResolveAlert(ctx context.Context, id int64) (models.Alert, error) {
	if id <= 0 {
		return models.Alert{}, ErrInvalidDataProvided
	}
	return v.inner.ResolveAlert(ctx, id)
}
