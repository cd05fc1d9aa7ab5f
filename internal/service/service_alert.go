// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/metrics"
	"github.com/MKhiriev/safeher/internal/store"
	"github.com/MKhiriev/safeher/models"
)

const (
	// MaxAlertsListed is the default and the upper bound of an alert listing.
	MaxAlertsListed = 50

	// Media stored in the SOS bucket of the storage host is listed by the
	// object key that follows sosMediaPrefix.
	sosMediaHost   = "supabase.co"
	sosMediaPrefix = "/sos-media/"

	deviceEmailDomain = "device.local"
	unknownOwner      = "Unknown"
)

// alertService is the concrete implementation of [AlertService].
type alertService struct {
	alerts     store.AlertRepository
	identities store.IdentityRepository
	metrics    *metrics.Metrics
	now        func() time.Time
	logger     *logger.Logger
}

func NewAlertService(alerts store.AlertRepository, identities store.IdentityRepository, m *metrics.Metrics, logger *logger.Logger) AlertService {
	return &alertService{
		alerts:     alerts,
		identities: identities,
		metrics:    m,
		now:        time.Now,
		logger:     logger,
	}
}

// CreateUserAlert records an alert raised by a registered user.
// An unknown email yields [store.ErrIdentityNotFound].
func (s *alertService) CreateUserAlert(ctx context.Context, request models.UserAlertRequest) (models.Alert, error) {
	if _, err := s.identities.FindIdentityByEmail(ctx, request.UserEmail); err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			return models.Alert{}, err
		}
		return models.Alert{}, fmt.Errorf("identity lookup failed: %w", err)
	}

	return s.create(ctx, models.Alert{
		Source:    models.AlertSourceUser,
		UserEmail: request.UserEmail,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
		AudioURL:  request.AudioURL,
		PhotoURL:  request.PhotoURL,
		Message:   request.Message,
	})
}

// CreateDeviceAlert records an alert pushed by an SOS device. The caller is
// responsible for having verified the report signature.
func (s *alertService) CreateDeviceAlert(ctx context.Context, payload models.DeviceAlertPayload) (models.Alert, error) {
	return s.create(ctx, models.Alert{
		Source:    models.AlertSourceDevice,
		DeviceID:  payload.DeviceID,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		AudioURL:  payload.AudioURL,
		PhotoURL:  payload.PhotoURL,
		Message:   payload.Message,
	})
}

func (s *alertService) create(ctx context.Context, alert models.Alert) (models.Alert, error) {
	log := logger.FromContext(ctx)

	alert.CreatedAt = s.now().UTC()
	created, err := s.alerts.CreateAlert(ctx, alert)
	if err != nil {
		log.Err(err).Str("func", "alertService.create").Str("source", string(alert.Source)).Msg("alert creation failed")
		return models.Alert{}, fmt.Errorf("alert creation failed: %w", err)
	}

	log.Warn().
		Str("func", "alertService.create").
		Int64("alert_id", created.ID).
		Str("source", string(created.Source)).
		Msg("emergency alert recorded")
	s.metrics.AlertCreated(string(created.Source))

	return created, nil
}

// ListAlerts returns the newest alerts first. A limit of zero or above
// [MaxAlertsListed] is clamped to [MaxAlertsListed].
func (s *alertService) ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.AlertView, error) {
	if filter.Limit == 0 || filter.Limit > MaxAlertsListed {
		filter.Limit = MaxAlertsListed
	}

	records, err := s.alerts.ListAlerts(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "alertService.ListAlerts").Msg("alert listing failed")
		return nil, fmt.Errorf("alert listing failed: %w", err)
	}

	views := make([]models.AlertView, 0, len(records))
	for _, record := range records {
		views = append(views, toAlertView(record))
	}

	return views, nil
}

// ResolveAlert marks the alert resolved at the current time.
func (s *alertService) ResolveAlert(ctx context.Context, id int64) (models.Alert, error) {
	alert, err := s.alerts.ResolveAlert(ctx, id, s.now().UTC())
	if err != nil {
		if !errors.Is(err, store.ErrAlertNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", "alertService.ResolveAlert").Int64("alert_id", id).Msg("alert resolve failed")
		}
		return models.Alert{}, fmt.Errorf("alert resolve failed: %w", err)
	}

	s.metrics.AlertResolved()
	return alert, nil
}

// toAlertView projects a stored alert for the admin listing. Device alerts
// get a synthetic owner derived from the device id.
func toAlertView(record models.AlertRecord) models.AlertView {
	view := models.AlertView{
		ID:         record.ID,
		Source:     record.Source,
		DeviceID:   record.DeviceID,
		UserName:   record.OwnerName,
		UserPhone:  record.OwnerPhone,
		UserEmail:  record.UserEmail,
		Latitude:   record.Latitude,
		Longitude:  record.Longitude,
		PhotoURL:   MediaKey(record.PhotoURL),
		AudioURL:   MediaKey(record.AudioURL),
		Message:    record.Message,
		CreatedAt:  record.CreatedAt,
		Resolved:   record.Resolved,
		ResolvedAt: record.ResolvedAt,
	}

	if record.Source == models.AlertSourceDevice {
		view.UserName = record.DeviceID
		view.UserPhone = models.NotAvailable
		view.UserEmail = record.DeviceID + "@" + deviceEmailDomain
		if view.Message == "" {
			view.Message = "SOS Alert from " + record.DeviceID
		}
		return view
	}

	if view.UserName == "" {
		view.UserName = unknownOwner
	}
	if view.UserPhone == "" {
		view.UserPhone = models.NotAvailable
	}
	return view
}

// MediaKey reduces a media URL inside the SOS bucket of the storage host to
// its object key. Other values are returned unchanged.
func MediaKey(url string) string {
	if !strings.Contains(url, sosMediaHost) {
		return url
	}
	if i := strings.LastIndex(url, sosMediaPrefix); i >= 0 {
		return url[i+len(sosMediaPrefix):]
	}
	return url
}
