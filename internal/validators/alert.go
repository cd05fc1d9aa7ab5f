// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"math"
	"strings"

	"github.com/MKhiriev/safeher/models"
)

const (
	FieldUserEmail   = "user_email"
	FieldDeviceID    = "device_id"
	FieldCoordinates = "coordinates"
	FieldMedia       = "media"
	FieldEncryptedQR = "encrypted_qr"
)

// maxMediaLength bounds media references and alert messages.
const maxMediaLength = 2048

// AlertValidator implements [Validator] for alert requests and QR scans.
type AlertValidator struct{}

func NewAlertValidator() Validator {
	return &AlertValidator{}
}

func (v *AlertValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UserAlertRequest:
		return v.validateUserAlert(value, fields...)
	case *models.UserAlertRequest:
		return v.validateUserAlert(*value, fields...)

	case models.DeviceAlertPayload:
		return v.validateDeviceAlert(value, fields...)
	case *models.DeviceAlertPayload:
		return v.validateDeviceAlert(*value, fields...)

	case models.ScanRequest:
		return v.validateScan(value, fields...)
	case *models.ScanRequest:
		return v.validateScan(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AlertValidator) validateUserAlert(r models.UserAlertRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserEmail, FieldCoordinates, FieldMedia}
	}

	for _, f := range fields {
		switch f {
		case FieldUserEmail:
			if !IsEmail(r.UserEmail) {
				return ErrInvalidEmail
			}
		case FieldCoordinates:
			if err := validateCoordinates(r.Latitude, r.Longitude); err != nil {
				return err
			}
		case FieldMedia:
			if err := validateMedia(r.AudioURL, r.PhotoURL, r.Message); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AlertValidator) validateDeviceAlert(p models.DeviceAlertPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDeviceID, FieldCoordinates, FieldMedia}
	}

	for _, f := range fields {
		switch f {
		case FieldDeviceID:
			if err := requireText(p.DeviceID, ErrEmptyDeviceID); err != nil {
				return err
			}
		case FieldCoordinates:
			if err := validateCoordinates(p.Latitude, p.Longitude); err != nil {
				return err
			}
		case FieldMedia:
			if err := validateMedia(p.AudioURL, p.PhotoURL, p.Message); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AlertValidator) validateScan(r models.ScanRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEncryptedQR}
	}

	for _, f := range fields {
		switch f {
		case FieldEncryptedQR:
			if strings.TrimSpace(r.EncryptedQR) == "" {
				return ErrEmptyQRToken
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return ErrInvalidLatitude
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return ErrInvalidLongitude
	}
	return nil
}

func validateMedia(values ...string) error {
	for _, s := range values {
		if len(s) > maxMediaLength {
			return ErrFieldTooLong
		}
	}
	return nil
}
