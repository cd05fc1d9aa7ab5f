// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName        = errors.New("name is required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrEmptyPhone       = errors.New("phone is required")
	ErrEmptyVoterID     = errors.New("voter id is required")
	ErrEmptyPanID       = errors.New("pan id is required")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")

	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")

	ErrInvalidLatitude  = errors.New("latitude must be within [-90, 90]")
	ErrInvalidLongitude = errors.New("longitude must be within [-180, 180]")
	ErrEmptyDeviceID    = errors.New("device id is required")
	ErrEmptyQRToken     = errors.New("QR required")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
)
