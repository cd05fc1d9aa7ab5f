// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrIdentityAlreadyExists is returned when the email of a registration
	// is taken, whether found by the pre-check or by the UNIQUE constraint.
	ErrIdentityAlreadyExists = errors.New("user with this email already exists")
	ErrAdminAlreadyExists    = errors.New("admin with this username already exists")

	// ErrWrongCredentials is returned when a login does not match a stored
	// account. It never tells which part of the credentials was wrong.
	ErrWrongCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned for a missing, malformed, expired or
	// wrongly signed admin token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned for a correctly signed, unexpired token whose
	// role is not admin.
	ErrForbidden = errors.New("forbidden")

	ErrSignupDisabled        = errors.New("admin signup is disabled")
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrTokenEncryptionFailed = errors.New("identity encryption failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrStorageUnavailable    = errors.New("storage is unavailable")
)
