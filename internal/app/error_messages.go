// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// SafeHer server handlers, middleware and the CLI client.
//
// Msg* constants are the human-readable strings written into the "detail"
// or "message" field of HTTP responses. Keeping them in one place keeps the
// wording consistent throughout the API.
package app

// Error details.
const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials is returned for a failed user or admin login.
	// It never says which part of the credentials was wrong.
	MsgInvalidCredentials = "invalid credentials"

	// MsgInternalServerError is returned for any failure the client cannot
	// resolve. It never carries the underlying error text.
	MsgInternalServerError = "internal server error"

	// MsgUnauthorized is returned for a missing, malformed, expired or
	// wrongly signed admin token.
	MsgUnauthorized = "invalid token"

	// MsgForbidden is returned for a valid token without the admin role.
	MsgForbidden = "insufficient permissions"

	MsgQRRequired   = "QR required"
	MsgInvalidQR    = "invalid QR data"
	MsgUserNotFound = "user not found"

	MsgAlertNotFound = "alert not found"

	MsgUserAlreadyExists  = "user with this email already exists"
	MsgAdminAlreadyExists = "admin already exists"

	// MsgIntegrityCheckFailed is returned when a device report's HMAC does
	// not match its payload.
	MsgIntegrityCheckFailed = "integrity check failed"

	MsgTooManyRequests    = "too many requests"
	MsgNotFound           = "not found"
	MsgStorageUnavailable = "storage unavailable"
)

// Success messages.
const (
	MsgUserRegistered    = "User registered"
	MsgLoginSuccessful   = "Login successful"
	MsgAlertCreated      = "Emergency alert created"
	MsgAdminRegistered   = "Admin registered successfully"
	MsgAlertResolved     = "Alert resolved"
	MsgIdentityUpdated   = "Identity updated"
	MsgDeviceAlertStored = "SOS received"
)

// ScanStatusValid is the status of a successful QR verification.
const ScanStatusValid = "VALID"

// TokenTypeBearer is the token_type of an admin login response.
const TokenTypeBearer = "bearer"

// HealthStatusOK and HealthStatusUnavailable are the statuses reported by
// the health endpoint.
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)
