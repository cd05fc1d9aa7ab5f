// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced inside this package. Callers can match against
// them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidPathParam is returned for a malformed URL parameter.
	ErrInvalidPathParam = errors.New("invalid path parameter")

	// ErrIntegrityCheckFailed is returned when a device report hash does
	// not match its payload.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrRateLimited is returned when a client exceeds its request budget.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrRouteNotFound is returned for unknown routes and for known routes
	// requested with an unregistered method.
	ErrRouteNotFound = errors.New("route not found")
)
