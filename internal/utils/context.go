// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helpers used across the server and
// the CLI: type-safe context keys, HMAC hashing, JSON request and response
// helpers, the resty HTTP client wrapper, admin JWT generation and parsing,
// and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/safeher/models"
)

// contextKey is a private type for context keys, so values stored by this
// package cannot collide with string keys of other packages.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

var (
	// AdminClaimsCtxKey stores the verified [models.AdminClaims] of the
	// request's bearer token.
	AdminClaimsCtxKey = contextKey("adminClaims")

	// TraceIDCtxKey stores the request trace identifier.
	TraceIDCtxKey = contextKey("traceID")
)

// WithAdminClaims returns a copy of ctx carrying claims.
func WithAdminClaims(ctx context.Context, claims models.AdminClaims) context.Context {
	return context.WithValue(ctx, AdminClaimsCtxKey, claims)
}

// GetAdminClaimsFromContext returns the admin claims attached by the auth
// middleware. ok is false on unauthenticated contexts.
func GetAdminClaimsFromContext(ctx context.Context) (models.AdminClaims, bool) {
	claims, ok := ctx.Value(AdminClaimsCtxKey).(models.AdminClaims)
	return claims, ok
}

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDCtxKey, traceID)
}

// GetTraceIDFromContext returns the trace identifier of the request, or an
// empty string.
func GetTraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDCtxKey).(string)
	return traceID
}
