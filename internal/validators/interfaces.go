// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request models before they reach storage.
//
// IdentityValidator covers registration payloads, user credentials and the
// partial identity corrections applied by admins. AdminValidator covers
// admin login and signup. AlertValidator covers user emergency alerts and
// device SOS reports, including coordinate ranges and media references.
//
// Every failure is one of the sentinel errors in errors.go, which the
// service and HTTP layers map to a 400 response.
package validators

import "context"

// Validator checks obj and returns the first violated rule. When fields are
// given, only those fields are checked; the meaning of each field name is
// defined by the implementation.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
