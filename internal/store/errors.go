// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an identity with the same email
	// is already stored. It is also the outcome of a lost race between two
	// concurrent registrations, detected by the UNIQUE constraint.
	ErrEmailAlreadyExists = errors.New("identity email already exists")

	// ErrUsernameAlreadyExists is returned when an admin with the same
	// username is already stored.
	ErrUsernameAlreadyExists = errors.New("admin username already exists")

	// ErrIdentityNotFound is returned when no identity matches a lookup.
	ErrIdentityNotFound = errors.New("identity was not found")

	// ErrAdminNotFound is returned when no admin matches a username.
	ErrAdminNotFound = errors.New("admin was not found")

	// ErrAlertNotFound is returned when no alert matches an id.
	ErrAlertNotFound = errors.New("alert was not found")

	// ErrUnsupportedDriver is returned for a database driver other than pgx
	// and sqlite3.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. They are wrapped around the driver
// error, whose text never includes the DSN.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or UPDATE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
