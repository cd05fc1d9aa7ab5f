// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result of [ErrorClassificator.Classify].
type ErrorClassification int

const (
	// Unclassified is any error the classifier does not recognise.
	Unclassified ErrorClassification = iota

	// UniqueViolation means an INSERT or UPDATE hit a UNIQUE or PRIMARY KEY
	// constraint.
	UniqueViolation

	// ConstraintViolation means another integrity constraint (NOT NULL,
	// CHECK, FOREIGN KEY) rejected the statement.
	ConstraintViolation

	// Transient means the statement may succeed if attempted again
	// (connection loss, deadlock, locked database). Nothing in this package
	// retries; the classification is only logged.
	Transient
)

// String implements fmt.Stringer for log output.
func (c ErrorClassification) String() string {
	switch c {
	case UniqueViolation:
		return "unique_violation"
	case ConstraintViolation:
		return "constraint_violation"
	case Transient:
		return "transient"
	default:
		return "unclassified"
	}
}

// ErrorClassificator maps driver errors of one SQL dialect to an
// [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier implements [ErrorClassificator] for errors of the
// pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return Unclassified
	}

	return ClassifyPgError(pgErr)
}

// ClassifyPgError maps a *pgconn.PgError by its SQLSTATE code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return UniqueViolation

	// Class 23 integrity constraint violations
	case pgerrcode.IntegrityConstraintViolation,
		pgerrcode.RestrictViolation,
		pgerrcode.NotNullViolation,
		pgerrcode.ForeignKeyViolation,
		pgerrcode.CheckViolation:
		return ConstraintViolation

	// Class 08 connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		// Class 40 transaction rollback
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		// Class 57 operator intervention
		pgerrcode.CannotConnectNow,
		pgerrcode.AdminShutdown:
		return Transient
	}

	return Unclassified
}

// SQLiteErrorClassifier implements [ErrorClassificator] for errors of the
// go-sqlite3 driver.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if err == nil || !errors.As(err, &sqliteErr) {
		return Unclassified
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return UniqueViolation
	case sqlite3.ErrConstraintNotNull, sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintForeignKey:
		return ConstraintViolation
	}

	switch sqliteErr.Code {
	case sqlite3.ErrConstraint:
		return ConstraintViolation
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Transient
	}

	return Unclassified
}
