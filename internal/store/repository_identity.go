// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/models"
)

// identityRepository is the SQL implementation of [IdentityRepository]
// working against the "identities" table.
type identityRepository struct {
	*DB
	logger *logger.Logger
}

// NewIdentityRepository constructs an [IdentityRepository] backed by db.
func NewIdentityRepository(db *DB, logger *logger.Logger) IdentityRepository {
	logger.Debug().Msg("creating identity repository")
	return &identityRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateIdentity inserts identity and returns it with the assigned ID.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver error → wrapped [ErrExecutingStatement].
func (r *identityRepository) CreateIdentity(ctx context.Context, identity models.Identity) (models.Identity, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertIdentityQuery(r.builder, identity)
	if err != nil {
		log.Err(err).Str("func", "identityRepository.CreateIdentity").Msg("failed to create query")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.QueryRowContext(ctx, query, args...).Scan(&identity.ID); err != nil {
		class := r.classify(err)
		log.Err(err).
			Str("func", "identityRepository.CreateIdentity").
			Stringer("class", class).
			Msg("failed to insert identity")

		if class == UniqueViolation {
			return models.Identity{}, ErrEmailAlreadyExists
		}
		return models.Identity{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return identity, nil
}

// FindIdentityByEmail returns the identity registered under email or
// [ErrIdentityNotFound].
func (r *identityRepository) FindIdentityByEmail(ctx context.Context, email string) (models.Identity, error) {
	return r.findIdentity(ctx, "identityRepository.FindIdentityByEmail", sq.Eq{"email": email})
}

// FindIdentityByCredentials returns the identity whose email and phone both
// match or [ErrIdentityNotFound].
func (r *identityRepository) FindIdentityByCredentials(ctx context.Context, credentials models.UserCredentials) (models.Identity, error) {
	return r.findIdentity(ctx, "identityRepository.FindIdentityByCredentials", sq.Eq{
		"email": credentials.Email,
		"phone": credentials.Phone,
	})
}

func (r *identityRepository) findIdentity(ctx context.Context, funcName string, where sq.Eq) (models.Identity, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectIdentityQuery(r.builder, where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to create query")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	identity, err := scanIdentity(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Identity{}, ErrIdentityNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to scan identity row")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return identity, nil
}

// UpdateIdentity applies the non-nil fields of update to the identity keyed
// by update.Email and returns the stored result.
func (r *identityRepository) UpdateIdentity(ctx context.Context, update models.IdentityUpdate) (models.Identity, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateIdentityQuery(r.builder, update)
	if err != nil {
		log.Err(err).Str("func", "identityRepository.UpdateIdentity").Msg("failed to create query")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "identityRepository.UpdateIdentity").
			Stringer("class", r.classify(err)).
			Msg("failed to update identity")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.Identity{}, ErrIdentityNotFound
	}

	return r.FindIdentityByEmail(ctx, update.Email)
}

// SetQRPath stores path for the identity unless a path is already set. A
// second call for the same identity changes nothing and is not an error.
func (r *identityRepository) SetQRPath(ctx context.Context, id int64, path string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetQRPathQuery(r.builder, id, path)
	if err != nil {
		log.Err(err).Str("func", "identityRepository.SetQRPath").Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "identityRepository.SetQRPath").
			Int64("identity_id", id).
			Msg("failed to set qr path")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		log.Debug().
			Str("func", "identityRepository.SetQRPath").
			Int64("identity_id", id).
			Msg("qr path already set or identity missing")
	}

	return nil
}

// ListIdentitiesWithoutQR returns identities that still have no QR image,
// oldest first.
func (r *identityRepository) ListIdentitiesWithoutQR(ctx context.Context, limit uint64) ([]models.Identity, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectIdentitiesWithoutQRQuery(r.builder, limit)
	if err != nil {
		log.Err(err).Str("func", "identityRepository.ListIdentitiesWithoutQR").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "identityRepository.ListIdentitiesWithoutQR").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	identities := make([]models.Identity, 0, limit)
	for rows.Next() {
		identity, scanErr := scanIdentity(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "identityRepository.ListIdentitiesWithoutQR").Msg("failed to scan identity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		identities = append(identities, identity)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "identityRepository.ListIdentitiesWithoutQR").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return identities, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdentity(row rowScanner) (models.Identity, error) {
	var identity models.Identity
	err := row.Scan(
		&identity.ID,
		&identity.Name,
		&identity.Email,
		&identity.Phone,
		&identity.VoterID,
		&identity.PanID,
		&identity.EncryptedQR,
		&identity.QRPath,
		&identity.CreatedAt,
	)
	return identity, err
}
