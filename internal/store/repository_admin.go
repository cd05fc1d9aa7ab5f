// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/models"
)

// adminRepository is the SQL implementation of [AdminRepository].
type adminRepository struct {
	*DB
	logger *logger.Logger
}

// NewAdminRepository constructs an [AdminRepository] backed by db.
func NewAdminRepository(db *DB, logger *logger.Logger) AdminRepository {
	logger.Debug().Msg("creating admin repository")
	return &adminRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateAdmin persists admin and returns it with the assigned ID. A taken
// username yields [ErrUsernameAlreadyExists].
func (r *adminRepository) CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAdminQuery(r.builder, admin)
	if err != nil {
		log.Err(err).Str("func", "adminRepository.CreateAdmin").Msg("failed to create query")
		return models.Admin{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.QueryRowContext(ctx, query, args...).Scan(&admin.ID); err != nil {
		class := r.classify(err)
		log.Err(err).
			Str("func", "adminRepository.CreateAdmin").
			Stringer("class", class).
			Msg("failed to insert admin")

		if class == UniqueViolation {
			return models.Admin{}, ErrUsernameAlreadyExists
		}
		return models.Admin{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return admin, nil
}

// FindAdminByUsername returns the admin with the given username or
// [ErrAdminNotFound].
func (r *adminRepository) FindAdminByUsername(ctx context.Context, username string) (models.Admin, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAdminByUsernameQuery(r.builder, username)
	if err != nil {
		log.Err(err).Str("func", "adminRepository.FindAdminByUsername").Msg("failed to create query")
		return models.Admin{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var admin models.Admin
	err = r.QueryRowContext(ctx, query, args...).
		Scan(&admin.ID, &admin.Username, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, ErrAdminNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "adminRepository.FindAdminByUsername").Msg("failed to scan admin row")
		return models.Admin{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return admin, nil
}
