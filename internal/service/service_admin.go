// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/safeher/internal/crypto"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/metrics"
	"github.com/MKhiriev/safeher/internal/store"
	"github.com/MKhiriev/safeher/models"
)

// adminService is the concrete implementation of [AdminService].
type adminService struct {
	admins         store.AdminRepository
	hasher         crypto.PasswordHasher
	tokens         TokenService
	signupDisabled bool
	metrics        *metrics.Metrics
	now            func() time.Time
	logger         *logger.Logger
}

// NewAdminService constructs an [AdminService]. When signupDisabled is set,
// Register always fails with [ErrSignupDisabled].
func NewAdminService(admins store.AdminRepository, hasher crypto.PasswordHasher, tokens TokenService, signupDisabled bool, m *metrics.Metrics, logger *logger.Logger) AdminService {
	return &adminService{
		admins:         admins,
		hasher:         hasher,
		tokens:         tokens,
		signupDisabled: signupDisabled,
		metrics:        m,
		now:            time.Now,
		logger:         logger,
	}
}

// Register hashes the password and stores a new admin.
// A taken username yields [ErrAdminAlreadyExists].
func (s *adminService) Register(ctx context.Context, credentials models.AdminCredentials) (models.Admin, error) {
	log := logger.FromContext(ctx)

	if s.signupDisabled {
		return models.Admin{}, ErrSignupDisabled
	}

	hash, err := s.hasher.HashPassword(credentials.Password)
	if err != nil {
		log.Err(err).Str("func", "adminService.Register").Msg("password hashing failed")
		return models.Admin{}, fmt.Errorf("password hashing failed: %w", err)
	}

	admin, err := s.admins.CreateAdmin(ctx, models.Admin{
		Username:     credentials.Username,
		Email:        credentials.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, store.ErrUsernameAlreadyExists) {
		return models.Admin{}, fmt.Errorf("%w: %w", ErrAdminAlreadyExists, err)
	}
	if err != nil {
		log.Err(err).Str("func", "adminService.Register").Msg("admin creation failed")
		return models.Admin{}, fmt.Errorf("admin creation failed: %w", err)
	}

	log.Info().Str("func", "adminService.Register").Str("username", admin.Username).Msg("admin registered")
	return admin, nil
}

// Login checks the password of the named admin and issues a token.
//
// Returns [ErrWrongCredentials] for an unknown username or a wrong password,
// and a wrapped [crypto.ErrInvalidHash] when the stored hash is corrupt.
func (s *adminService) Login(ctx context.Context, credentials models.AdminCredentials) (models.Token, error) {
	log := logger.FromContext(ctx)

	admin, err := s.admins.FindAdminByUsername(ctx, credentials.Username)
	if errors.Is(err, store.ErrAdminNotFound) {
		s.metrics.AdminLogin(metrics.ResultInvalid)
		return models.Token{}, ErrWrongCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "adminService.Login").Msg("admin lookup failed")
		s.metrics.AdminLogin(metrics.ResultError)
		return models.Token{}, fmt.Errorf("admin lookup failed: %w", err)
	}

	ok, err := s.hasher.VerifyPassword(credentials.Password, admin.PasswordHash)
	if err != nil {
		log.Err(err).Str("func", "adminService.Login").Str("username", admin.Username).Msg("stored password hash is invalid")
		s.metrics.AdminLogin(metrics.ResultError)
		return models.Token{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		log.Info().Str("func", "adminService.Login").Str("username", admin.Username).Msg("wrong password")
		s.metrics.AdminLogin(metrics.ResultInvalid)
		return models.Token{}, ErrWrongCredentials
	}

	token, err := s.tokens.IssueAdminToken(ctx)
	if err != nil {
		log.Err(err).Str("func", "adminService.Login").Msg("token issuing failed")
		s.metrics.AdminLogin(metrics.ResultError)
		return models.Token{}, err
	}

	s.metrics.AdminLogin(metrics.ResultOK)
	return token, nil
}
