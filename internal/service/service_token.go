// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/safeher/internal/config"
	"github.com/MKhiriev/safeher/internal/utils"
	"github.com/MKhiriev/safeher/models"
)

// tokenService is the stateless JWT implementation of [TokenService].
type tokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenSignAlgorithm is the only accepted "alg" header value.
	tokenSignAlgorithm string

	// tokenDuration is the lifetime of issued tokens.
	tokenDuration time.Duration

	// now is the clock tokens are issued and verified against.
	now func() time.Time
}

// NewTokenService constructs a [TokenService] from the signing settings of
// cfg. The returned service is safe for concurrent use.
func NewTokenService(cfg config.App) TokenService {
	return &tokenService{
		tokenSignKey:       cfg.TokenSignKey,
		tokenSignAlgorithm: cfg.TokenSignAlgorithm,
		tokenDuration:      cfg.TokenDuration,
		now:                time.Now,
	}
}

// IssueAdminToken signs a token carrying role=admin and exp=now+duration.
func (s *tokenService) IssueAdminToken(ctx context.Context) (models.Token, error) {
	token, err := utils.GenerateAdminToken(s.tokenSignAlgorithm, s.tokenSignKey, s.tokenDuration, s.now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// VerifyAdminToken checks signature, algorithm and expiry of tokenString,
// then its role. Signature, expiry and format failures are all
// [ErrUnauthorized]; only a verified token with a foreign role is
// [ErrForbidden].
func (s *tokenService) VerifyAdminToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ParseAdminToken(tokenString, s.tokenSignAlgorithm, s.tokenSignKey, s.now)
	if errors.Is(err, utils.ErrRoleMismatch) {
		return models.Token{}, ErrForbidden
	}
	if err != nil {
		return models.Token{}, ErrUnauthorized
	}

	return token, nil
}
