// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/safeher/internal/crypto"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/metrics"
	"github.com/MKhiriev/safeher/internal/qr"
	"github.com/MKhiriev/safeher/internal/store"
	"github.com/MKhiriev/safeher/models"
)

// identityService is the concrete implementation of [IdentityService].
//
// Registration runs: lookup by email → encrypt → insert → render QR →
// attach path. Only the last two steps may fail without failing the
// registration.
type identityService struct {
	identities store.IdentityRepository
	cipher     crypto.TokenCipher
	renderer   qr.Renderer
	metrics    *metrics.Metrics

	// now is replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewIdentityService constructs an [IdentityService]. renderer and m may be
// nil: without a renderer no QR image is produced, without metrics nothing
// is counted.
func NewIdentityService(identities store.IdentityRepository, cipher crypto.TokenCipher, renderer qr.Renderer, m *metrics.Metrics, logger *logger.Logger) IdentityService {
	return &identityService{
		identities: identities,
		cipher:     cipher,
		renderer:   renderer,
		metrics:    m,
		now:        time.Now,
		logger:     logger,
	}
}

// Register implements [IdentityService].
//
// Returns:
//   - [ErrIdentityAlreadyExists] when the email is taken. A concurrent
//     registration that wins the race surfaces the same way through
//     [store.ErrEmailAlreadyExists].
//   - [ErrTokenEncryptionFailed] when the payload cannot be encrypted.
//   - a wrapped storage error otherwise.
func (s *identityService) Register(ctx context.Context, payload models.IdentityPayload) (models.Identity, error) {
	log := logger.FromContext(ctx)

	_, err := s.identities.FindIdentityByEmail(ctx, payload.Email)
	switch {
	case err == nil:
		s.metrics.Registration(metrics.ResultConflict)
		return models.Identity{}, ErrIdentityAlreadyExists
	case !errors.Is(err, store.ErrIdentityNotFound):
		log.Err(err).Str("func", "identityService.Register").Msg("identity lookup failed")
		s.metrics.Registration(metrics.ResultError)
		return models.Identity{}, fmt.Errorf("identity lookup failed: %w", err)
	}

	token, err := s.cipher.Encrypt(payload)
	if err != nil {
		log.Err(err).Str("func", "identityService.Register").Msg("identity encryption failed")
		s.metrics.Registration(metrics.ResultError)
		return models.Identity{}, fmt.Errorf("%w: %w", ErrTokenEncryptionFailed, err)
	}

	identity := models.NewIdentity(payload)
	identity.EncryptedQR = token
	identity.CreatedAt = s.now().UTC()

	created, err := s.identities.CreateIdentity(ctx, identity)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		s.metrics.Registration(metrics.ResultConflict)
		return models.Identity{}, fmt.Errorf("%w: %w", ErrIdentityAlreadyExists, err)
	}
	if err != nil {
		log.Err(err).Str("func", "identityService.Register").Msg("identity creation failed")
		s.metrics.Registration(metrics.ResultError)
		return models.Identity{}, fmt.Errorf("identity creation failed: %w", err)
	}

	if path, err := s.attachQR(ctx, created); err == nil {
		created.QRPath = path
	}

	log.Info().
		Str("func", "identityService.Register").
		Int64("identity_id", created.ID).
		Bool("qr_rendered", created.QRPath != "").
		Msg("identity registered")
	s.metrics.Registration(metrics.ResultOK)

	return created, nil
}

// attachQR renders the QR image of identity and stores its path. A failure
// is logged and counted, and the identity keeps an empty path.
func (s *identityService) attachQR(ctx context.Context, identity models.Identity) (string, error) {
	log := logger.FromContext(ctx)

	if s.renderer == nil {
		return "", errors.New("no qr renderer configured")
	}

	path, err := s.renderer.Render(identity.EncryptedQR, strconv.FormatInt(identity.ID, 10))
	if err != nil {
		log.Warn().Err(err).
			Str("func", "identityService.attachQR").
			Int64("identity_id", identity.ID).
			Msg("qr rendering failed")
		s.metrics.QRRenderFailed()
		return "", err
	}

	if err = s.identities.SetQRPath(ctx, identity.ID, path); err != nil {
		log.Warn().Err(err).
			Str("func", "identityService.attachQR").
			Int64("identity_id", identity.ID).
			Msg("storing qr path failed")
		s.metrics.QRRenderFailed()
		return "", err
	}

	return path, nil
}

// Login implements [IdentityService]. An unknown email or a phone that does
// not match yields [ErrWrongCredentials].
func (s *identityService) Login(ctx context.Context, credentials models.UserCredentials) (models.Identity, error) {
	identity, err := s.identities.FindIdentityByCredentials(ctx, credentials)
	if errors.Is(err, store.ErrIdentityNotFound) {
		return models.Identity{}, ErrWrongCredentials
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "identityService.Login").Msg("identity lookup failed")
		return models.Identity{}, fmt.Errorf("identity lookup failed: %w", err)
	}

	return identity, nil
}

// Scan implements [IdentityService].
//
// Returns [crypto.ErrInvalidToken] for a token that does not decrypt and
// [store.ErrIdentityNotFound] when the decrypted email is no longer stored.
// Decrypted contents are never logged.
func (s *identityService) Scan(ctx context.Context, token string) (models.IdentityPayload, error) {
	log := logger.FromContext(ctx)

	decrypted, err := s.cipher.Decrypt(token)
	if err != nil {
		log.Info().Str("func", "identityService.Scan").Msg("qr token rejected")
		s.metrics.Scan(metrics.ResultInvalid)
		return models.IdentityPayload{}, err
	}

	identity, err := s.identities.FindIdentityByEmail(ctx, decrypted.Email)
	if errors.Is(err, store.ErrIdentityNotFound) {
		s.metrics.Scan(metrics.ResultNotFound)
		return models.IdentityPayload{}, err
	}
	if err != nil {
		log.Err(err).Str("func", "identityService.Scan").Msg("identity lookup failed")
		s.metrics.Scan(metrics.ResultError)
		return models.IdentityPayload{}, fmt.Errorf("identity lookup failed: %w", err)
	}

	s.metrics.Scan(metrics.ResultOK)
	return identity.Payload(), nil
}

// UpdateIdentity implements [IdentityService]. The QR token issued at
// registration is left untouched: scans always read the stored record.
func (s *identityService) UpdateIdentity(ctx context.Context, update models.IdentityUpdate) (models.Identity, error) {
	identity, err := s.identities.UpdateIdentity(ctx, update)
	if err != nil {
		if !errors.Is(err, store.ErrIdentityNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", "identityService.UpdateIdentity").Msg("identity update failed")
		}
		return models.Identity{}, fmt.Errorf("identity update failed: %w", err)
	}

	return identity, nil
}

// BackfillQR implements [IdentityService]. It stops early when ctx is done
// and returns the number of images attached so far.
func (s *identityService) BackfillQR(ctx context.Context, limit uint64) (int, error) {
	pending, err := s.identities.ListIdentitiesWithoutQR(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("listing identities without qr failed: %w", err)
	}

	attached := 0
	for _, identity := range pending {
		if err = ctx.Err(); err != nil {
			return attached, err
		}
		if _, err = s.attachQR(ctx, identity); err == nil {
			attached++
		}
	}

	return attached, nil
}
