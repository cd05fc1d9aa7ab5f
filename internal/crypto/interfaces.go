// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the two primitives identity and admin flows are built
// on: the symmetric cipher that turns an identity record into an opaque QR
// token, and the password hasher for admin credentials.
package crypto

import "github.com/MKhiriev/safeher/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// TokenCipher encrypts identity records into opaque text tokens and back.
//
// Decrypt(Encrypt(p)) == p for every payload. A token produced under a
// different key, or altered in any character, fails with [ErrInvalidToken].
type TokenCipher interface {
	Encrypt(payload models.IdentityPayload) (string, error)
	Decrypt(token string) (models.IdentityPayload, error)
}

// PasswordHasher produces and checks salted bcrypt hashes.
type PasswordHasher interface {
	// HashPassword returns a self-describing bcrypt hash. Only the first
	// [MaxPasswordBytes] bytes of password are significant.
	HashPassword(password string) (string, error)

	// VerifyPassword reports whether password matches hash. A mismatch is
	// (false, nil); a structurally invalid hash is [ErrInvalidHash].
	VerifyPassword(password, hash string) (bool, error)
}
