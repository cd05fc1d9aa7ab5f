// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrInvalidToken is returned for any token that does not decode,
	// authenticate or deserialize. It never carries decrypted content.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidHash is returned when a stored password hash is malformed.
	ErrInvalidHash = errors.New("invalid password hash")
	// ErrInvalidKey is returned for an encryption key of the wrong size.
	ErrInvalidKey = errors.New("invalid encryption key")
)
