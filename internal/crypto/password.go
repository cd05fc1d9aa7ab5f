// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MaxPasswordBytes is the bcrypt input limit; longer passwords are
	// truncated before hashing and verification.
	MaxPasswordBytes = 72
	// PasswordCost is the bcrypt work factor (2^12 rounds).
	PasswordCost = 12
)

type bcryptHasher struct {
	cost int
}

// NewPasswordHasher returns a bcrypt [PasswordHasher] with cost [PasswordCost].
func NewPasswordHasher() PasswordHasher {
	return &bcryptHasher{cost: PasswordCost}
}

// HashPassword implements [PasswordHasher].
func (h *bcryptHasher) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword implements [PasswordHasher].
func (h *bcryptHasher) VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrInvalidHash
	}
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > MaxPasswordBytes {
		b = b[:MaxPasswordBytes]
	}
	return b
}
