// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func fastHasher() PasswordHasher {
	return &bcryptHasher{cost: bcrypt.MinCost}
}

func TestNewPasswordHasher_Cost(t *testing.T) {
	hash, err := NewPasswordHasher().HashPassword("secret")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
}

func TestPasswordHasher_Verify(t *testing.T) {
	h := fastHasher()

	hash, err := h.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotContains(t, hash, "correct horse")

	ok, err := h.VerifyPassword("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.VerifyPassword("correct horsE", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.VerifyPassword("", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_Salted(t *testing.T) {
	h := fastHasher()

	h1, err := h.HashPassword("same")
	require.NoError(t, err)
	h2, err := h.HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestPasswordHasher_Truncation(t *testing.T) {
	h := fastHasher()

	base := strings.Repeat("p", MaxPasswordBytes)
	long := base + "tail-one"

	hash, err := h.HashPassword(long)
	require.NoError(t, err)

	ok, err := h.VerifyPassword(long, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	// Bytes past the limit are not significant.
	ok, err = h.VerifyPassword(base+"tail-two", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.VerifyPassword(base, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	// A difference inside the first 72 bytes is.
	ok, err = h.VerifyPassword("q"+long[1:], hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_InvalidHash(t *testing.T) {
	h := fastHasher()

	for _, hash := range []string{
		"",
		"plaintext",
		"$2a$",
		"$9z$12$abcdefghijklmnopqrstuuABCDEFGHIJKLMNOPQRSTUVWXYZ01234",
		"$2a$99$abcdefghijklmnopqrstuuABCDEFGHIJKLMNOPQRSTUVWXYZ01234",
	} {
		ok, err := h.VerifyPassword("anything", hash)
		assert.ErrorIs(t, err, ErrInvalidHash, "hash %q", hash)
		assert.False(t, ok)
	}
}
