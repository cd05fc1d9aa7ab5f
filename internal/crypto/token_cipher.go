// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MKhiriev/safeher/models"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// tokenEncoding is unpadded URL-safe base64 in strict mode, so a token is
// safe inside a QR image and a URL, and a changed trailing character is
// rejected instead of decoding to the same bytes.
var tokenEncoding = base64.RawURLEncoding.Strict()

type aesTokenCipher struct {
	aead cipher.AEAD
}

// NewTokenCipher builds an AES-256-GCM [TokenCipher] over key.
//
// Token layout: base64url(nonce ‖ ciphertext ‖ tag), where the plaintext is
// the JSON encoding of [models.IdentityPayload].
func NewTokenCipher(key []byte) (TokenCipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &aesTokenCipher{aead: gcm}, nil
}

// Encrypt implements [TokenCipher].
func (c *aesTokenCipher) Encrypt(payload models.IdentityPayload) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := c.aead.Seal(nonce, nonce, plaintext, nil)
	return tokenEncoding.EncodeToString(blob), nil
}

// Decrypt implements [TokenCipher]. Every failure is reported as
// [ErrInvalidToken] and nothing is returned alongside it.
func (c *aesTokenCipher) Decrypt(token string) (models.IdentityPayload, error) {
	blob, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return models.IdentityPayload{}, ErrInvalidToken
	}

	nonceSize := c.aead.NonceSize()
	if len(blob) < nonceSize+c.aead.Overhead() {
		return models.IdentityPayload{}, ErrInvalidToken
	}

	plaintext, err := c.aead.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
	if err != nil {
		return models.IdentityPayload{}, ErrInvalidToken
	}

	var payload models.IdentityPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return models.IdentityPayload{}, ErrInvalidToken
	}

	return payload, nil
}
