// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// Hasher computes keyed HMAC-SHA256 digests. hash.Hash instances are pooled
// per Hasher, so one Hasher serves concurrent requests without allocating a
// new HMAC state for each.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a [Hasher] keyed with hashKey.
func NewHasher(hashKey string) *Hasher {
	key := []byte(hashKey)
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Sum returns the HMAC-SHA256 digest of data.
func (h *Hasher) Sum(data []byte) []byte {
	mac := h.pool.Get().(hash.Hash)
	mac.Reset()

	mac.Write(data)
	sum := mac.Sum(nil)

	mac.Reset()
	h.pool.Put(mac)

	return sum
}

// SumHex returns the hex-encoded digest of data.
func (h *Hasher) SumHex(data []byte) string {
	return hex.EncodeToString(h.Sum(data))
}

// Verify reports whether hexDigest is the digest of data, comparing in
// constant time. A digest that is not valid hex never verifies.
func (h *Hasher) Verify(data []byte, hexDigest string) bool {
	expected, err := hex.DecodeString(hexDigest)
	if err != nil {
		return false
	}
	return hmac.Equal(h.Sum(data), expected)
}

// HashString computes an HMAC-SHA256 over data with hashKey and returns it
// hex-encoded. Unlike [Hasher] it allocates a new HMAC on each call.
func HashString(data string, hashKey string) string {
	mac := hmac.New(sha256.New, []byte(hashKey))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
