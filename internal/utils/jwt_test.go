// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/safeher/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSignKey = "test-sign-key"

var issuedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func at(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateAdminToken_Claims(t *testing.T) {
	token, err := GenerateAdminToken("HS256", testSignKey, 2*time.Hour, issuedAt)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parts := strings.Split(token.SignedString, ".")
	require.Len(t, parts, 3)

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal(raw, &claims))
	assert.Equal(t, map[string]any{
		"role": "admin",
		"exp":  float64(issuedAt.Add(2 * time.Hour).Unix()),
	}, claims)
}

func TestGenerateAdminToken_InvalidParams(t *testing.T) {
	_, err := GenerateAdminToken("RS256", testSignKey, time.Hour, issuedAt)
	assert.Error(t, err)

	_, err = GenerateAdminToken("HS256", "", time.Hour, issuedAt)
	assert.Error(t, err)

	_, err = GenerateAdminToken("HS256", testSignKey, 0, issuedAt)
	assert.Error(t, err)
}

func TestParseAdminToken_Lifetime(t *testing.T) {
	token, err := GenerateAdminToken("HS384", testSignKey, 2*time.Hour, issuedAt)
	require.NoError(t, err)

	parsed, err := ParseAdminToken(token.SignedString, "HS384", testSignKey, at(issuedAt.Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, parsed.Claims.Role)

	_, err = ParseAdminToken(token.SignedString, "HS384", testSignKey, at(issuedAt.Add(3*time.Hour)))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseAdminToken_Rejections(t *testing.T) {
	token, err := GenerateAdminToken("HS256", testSignKey, 2*time.Hour, issuedAt)
	require.NoError(t, err)
	now := at(issuedAt.Add(time.Minute))

	tests := []struct {
		name      string
		token     string
		algorithm string
		key       string
	}{
		{name: "wrong key", token: token.SignedString, algorithm: "HS256", key: "other"},
		{name: "algorithm mismatch", token: token.SignedString, algorithm: "HS512", key: testSignKey},
		{name: "malformed", token: "not.a.jwt", algorithm: "HS256", key: testSignKey},
		{name: "empty", token: "", algorithm: "HS256", key: testSignKey},
		{name: "tampered payload", token: withPayload(t, token.SignedString, `{"role":"admin","exp":4102444800}`), algorithm: "HS256", key: testSignKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAdminToken(tt.token, tt.algorithm, tt.key, now)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrRoleMismatch)
		})
	}
}

func withPayload(t *testing.T, signed, payload string) string {
	t.Helper()
	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(payload))
	return strings.Join(parts, ".")
}

func TestParseAdminToken_NoneAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, models.AdminClaims{
		Role:             models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour))},
	})
	s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAdminToken(s, "HS256", testSignKey, at(issuedAt))
	assert.Error(t, err)
}

func TestParseAdminToken_MissingExpiry(t *testing.T) {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.AdminClaims{Role: models.RoleAdmin}).
		SignedString([]byte(testSignKey))
	require.NoError(t, err)

	_, err = ParseAdminToken(s, "HS256", testSignKey, at(issuedAt))
	assert.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)
}

func TestParseAdminToken_RoleMismatch(t *testing.T) {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.AdminClaims{
		Role:             "user",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour))},
	}).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	parsed, err := ParseAdminToken(s, "HS256", testSignKey, at(issuedAt))
	assert.ErrorIs(t, err, ErrRoleMismatch)
	assert.Equal(t, "user", parsed.Claims.Role)
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer token", want: "token"},
		{header: "  Bearer   token  ", want: "token"},
		{header: "", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "Bearer ", wantErr: true},
		{header: "Basic dXNlcjpwYXNz", wantErr: true},
		{header: "Bearer a b", wantErr: true},
		{header: "token-only", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
