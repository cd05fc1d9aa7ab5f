// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/safeher/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrRoleMismatch is returned by [ParseAdminToken] for a correctly signed,
// unexpired token whose role claim is not [models.RoleAdmin].
var ErrRoleMismatch = errors.New("token role is not admin")

// GenerateAdminToken signs an admin JWT carrying only the role and exp
// claims, with exp = now + tokenDuration.
//
// algorithm must name an HMAC method (HS256, HS384, HS512).
func GenerateAdminToken(algorithm, signKey string, tokenDuration time.Duration, now time.Time) (models.Token, error) {
	method, err := hmacMethod(algorithm)
	if err != nil {
		return models.Token{}, err
	}
	if signKey == "" || tokenDuration <= 0 {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	claims := models.AdminClaims{
		Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(method, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, Claims: claims, SignedString: tokenString}, nil
}

// ParseAdminToken verifies signature, algorithm and expiry of tokenString
// as of now, then checks the role.
//
// Any verification failure is returned as a wrapped jwt error. A verified
// token with a foreign role yields [ErrRoleMismatch] together with the
// parsed token.
func ParseAdminToken(tokenString, algorithm, signKey string, now func() time.Time) (models.Token, error) {
	if _, err := hmacMethod(algorithm); err != nil {
		return models.Token{}, err
	}

	var claims models.AdminClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithValidMethods([]string{algorithm}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	parsed := models.Token{Token: token, Claims: claims, SignedString: tokenString}
	if claims.Role != models.RoleAdmin {
		return parsed, ErrRoleMismatch
	}

	return parsed, nil
}

// ParseBearerToken extracts the credentials of a "Bearer <token>"
// Authorization header. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" || strings.Contains(token, " ") {
		return "", errors.New("invalid authorization header")
	}
	return token, nil
}

func hmacMethod(algorithm string) (jwt.SigningMethod, error) {
	switch algorithm {
	case jwt.SigningMethodHS256.Alg():
		return jwt.SigningMethodHS256, nil
	case jwt.SigningMethodHS384.Alg():
		return jwt.SigningMethodHS384, nil
	case jwt.SigningMethodHS512.Alg():
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
}
