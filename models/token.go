// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role the service ever issues.
const RoleAdmin = "admin"

// AdminClaims is the claim set of an admin authorization token.
//
// Only "role" and "exp" are ever populated: the embedded
// [jwt.RegisteredClaims] marshals its remaining fields with omitempty.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Token wraps a signed admin JWT.
type Token struct {
	// Token is the parsed or freshly built JWT. Excluded from JSON because
	// only the compact string form is meaningful outside the process.
	*jwt.Token `json:"-"`

	// Claims holds the decoded claim set.
	Claims AdminClaims `json:"-"`

	// SignedString is the compact JWS representation
	// (base64url header.payload.signature).
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// AccessTokenResponse is the body returned by a successful admin login.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
