// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/utils"
)

// auth is an HTTP middleware that guards admin routes.
//
// It extracts the bearer token from the "Authorization" header, verifies it
// via [service.TokenService.VerifyAdminToken] and stores the verified claims
// in the request context under [utils.AdminClaimsCtxKey].
//
// A missing or malformed header and any verification failure answer 401;
// a valid token without the admin role answers 403. The token itself is
// never logged.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		ctx := r.Context()
		token, err := h.services.TokenService.VerifyAdminToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		log.Debug().Str("role", token.Claims.Role).Msg("admin token verified")

		next.ServeHTTP(w, r.WithContext(utils.WithAdminClaims(ctx, token.Claims)))
	})
}
