// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/safeher/internal/app"
	"github.com/MKhiriev/safeher/internal/crypto"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/service"
	"github.com/MKhiriev/safeher/internal/store"
	"github.com/MKhiriev/safeher/internal/utils"
	"github.com/MKhiriev/safeher/internal/validators"
	"github.com/MKhiriev/safeher/models"
)

type errorMapping struct {
	target error
	status int
	detail string
}

// errorTable is matched in order; the first target found in the error
// chain wins. Wrapped store errors under a service sentinel therefore map
// by the service sentinel.
var errorTable = []errorMapping{
	{ErrInvalidJSON, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{ErrInvalidPathParam, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{ErrIntegrityCheckFailed, http.StatusBadRequest, app.MsgIntegrityCheckFailed},
	{ErrRateLimited, http.StatusTooManyRequests, app.MsgTooManyRequests},
	{ErrRouteNotFound, http.StatusNotFound, app.MsgNotFound},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, app.MsgUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, app.MsgUnauthorized},

	{validators.ErrEmptyQRToken, http.StatusBadRequest, app.MsgQRRequired},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{crypto.ErrInvalidToken, http.StatusBadRequest, app.MsgInvalidQR},

	{service.ErrIdentityAlreadyExists, http.StatusConflict, app.MsgUserAlreadyExists},
	{store.ErrEmailAlreadyExists, http.StatusConflict, app.MsgUserAlreadyExists},
	{service.ErrAdminAlreadyExists, http.StatusConflict, app.MsgAdminAlreadyExists},
	{store.ErrUsernameAlreadyExists, http.StatusConflict, app.MsgAdminAlreadyExists},

	{service.ErrWrongCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
	{service.ErrUnauthorized, http.StatusUnauthorized, app.MsgUnauthorized},
	{service.ErrForbidden, http.StatusForbidden, app.MsgForbidden},
	{service.ErrSignupDisabled, http.StatusNotFound, app.MsgNotFound},

	{store.ErrIdentityNotFound, http.StatusNotFound, app.MsgUserNotFound},
	{store.ErrAlertNotFound, http.StatusNotFound, app.MsgAlertNotFound},

	{service.ErrStorageUnavailable, http.StatusServiceUnavailable, app.MsgStorageUnavailable},
	{crypto.ErrInvalidHash, http.StatusInternalServerError, app.MsgInternalServerError},
}

// statusFromError returns the HTTP status and the client-facing detail for
// err. Unknown errors are 500 with a generic detail, so no storage error
// text ever reaches the client.
func statusFromError(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.status, m.detail
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError maps err to a status and writes an [models.ErrorResponse].
// 5xx errors are logged at error level, the rest at info.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, detail := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Detail: detail}, status)
}
