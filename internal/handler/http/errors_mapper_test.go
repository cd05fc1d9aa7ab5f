// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/safeher/internal/app"
	"github.com/MKhiriev/safeher/internal/crypto"
	"github.com/MKhiriev/safeher/internal/service"
	"github.com/MKhiriev/safeher/internal/store"
	"github.com/MKhiriev/safeher/internal/validators"
	"github.com/MKhiriev/safeher/models"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"invalid json", fmt.Errorf("%w: eof", ErrInvalidJSON), http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"qr required wins over generic validation", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrEmptyQRToken), http.StatusBadRequest, app.MsgQRRequired},
		{"validation", fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrEmptyName), http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"invalid qr token", crypto.ErrInvalidToken, http.StatusBadRequest, app.MsgInvalidQR},
		{"integrity", ErrIntegrityCheckFailed, http.StatusBadRequest, app.MsgIntegrityCheckFailed},
		{"duplicate identity", store.ErrEmailAlreadyExists, http.StatusConflict, app.MsgUserAlreadyExists},
		{"duplicate admin", service.ErrAdminAlreadyExists, http.StatusConflict, app.MsgAdminAlreadyExists},
		{"wrong credentials", service.ErrWrongCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
		{"missing header", ErrEmptyAuthorizationHeader, http.StatusUnauthorized, app.MsgUnauthorized},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, app.MsgForbidden},
		{"signup disabled", service.ErrSignupDisabled, http.StatusNotFound, app.MsgNotFound},
		{"identity not found", fmt.Errorf("lookup: %w", store.ErrIdentityNotFound), http.StatusNotFound, app.MsgUserNotFound},
		{"alert not found", store.ErrAlertNotFound, http.StatusNotFound, app.MsgAlertNotFound},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests, app.MsgTooManyRequests},
		{"storage down", service.ErrStorageUnavailable, http.StatusServiceUnavailable, app.MsgStorageUnavailable},
		{"corrupt hash", crypto.ErrInvalidHash, http.StatusInternalServerError, app.MsgInternalServerError},
		{"unknown", errors.New("pq: relation does not exist"), http.StatusInternalServerError, app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := statusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantDetail, detail)
		})
	}
}

func TestWriteError_HidesInternalText(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/emergency-alerts", nil)

	writeError(rr, req, fmt.Errorf("list: %w", errors.New("pq: password authentication failed")))

	assertDetail(t, rr, http.StatusInternalServerError, app.MsgInternalServerError)
	assert.NotContains(t, rr.Body.String(), "pq:")
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestErrorResponseShape(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), ErrRouteNotFound)

	assert.JSONEq(t, `{"detail":"`+app.MsgNotFound+`"}`, rr.Body.String())
	assert.Equal(t, models.ErrorResponse{Detail: app.MsgNotFound}, decodeBody[models.ErrorResponse](t, rr))
}
