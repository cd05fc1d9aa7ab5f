// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/safeher/internal/app"
	"github.com/MKhiriev/safeher/internal/service"
	"github.com/MKhiriev/safeher/internal/store"
	"github.com/MKhiriev/safeher/internal/validators"
	"github.com/MKhiriev/safeher/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var testPayload = models.IdentityPayload{Name: "A", Email: "a@x.com", Phone: "1", VoterID: "V1", PanID: "P1"}

func TestRegisterUser_Success(t *testing.T) {
	router, ts := newTestRouter(t, testSettings(t))

	ts.identity.EXPECT().Register(gomock.Any(), testPayload).Return(models.Identity{
		ID:          7,
		EncryptedQR: "TOKEN",
		QRPath:      "qr_codes/7.png",
	}, nil)

	rr := doJSON(t, router, http.MethodPost, "/api/user/register", testPayload)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[models.RegistrationResponse](t, rr)
	assert.Equal(t, app.MsgUserRegistered, resp.Message)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, "TOKEN", resp.EncryptedQR)
	assert.Equal(t, "qr_codes/7.png", resp.QRPath)
	assert.Equal(t, "/qr/7.png", resp.QRURL)
}

func TestRegisterUser_WithoutQRImage(t *testing.T) {
	router, ts := newTestRouter(t, testSettings(t))

	ts.identity.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.Identity{ID: 8, EncryptedQR: "TOKEN"}, nil)

	rr := doJSON(t, router, http.MethodPost, "/api/user/register", testPayload)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[models.RegistrationResponse](t, rr)
	assert.Empty(t, resp.QRPath)
	assert.Empty(t, resp.QRURL)
}

func TestRegisterUser_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		serviceErr error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "malformed JSON",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantDetail: app.MsgInvalidDataProvided,
		},
		{
			name:       "unknown field",
			body:       `{"name":"A","role":"admin"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: app.MsgInvalidDataProvided,
		},
		{
			name:       "validation failure",
			body:       testPayload,
			serviceErr: fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrInvalidEmail),
			wantStatus: http.StatusBadRequest,
			wantDetail: app.MsgInvalidDataProvided,
		},
		{
			name:       "duplicate email",
			body:       testPayload,
			serviceErr: service.ErrIdentityAlreadyExists,
			wantStatus: http.StatusConflict,
			wantDetail: app.MsgUserAlreadyExists,
		},
		{
			name:       "duplicate email found by constraint",
			body:       testPayload,
			serviceErr: fmt.Errorf("%w: %w", service.ErrIdentityAlreadyExists, store.ErrEmailAlreadyExists),
			wantStatus: http.StatusConflict,
			wantDetail: app.MsgUserAlreadyExists,
		},
		{
			name:       "storage failure",
			body:       testPayload,
			serviceErr: fmt.Errorf("identity creation failed: %w", store.ErrExecutingQuery),
			wantStatus: http.StatusInternalServerError,
			wantDetail: app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ts := newTestRouter(t, testSettings(t))
			if tt.serviceErr != nil {
				ts.identity.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.Identity{}, tt.serviceErr)
			}

			rr := doJSON(t, router, http.MethodPost, "/api/user/register", tt.body)
			assertDetail(t, rr, tt.wantStatus, tt.wantDetail)
		})
	}
}

func TestLoginUser(t *testing.T) {
	router, ts := newTestRouter(t, testSettings(t))
	creds := models.UserCredentials{Email: "a@x.com", Phone: "1"}

	ts.identity.EXPECT().Login(gomock.Any(), creds).Return(models.Identity{ID: 7, Email: "a@x.com", EncryptedQR: "TOKEN"}, nil)

	rr := doJSON(t, router, http.MethodPost, "/api/user/login", creds)
	assert.Equal(t, http.StatusOK, rr.Code)

	resp := decodeBody[models.LoginResponse](t, rr)
	assert.Equal(t, app.MsgLoginSuccessful, resp.Message)
	assert.Equal(t, "TOKEN", resp.User.EncryptedQR)
}

func TestLoginUser_WrongPhone(t *testing.T) {
	router, ts := newTestRouter(t, testSettings(t))

	ts.identity.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.Identity{}, service.ErrWrongCredentials)

	rr := doJSON(t, router, http.MethodPost, "/api/user/login", models.UserCredentials{Email: "a@x.com", Phone: "2"})
	assertDetail(t, rr, http.StatusUnauthorized, app.MsgInvalidCredentials)
}

func TestCreateUserAlert(t *testing.T) {
	router, ts := newTestRouter(t, testSettings(t))
	request := models.UserAlertRequest{UserEmail: "a@x.com", Latitude: 12.97, Longitude: 77.59, Message: "help"}

	ts.alert.EXPECT().CreateUserAlert(gomock.Any(), request).Return(models.Alert{ID: 5}, nil)

	rr := doJSON(t, router, http.MethodPost, "/api/user/emergency-alert", request)
	assert.Equal(t, http.StatusOK, rr.Code)

	resp := decodeBody[models.AlertCreatedResponse](t, rr)
	assert.Equal(t, int64(5), resp.AlertID)
	assert.Equal(t, app.MsgAlertCreated, resp.Message)
}

func TestCreateUserAlert_UnknownUser(t *testing.T) {
	router, ts := newTestRouter(t, testSettings(t))

	ts.alert.EXPECT().CreateUserAlert(gomock.Any(), gomock.Any()).Return(models.Alert{}, store.ErrIdentityNotFound)

	rr := doJSON(t, router, http.MethodPost, "/api/user/emergency-alert", models.UserAlertRequest{UserEmail: "z@x.com"})
	assertDetail(t, rr, http.StatusNotFound, app.MsgUserNotFound)
}
