// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"path"

	"github.com/MKhiriev/safeher/internal/app"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/utils"
	"github.com/MKhiriev/safeher/models"
)

// qrURLPrefix is the public path the QR directory is mounted on.
const qrURLPrefix = "/qr/"

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var payload models.IdentityPayload
	if err := utils.ReadJSON(w, r, &payload); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	identity, err := h.services.IdentityService.Register(ctx, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("identity_id", identity.ID).Msg("user registered")

	response := models.RegistrationResponse{
		Message:     app.MsgUserRegistered,
		UserID:      identity.ID,
		QRPath:      identity.QRPath,
		EncryptedQR: identity.EncryptedQR,
	}
	if identity.QRPath != "" {
		response.QRURL = qrURLPrefix + path.Base(identity.QRPath)
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) loginUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var credentials models.UserCredentials
	if err := utils.ReadJSON(w, r, &credentials); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	identity, err := h.services.IdentityService.Login(ctx, credentials)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.LoginResponse{Message: app.MsgLoginSuccessful, User: identity}, http.StatusOK)
}

func (h *Handler) createUserAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request models.UserAlertRequest
	if err := utils.ReadJSON(w, r, &request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	alert, err := h.services.AlertService.CreateUserAlert(ctx, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AlertCreatedResponse{Message: app.MsgAlertCreated, AlertID: alert.ID}, http.StatusOK)
}
