// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/safeher/internal/app"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/utils"
	"github.com/MKhiriev/safeher/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) registerAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var credentials models.AdminCredentials
	if err := utils.ReadJSON(w, r, &credentials); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	if _, err := h.services.AdminService.Register(ctx, credentials); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgAdminRegistered}, http.StatusOK)
}

func (h *Handler) loginAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var credentials models.AdminCredentials
	if err := utils.ReadJSON(w, r, &credentials); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	token, err := h.services.AdminService.Login(ctx, credentials)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AccessTokenResponse{
		AccessToken: token.String(),
		TokenType:   app.TokenTypeBearer,
	}, http.StatusOK)
}

// verifyQR resolves a scanned token to the stored identity. The response
// carries the stored record, not the one sealed into the token.
func (h *Handler) verifyQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request models.ScanRequest
	if err := utils.ReadJSON(w, r, &request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	payload, err := h.services.IdentityService.Scan(ctx, request.EncryptedQR)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ScanResponse{Status: app.ScanStatusValid, UserData: payload}, http.StatusOK)
}

func (h *Handler) updateIdentity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidPathParam, err))
		return
	}

	var update models.IdentityUpdate
	if err = utils.ReadJSON(w, r, &update); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}
	update.Email = email

	identity, err := h.services.IdentityService.UpdateIdentity(ctx, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("identity_id", identity.ID).Msg("identity corrected by admin")
	utils.WriteJSON(w, identity, http.StatusOK)
}

func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var filter models.AlertFilter
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: limit: %w", ErrInvalidPathParam, err))
			return
		}
		filter.Limit = limit
	}
	if raw := query.Get("unresolved"); raw != "" {
		unresolved, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: unresolved: %w", ErrInvalidPathParam, err))
			return
		}
		filter.UnresolvedOnly = unresolved
	}

	alerts, err := h.services.AlertService.ListAlerts(ctx, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AlertsResponse{Alerts: alerts}, http.StatusOK)
}

func (h *Handler) resolveAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: id: %w", ErrInvalidPathParam, err))
		return
	}

	if _, err = h.services.AlertService.ResolveAlert(ctx, id); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgAlertResolved}, http.StatusOK)
}
