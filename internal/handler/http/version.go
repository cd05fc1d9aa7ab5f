// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/safeher/internal/app"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/utils"
	"github.com/MKhiriev/safeher/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetVersionInfo(r.Context()), http.StatusOK)
}

// health pings storage. It answers 503 when storage is unreachable.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.services.HealthService.Check(r.Context()); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("health check failed")
		utils.WriteJSON(w, models.HealthResponse{Status: app.HealthStatusUnavailable}, http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, models.HealthResponse{Status: app.HealthStatusOK}, http.StatusOK)
}
