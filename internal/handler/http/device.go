// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/safeher/internal/app"
	"github.com/MKhiriev/safeher/internal/utils"
	"github.com/MKhiriev/safeher/models"
)

// deviceSOS stores a device report. It runs behind [Handler.deviceHashing].
func (h *Handler) deviceSOS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request models.DeviceAlertRequest
	if err := utils.ReadJSON(w, r, &request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	alert, err := h.services.AlertService.CreateDeviceAlert(ctx, request.Payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AlertCreatedResponse{Message: app.MsgDeviceAlertStored, AlertID: alert.ID}, http.StatusOK)
}
