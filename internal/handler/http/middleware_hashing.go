// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/utils"
)

// signedReport is the envelope of a device SOS report. Payload is kept raw
// so the digest is computed over what the device sent.
type signedReport struct {
	Payload json.RawMessage `json:"payload"`
	Hash    string          `json:"hash"`
}

// deviceHashing verifies that "hash" is the hex HMAC-SHA256 of the compact
// JSON encoding of "payload". Insignificant whitespace in the request does
// not affect the digest. The body is restored for the next handler.
func (h *Handler) deviceHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, utils.MaxJSONBodyBytes))
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var report signedReport
		if err = json.Unmarshal(body, &report); err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
			return
		}
		if len(report.Payload) == 0 || report.Hash == "" {
			writeError(w, r, ErrIntegrityCheckFailed)
			return
		}

		var compact bytes.Buffer
		if err = json.Compact(&compact, report.Payload); err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
			return
		}

		if !h.deviceHasher.Verify(compact.Bytes(), report.Hash) {
			log.Warn().Str("func", "*Handler.deviceHashing").Msg("device report hash mismatch")
			writeError(w, r, ErrIntegrityCheckFailed)
			return
		}

		next.ServeHTTP(w, r)
	})
}
