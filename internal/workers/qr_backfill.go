// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/service"
)

// qrBackfillBatch caps the identities rendered per tick.
const qrBackfillBatch = 50

// qrBackfillWorker renders QR images for identities whose first render
// failed at registration.
type qrBackfillWorker struct {
	identities service.IdentityService
	interval   time.Duration
	logger     *logger.Logger
}

func newQRBackfillWorker(identities service.IdentityService, interval time.Duration, logger *logger.Logger) *qrBackfillWorker {
	return &qrBackfillWorker{
		identities: identities,
		interval:   interval,
		logger:     logger.WithComponent("qr_backfill_worker"),
	}
}

func (w *qrBackfillWorker) Run(ctx context.Context) error {
	w.logger.Info().Dur("interval", w.interval).Msg("qr backfill worker started")
	defer w.logger.Info().Msg("qr backfill worker stopped")

	return runEvery(ctx, w.interval, w.backfill)
}

func (w *qrBackfillWorker) backfill(ctx context.Context) {
	attached, err := w.identities.BackfillQR(ctx, qrBackfillBatch)
	if err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Err(err).Int("attached", attached).Msg("qr backfill failed")
		return
	}
	if attached > 0 {
		w.logger.Info().Int("attached", attached).Msg("qr images backfilled")
	}
}
