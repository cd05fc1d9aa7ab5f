// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/safeher/internal/config"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/service"
	"golang.org/x/sync/errgroup"
)

type Workers struct {
	workers []Worker
}

// NewWorkers creates the workers enabled by cfg. A zero interval disables
// the corresponding worker. publisher may be nil when no gRPC transport is
// configured.
func NewWorkers(services *service.Services, cfg config.Workers, publisher HealthPublisher, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.HealthInterval > 0 {
		w.workers = append(w.workers, newHealthWorker(services.HealthService, publisher, cfg.HealthInterval, logger))
	}
	if cfg.QRBackfillInterval > 0 {
		w.workers = append(w.workers, newQRBackfillWorker(services.IdentityService, cfg.QRBackfillInterval, logger))
	}

	return w
}

// Run starts every worker and blocks until all of them return. The first
// error cancels the rest.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}
	return g.Wait()
}

// runEvery calls tick immediately and then once per interval until ctx is
// done.
func runEvery(ctx context.Context, interval time.Duration, tick func(ctx context.Context)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		tick(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
