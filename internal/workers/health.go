// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/service"
)

// healthWorker probes storage and publishes the result. Only status changes
// are logged.
type healthWorker struct {
	health    service.HealthService
	publisher HealthPublisher
	interval  time.Duration
	logger    *logger.Logger

	serving *bool
}

func newHealthWorker(health service.HealthService, publisher HealthPublisher, interval time.Duration, logger *logger.Logger) *healthWorker {
	return &healthWorker{
		health:    health,
		publisher: publisher,
		interval:  interval,
		logger:    logger.WithComponent("health_worker"),
	}
}

func (w *healthWorker) Run(ctx context.Context) error {
	w.logger.Info().Dur("interval", w.interval).Msg("health worker started")
	defer w.logger.Info().Msg("health worker stopped")

	return runEvery(ctx, w.interval, w.probe)
}

func (w *healthWorker) probe(ctx context.Context) {
	err := w.health.Check(ctx)
	if ctx.Err() != nil {
		return
	}

	serving := err == nil
	if w.publisher != nil {
		w.publisher.SetServing(serving)
	}

	if w.serving != nil && *w.serving == serving {
		return
	}
	w.serving = &serving

	if serving {
		w.logger.Info().Msg("storage is reachable")
	} else {
		w.logger.Warn().Err(err).Msg("storage is unreachable")
	}
}
