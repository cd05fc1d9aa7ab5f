// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/metrics"
	"github.com/MKhiriev/safeher/internal/store"
)

type healthService struct {
	checker store.HealthChecker
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewHealthService(checker store.HealthChecker, m *metrics.Metrics, logger *logger.Logger) HealthService {
	return &healthService{
		checker: checker,
		metrics: m,
		logger:  logger,
	}
}

// Check pings storage and publishes the result on the storage_up gauge.
func (s *healthService) Check(ctx context.Context) error {
	if err := s.checker.Ping(ctx); err != nil {
		s.metrics.SetStorageUp(false)
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.metrics.SetStorageUp(true)
	return nil
}
