// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/metrics"
	"github.com/MKhiriev/safeher/internal/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHealthService_Check(t *testing.T) {
	ctrl := gomock.NewController(t)
	checker := mock.NewMockHealthChecker(ctrl)
	svc := NewHealthService(checker, metrics.New(), logger.Nop())
	ctx := context.Background()

	checker.EXPECT().Ping(ctx).Return(nil)
	require.NoError(t, svc.Check(ctx))

	checker.EXPECT().Ping(ctx).Return(errors.New("connection refused"))
	require.ErrorIs(t, svc.Check(ctx), ErrStorageUnavailable)
}

func TestHealthService_CheckWithoutMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	checker := mock.NewMockHealthChecker(ctrl)
	svc := NewHealthService(checker, nil, logger.Nop())

	checker.EXPECT().Ping(gomock.Any()).Return(nil)
	require.NoError(t, svc.Check(context.Background()))
}
