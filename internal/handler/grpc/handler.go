// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc implements the gRPC transport of the server. It exposes the
// standard grpc.health.v1.Health service, whose status follows storage
// reachability.
package grpc

import (
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the service name health status is reported under, in
// addition to the server-wide empty name.
const ServiceName = "safeher.v1.SafeHer"

// Handler is the root gRPC transport handler.
//
// It owns the health server and stores references to the service layer and
// structured logger. A handler instance is created once at startup and
// shared by the gRPC server and the health worker.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	health *health.Server

	// logger is used for diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler]. The health status starts as
// NOT_SERVING until the first successful storage check.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.SetServing(false)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches every gRPC service of the handler to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// SetServing publishes the health status of the server and of
// [ServiceName].
func (h *Handler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// Shutdown marks every service NOT_SERVING and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
