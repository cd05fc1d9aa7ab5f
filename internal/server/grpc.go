// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"errors"
	"fmt"
	"net"
	"time"

	myGRPC "github.com/MKhiriev/safeher/internal/handler/grpc"
	"github.com/MKhiriev/safeher/internal/logger"
	"google.golang.org/grpc"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server   *grpc.Server
	address  string
	listener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, address string, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer()
	handler.Register(server)

	return &grpcServer{
		handler: handler,
		server:  server,
		address: address,
		logger:  logger.WithComponent("grpc_server"),
	}
}

func (g *grpcServer) listen() error {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("grpc listen on %s: %w", g.address, err)
	}
	g.listener = listener
	return nil
}

func (g *grpcServer) serve() error {
	if g.listener == nil {
		return errNotListening
	}

	g.logger.Info().Str("address", g.listener.Addr().String()).Msg("gRPC server listening")
	if err := g.server.Serve(g.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Shutdown reports NOT_SERVING, then stops gracefully. Streams still open
// after shutdownTimeout are closed.
func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(shutdownTimeout):
		g.server.Stop()
	}
}
