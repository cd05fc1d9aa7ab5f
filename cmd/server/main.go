// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/MKhiriev/safeher/internal/config"
	"github.com/MKhiriev/safeher/internal/handler"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/metrics"
	"github.com/MKhiriev/safeher/internal/qr"
	"github.com/MKhiriev/safeher/internal/server"
	"github.com/MKhiriev/safeher/internal/service"
	"github.com/MKhiriev/safeher/internal/store"
	"github.com/MKhiriev/safeher/internal/workers"
	"github.com/MKhiriev/safeher/models"
	"github.com/joho/godotenv"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(build)

	log := logger.NewLogger("safeher-server")

	// a missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("error loading .env file")
	}

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	log.Debug().Object("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to storage")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	renderer, err := qr.NewFileRenderer(cfg.Storage.Files.QRCodesDir)
	if err != nil {
		log.Fatal().Err(err).Msg("error preparing qr directory")
	}

	m := metrics.New()
	m.SetBuildInfo(build.BuildVersion(), build.BuildCommit())

	services, err := service.NewServices(store.NewStorages(db, log), cfg, build, renderer, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	var publisher workers.HealthPublisher
	if handlers.GRPC != nil {
		publisher = handlers.GRPC
	}
	ws := workers.NewWorkers(services, cfg.Workers, publisher, log)

	srv, err := server.NewServer(handlers, ws, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
