// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/safeher/internal/logger"

// Storages bundles the repositories the service layer depends on.
type Storages struct {
	IdentityRepository IdentityRepository
	AdminRepository    AdminRepository
	AlertRepository    AlertRepository
	HealthChecker      HealthChecker
}

// NewStorages builds every repository on top of one database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		IdentityRepository: NewIdentityRepository(db, log),
		AdminRepository:    NewAdminRepository(db, log),
		AlertRepository:    NewAlertRepository(db, log),
		HealthChecker:      db,
	}
}
