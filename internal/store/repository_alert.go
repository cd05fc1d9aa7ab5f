// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/models"
)

// alertRepository is the SQL implementation of [AlertRepository].
type alertRepository struct {
	*DB
	logger *logger.Logger
}

// NewAlertRepository constructs an [AlertRepository] backed by db.
func NewAlertRepository(db *DB, logger *logger.Logger) AlertRepository {
	logger.Debug().Msg("creating alert repository")
	return &alertRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateAlert persists a new unresolved alert and returns it with the
// assigned ID.
func (r *alertRepository) CreateAlert(ctx context.Context, alert models.Alert) (models.Alert, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAlertQuery(r.builder, alert)
	if err != nil {
		log.Err(err).Str("func", "alertRepository.CreateAlert").Msg("failed to create query")
		return models.Alert{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.QueryRowContext(ctx, query, args...).Scan(&alert.ID); err != nil {
		log.Err(err).
			Str("func", "alertRepository.CreateAlert").
			Str("source", string(alert.Source)).
			Stringer("class", r.classify(err)).
			Msg("failed to insert alert")
		return models.Alert{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	alert.Resolved = false
	alert.ResolvedAt = nil
	return alert, nil
}

// ListAlerts returns alerts newest first, each joined with the identity
// that raised it.
func (r *alertRepository) ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.AlertRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAlertsQuery(r.builder, filter)
	if err != nil {
		log.Err(err).Str("func", "alertRepository.ListAlerts").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "alertRepository.ListAlerts").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.AlertRecord, 0, filter.Limit)
	for rows.Next() {
		var record models.AlertRecord
		dest := append(alertScanDest(&record.Alert), &record.OwnerName, &record.OwnerPhone)
		if scanErr := rows.Scan(dest...); scanErr != nil {
			log.Err(scanErr).Str("func", "alertRepository.ListAlerts").Msg("failed to scan alert row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "alertRepository.ListAlerts").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// ResolveAlert sets resolved and resolved_at on the alert and returns the
// stored row. Resolving twice succeeds and moves resolved_at forward.
func (r *alertRepository) ResolveAlert(ctx context.Context, id int64, resolvedAt time.Time) (models.Alert, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildResolveAlertQuery(r.builder, id, resolvedAt)
	if err != nil {
		log.Err(err).Str("func", "alertRepository.ResolveAlert").Msg("failed to create query")
		return models.Alert{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "alertRepository.ResolveAlert").
			Int64("alert_id", id).
			Msg("failed to resolve alert")
		return models.Alert{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Alert{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.Alert{}, ErrAlertNotFound
	}

	query, args, err = buildSelectAlertQuery(r.builder, id)
	if err != nil {
		return models.Alert{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var alert models.Alert
	err = r.QueryRowContext(ctx, query, args...).Scan(alertScanDest(&alert)...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Alert{}, ErrAlertNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "alertRepository.ResolveAlert").Msg("failed to scan alert row")
		return models.Alert{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return alert, nil
}

// alertScanDest lists scan targets in the order of alertColumns.
func alertScanDest(alert *models.Alert) []any {
	return []any{
		&alert.ID,
		&alert.Source,
		&alert.UserEmail,
		&alert.DeviceID,
		&alert.Latitude,
		&alert.Longitude,
		&alert.AudioURL,
		&alert.PhotoURL,
		&alert.Message,
		&alert.CreatedAt,
		&alert.Resolved,
		&alert.ResolvedAt,
	}
}
