// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/safeher/models"
)

const (
	identitiesTable = "identities"
	adminsTable     = "admins"
	alertsTable     = "alerts"
)

var (
	identityColumns = []string{"id", "name", "email", "phone", "voter_id", "pan_id", "encrypted_qr", "qr_path", "created_at"}
	adminColumns    = []string{"id", "username", "email", "password_hash", "created_at"}
	alertColumns    = []string{"id", "source", "user_email", "device_id", "latitude", "longitude", "audio_url", "photo_url", "message", "created_at", "resolved", "resolved_at"}
)

func qualified(table string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = table + "." + c
	}
	return out
}

// ── identities ───────────────────────────────────────────────────────────────

func buildInsertIdentityQuery(sb sq.StatementBuilderType, identity models.Identity) (string, []any, error) {
	return sb.Insert(identitiesTable).
		Columns("name", "email", "phone", "voter_id", "pan_id", "encrypted_qr", "qr_path", "created_at").
		Values(identity.Name, identity.Email, identity.Phone, identity.VoterID, identity.PanID, identity.EncryptedQR, identity.QRPath, identity.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectIdentityQuery(sb sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return sb.Select(identityColumns...).
		From(identitiesTable).
		Where(where).
		Limit(1).
		ToSql()
}

// buildUpdateIdentityQuery writes the non-nil fields of update. The email
// key is only used to match the row.
func buildUpdateIdentityQuery(sb sq.StatementBuilderType, update models.IdentityUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	q := sb.Update(identitiesTable)
	if update.Name != nil {
		q = q.Set("name", *update.Name)
	}
	if update.Phone != nil {
		q = q.Set("phone", *update.Phone)
	}
	if update.VoterID != nil {
		q = q.Set("voter_id", *update.VoterID)
	}
	if update.PanID != nil {
		q = q.Set("pan_id", *update.PanID)
	}

	return q.Where(sq.Eq{"email": update.Email}).ToSql()
}

// buildSetQRPathQuery attaches path only while no path is stored, so the
// path is written at most once.
func buildSetQRPathQuery(sb sq.StatementBuilderType, id int64, path string) (string, []any, error) {
	return sb.Update(identitiesTable).
		Set("qr_path", path).
		Where(sq.Eq{"id": id, "qr_path": ""}).
		ToSql()
}

func buildSelectIdentitiesWithoutQRQuery(sb sq.StatementBuilderType, limit uint64) (string, []any, error) {
	return sb.Select(identityColumns...).
		From(identitiesTable).
		Where(sq.Eq{"qr_path": ""}).
		OrderBy("id").
		Limit(limit).
		ToSql()
}

// ── admins ───────────────────────────────────────────────────────────────────

func buildInsertAdminQuery(sb sq.StatementBuilderType, admin models.Admin) (string, []any, error) {
	return sb.Insert(adminsTable).
		Columns("username", "email", "password_hash", "created_at").
		Values(admin.Username, admin.Email, admin.PasswordHash, admin.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectAdminByUsernameQuery(sb sq.StatementBuilderType, username string) (string, []any, error) {
	return sb.Select(adminColumns...).
		From(adminsTable).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
}

// ── alerts ───────────────────────────────────────────────────────────────────

func buildInsertAlertQuery(sb sq.StatementBuilderType, alert models.Alert) (string, []any, error) {
	return sb.Insert(alertsTable).
		Columns("source", "user_email", "device_id", "latitude", "longitude", "audio_url", "photo_url", "message", "created_at", "resolved").
		Values(string(alert.Source), alert.UserEmail, alert.DeviceID, alert.Latitude, alert.Longitude, alert.AudioURL, alert.PhotoURL, alert.Message, alert.CreatedAt, false).
		Suffix("RETURNING id").
		ToSql()
}

// buildSelectAlertsQuery lists alerts newest first, joined with the name and
// phone of the identity that raised them.
func buildSelectAlertsQuery(sb sq.StatementBuilderType, filter models.AlertFilter) (string, []any, error) {
	columns := append(qualified(alertsTable, alertColumns),
		"COALESCE(identities.name, '')",
		"COALESCE(identities.phone, '')",
	)

	q := sb.Select(columns...).
		From(alertsTable).
		LeftJoin("identities ON identities.email = alerts.user_email AND alerts.source = ?", string(models.AlertSourceUser)).
		OrderBy("alerts.created_at DESC", "alerts.id DESC")

	if filter.UnresolvedOnly {
		q = q.Where(sq.Eq{"alerts.resolved": false})
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	return q.ToSql()
}

func buildSelectAlertQuery(sb sq.StatementBuilderType, id int64) (string, []any, error) {
	return sb.Select(alertColumns...).
		From(alertsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildResolveAlertQuery marks an alert resolved. An already resolved alert
// is matched too and gets a new resolved_at.
func buildResolveAlertQuery(sb sq.StatementBuilderType, id int64, resolvedAt time.Time) (string, []any, error) {
	return sb.Update(alertsTable).
		Set("resolved", true).
		Set("resolved_at", resolvedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
}
