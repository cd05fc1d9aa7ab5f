// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/safeher/internal/config"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return newDB(conn, config.DriverPostgres, logger.Nop()), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var testIdentityColumns = []string{"id", "name", "email", "phone", "voter_id", "pan_id", "encrypted_qr", "qr_path", "created_at"}

func TestCreateIdentity_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewIdentityRepository(db, logger.Nop())

	identity := models.Identity{Name: "Asha", Email: "asha@example.com", Phone: "1", EncryptedQR: "tok", CreatedAt: time.Now()}

	mock.ExpectQuery("INSERT INTO identities").
		WithArgs("Asha", "asha@example.com", "1", "", "", "tok", "", identity.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	created, err := repo.CreateIdentity(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, "asha@example.com", created.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIdentity_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "duplicate email", dbErr: pgError(pgerrcode.UniqueViolation), wantErr: ErrEmailAlreadyExists},
		{name: "other driver error", dbErr: errors.New("connection reset"), wantErr: ErrExecutingStatement},
		{name: "not null violation", dbErr: pgError(pgerrcode.NotNullViolation), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewIdentityRepository(db, logger.Nop())

			mock.ExpectQuery("INSERT INTO identities").WillReturnError(tt.dbErr)

			_, err := repo.CreateIdentity(context.Background(), models.Identity{Email: "a@b.c"})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFindIdentityByEmail(t *testing.T) {
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewIdentityRepository(db, logger.Nop())

		mock.ExpectQuery("SELECT (.+) FROM identities WHERE email = \\$1").
			WithArgs("asha@example.com").
			WillReturnRows(sqlmock.NewRows(testIdentityColumns).
				AddRow(1, "Asha", "asha@example.com", "1", "V", "P", "tok", "qr_codes/1.png", now))

		identity, err := repo.FindIdentityByEmail(context.Background(), "asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(1), identity.ID)
		assert.Equal(t, "qr_codes/1.png", identity.QRPath)
		assert.Equal(t, "tok", identity.EncryptedQR)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewIdentityRepository(db, logger.Nop())

		mock.ExpectQuery("SELECT (.+) FROM identities").WillReturnError(sql.ErrNoRows)

		_, err := repo.FindIdentityByEmail(context.Background(), "missing@example.com")
		require.ErrorIs(t, err, ErrIdentityNotFound)
	})

	t.Run("query failure", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewIdentityRepository(db, logger.Nop())

		mock.ExpectQuery("SELECT (.+) FROM identities").WillReturnError(errors.New("boom"))

		_, err := repo.FindIdentityByEmail(context.Background(), "a@b.c")
		require.ErrorIs(t, err, ErrScanningRow)
	})
}

func TestFindIdentityByCredentials_MatchesEmailAndPhone(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewIdentityRepository(db, logger.Nop())

	mock.ExpectQuery("email = \\$1 AND phone = \\$2").
		WithArgs("a@b.c", "123").
		WillReturnRows(sqlmock.NewRows(testIdentityColumns).
			AddRow(5, "A", "a@b.c", "123", "", "", "tok", "", time.Now()))

	identity, err := repo.FindIdentityByCredentials(context.Background(), models.UserCredentials{Email: "a@b.c", Phone: "123"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), identity.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateIdentity(t *testing.T) {
	name := "New Name"

	t.Run("updated", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewIdentityRepository(db, logger.Nop())

		mock.ExpectExec("UPDATE identities SET name = \\$1 WHERE email = \\$2").
			WithArgs(name, "a@b.c").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM identities").
			WithArgs("a@b.c").
			WillReturnRows(sqlmock.NewRows(testIdentityColumns).
				AddRow(5, name, "a@b.c", "123", "", "", "tok", "", time.Now()))

		identity, err := repo.UpdateIdentity(context.Background(), models.IdentityUpdate{Email: "a@b.c", Name: &name})
		require.NoError(t, err)
		assert.Equal(t, name, identity.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown email", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewIdentityRepository(db, logger.Nop())

		mock.ExpectExec("UPDATE identities").WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.UpdateIdentity(context.Background(), models.IdentityUpdate{Email: "x@b.c", Name: &name})
		require.ErrorIs(t, err, ErrIdentityNotFound)
	})

	t.Run("nothing to update", func(t *testing.T) {
		db, _ := newTestDB(t)
		repo := NewIdentityRepository(db, logger.Nop())

		_, err := repo.UpdateIdentity(context.Background(), models.IdentityUpdate{Email: "x@b.c"})
		require.ErrorIs(t, err, ErrBuildingSQLQuery)
	})
}

func TestSetQRPath(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		wantErr  error
	}{
		{name: "first write", affected: 1},
		{name: "already set is a no-op", affected: 0},
		{name: "driver error", execErr: errors.New("boom"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewIdentityRepository(db, logger.Nop())

			exp := mock.ExpectExec("UPDATE identities SET qr_path").WithArgs("qr_codes/9.png", int64(9), "")
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			err := repo.SetQRPath(context.Background(), 9, "qr_codes/9.png")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestListIdentitiesWithoutQR(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewIdentityRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM identities WHERE qr_path = \\$1 ORDER BY id LIMIT 10").
		WithArgs("").
		WillReturnRows(sqlmock.NewRows(testIdentityColumns).
			AddRow(1, "A", "a@b.c", "1", "", "", "tok1", "", time.Now()).
			AddRow(2, "B", "b@b.c", "2", "", "", "tok2", "", time.Now()))

	identities, err := repo.ListIdentitiesWithoutQR(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, identities, 2)
	assert.Equal(t, "tok2", identities[1].EncryptedQR)
}

func TestListIdentitiesWithoutQR_RowError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewIdentityRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM identities").
		WillReturnRows(sqlmock.NewRows(testIdentityColumns).
			AddRow(1, "A", "a@b.c", "1", "", "", "tok1", "", time.Now()).
			RowError(0, errors.New("broken row")))

	_, err := repo.ListIdentitiesWithoutQR(context.Background(), 10)
	require.ErrorIs(t, err, ErrScanningRows)
}
