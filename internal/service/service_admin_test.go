// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/safeher/internal/crypto"
	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/mock"
	"github.com/MKhiriev/safeher/internal/store"
	"github.com/MKhiriev/safeher/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAdminSvc(t *testing.T, ctrl *gomock.Controller, signupDisabled bool) (*adminService, *mock.MockAdminRepository, *mock.MockPasswordHasher) {
	t.Helper()
	repo := mock.NewMockAdminRepository(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)

	svc := NewAdminService(repo, hasher, newTestTokenService(fixedNow), signupDisabled, nil, logger.Nop()).(*adminService)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, hasher
}

func TestAdminService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newTestAdminSvc(t, ctrl, false)
	ctx := context.Background()

	hasher.EXPECT().HashPassword("secret").Return("$2a$hash", nil)
	repo.EXPECT().CreateAdmin(ctx, models.Admin{
		Username:     "root",
		Email:        "root@x.com",
		PasswordHash: "$2a$hash",
		CreatedAt:    fixedNow,
	}).Return(models.Admin{ID: 1, Username: "root"}, nil)

	admin, err := svc.Register(ctx, models.AdminCredentials{Username: "root", Email: "root@x.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), admin.ID)
}

func TestAdminService_Register_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newTestAdminSvc(t, ctrl, false)

	hasher.EXPECT().HashPassword(gomock.Any()).Return("$2a$hash", nil)
	repo.EXPECT().CreateAdmin(gomock.Any(), gomock.Any()).Return(models.Admin{}, store.ErrUsernameAlreadyExists)

	_, err := svc.Register(context.Background(), models.AdminCredentials{Username: "root", Password: "secret"})
	require.ErrorIs(t, err, ErrAdminAlreadyExists)
}

func TestAdminService_Register_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newTestAdminSvc(t, ctrl, true)

	hasher.EXPECT().HashPassword(gomock.Any()).Times(0)
	repo.EXPECT().CreateAdmin(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Register(context.Background(), models.AdminCredentials{Username: "root", Password: "secret"})
	require.ErrorIs(t, err, ErrSignupDisabled)
}

func TestAdminService_Login(t *testing.T) {
	stored := models.Admin{ID: 1, Username: "root", PasswordHash: "$2a$hash"}

	tests := []struct {
		name      string
		setup     func(repo *mock.MockAdminRepository, hasher *mock.MockPasswordHasher)
		wantErr   error
		wantToken bool
	}{
		{
			name: "valid credentials",
			setup: func(repo *mock.MockAdminRepository, hasher *mock.MockPasswordHasher) {
				repo.EXPECT().FindAdminByUsername(gomock.Any(), "root").Return(stored, nil)
				hasher.EXPECT().VerifyPassword("secret", "$2a$hash").Return(true, nil)
			},
			wantToken: true,
		},
		{
			name: "unknown username",
			setup: func(repo *mock.MockAdminRepository, hasher *mock.MockPasswordHasher) {
				repo.EXPECT().FindAdminByUsername(gomock.Any(), "root").Return(models.Admin{}, store.ErrAdminNotFound)
			},
			wantErr: ErrWrongCredentials,
		},
		{
			name: "wrong password",
			setup: func(repo *mock.MockAdminRepository, hasher *mock.MockPasswordHasher) {
				repo.EXPECT().FindAdminByUsername(gomock.Any(), "root").Return(stored, nil)
				hasher.EXPECT().VerifyPassword("secret", "$2a$hash").Return(false, nil)
			},
			wantErr: ErrWrongCredentials,
		},
		{
			name: "corrupt stored hash",
			setup: func(repo *mock.MockAdminRepository, hasher *mock.MockPasswordHasher) {
				repo.EXPECT().FindAdminByUsername(gomock.Any(), "root").Return(stored, nil)
				hasher.EXPECT().VerifyPassword("secret", "$2a$hash").Return(false, crypto.ErrInvalidHash)
			},
			wantErr: crypto.ErrInvalidHash,
		},
		{
			name: "storage failure",
			setup: func(repo *mock.MockAdminRepository, hasher *mock.MockPasswordHasher) {
				repo.EXPECT().FindAdminByUsername(gomock.Any(), "root").Return(models.Admin{}, errors.New("conn reset"))
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, repo, hasher := newTestAdminSvc(t, ctrl, false)
			tt.setup(repo, hasher)

			token, err := svc.Login(context.Background(), models.AdminCredentials{Username: "root", Password: "secret"})
			if tt.wantToken {
				require.NoError(t, err)
				assert.NotEmpty(t, token.String())
				assert.Equal(t, models.RoleAdmin, token.Claims.Role)
				return
			}

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NotErrorIs(t, err, ErrWrongCredentials)
			}
		})
	}
}
