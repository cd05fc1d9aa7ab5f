// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/metrics"
	"github.com/MKhiriev/safeher/internal/mock"
	"github.com/MKhiriev/safeher/internal/store"
	"github.com/MKhiriev/safeher/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAlertSvc(t *testing.T, ctrl *gomock.Controller) (*alertService, *mock.MockAlertRepository, *mock.MockIdentityRepository) {
	t.Helper()
	alerts := mock.NewMockAlertRepository(ctrl)
	identities := mock.NewMockIdentityRepository(ctrl)

	svc := NewAlertService(alerts, identities, metrics.New(), logger.Nop()).(*alertService)
	svc.now = func() time.Time { return fixedNow }
	return svc, alerts, identities
}

func TestAlertService_CreateUserAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, alerts, identities := newTestAlertSvc(t, ctrl)
	ctx := context.Background()

	identities.EXPECT().FindIdentityByEmail(ctx, "a@x.com").Return(models.Identity{ID: 1}, nil)
	alerts.EXPECT().CreateAlert(ctx, models.Alert{
		Source:    models.AlertSourceUser,
		UserEmail: "a@x.com",
		Latitude:  12.5,
		Longitude: 77.1,
		Message:   "help",
		CreatedAt: fixedNow,
	}).Return(models.Alert{ID: 9, Source: models.AlertSourceUser}, nil)

	alert, err := svc.CreateUserAlert(ctx, models.UserAlertRequest{UserEmail: "a@x.com", Latitude: 12.5, Longitude: 77.1, Message: "help"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), alert.ID)
}

func TestAlertService_CreateUserAlert_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, alerts, identities := newTestAlertSvc(t, ctrl)

	identities.EXPECT().FindIdentityByEmail(gomock.Any(), "z@x.com").Return(models.Identity{}, store.ErrIdentityNotFound)
	alerts.EXPECT().CreateAlert(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CreateUserAlert(context.Background(), models.UserAlertRequest{UserEmail: "z@x.com"})
	require.ErrorIs(t, err, store.ErrIdentityNotFound)
}

func TestAlertService_CreateDeviceAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, alerts, _ := newTestAlertSvc(t, ctrl)

	alerts.EXPECT().CreateAlert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, alert models.Alert) (models.Alert, error) {
			assert.Equal(t, models.AlertSourceDevice, alert.Source)
			assert.Equal(t, "dev-1", alert.DeviceID)
			assert.Empty(t, alert.UserEmail)
			alert.ID = 4
			return alert, nil
		},
	)

	alert, err := svc.CreateDeviceAlert(context.Background(), models.DeviceAlertPayload{DeviceID: "dev-1", Latitude: 1, Longitude: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), alert.ID)
}

func TestAlertService_ListAlerts_ClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit uint64
		want  uint64
	}{
		{name: "zero means default", limit: 0, want: MaxAlertsListed},
		{name: "above maximum", limit: 500, want: MaxAlertsListed},
		{name: "within range", limit: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, alerts, _ := newTestAlertSvc(t, ctrl)

			alerts.EXPECT().ListAlerts(gomock.Any(), models.AlertFilter{Limit: tt.want}).Return(nil, nil)

			views, err := svc.ListAlerts(context.Background(), models.AlertFilter{Limit: tt.limit})
			require.NoError(t, err)
			assert.Empty(t, views)
		})
	}
}

func TestAlertService_ListAlerts_Views(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, alerts, _ := newTestAlertSvc(t, ctrl)

	records := []models.AlertRecord{
		{
			Alert: models.Alert{
				ID: 2, Source: models.AlertSourceDevice, DeviceID: "dev-7",
				PhotoURL: "https://proj.supabase.co/storage/v1/object/public/sos-media/photos/p.jpg",
			},
		},
		{
			Alert:      models.Alert{ID: 1, Source: models.AlertSourceUser, UserEmail: "a@x.com", Message: "help"},
			OwnerName:  "A",
			OwnerPhone: "1",
		},
		{
			Alert: models.Alert{ID: 0, Source: models.AlertSourceUser, UserEmail: "gone@x.com"},
		},
	}
	alerts.EXPECT().ListAlerts(gomock.Any(), gomock.Any()).Return(records, nil)

	views, err := svc.ListAlerts(context.Background(), models.AlertFilter{})
	require.NoError(t, err)
	require.Len(t, views, 3)

	device := views[0]
	assert.Equal(t, "dev-7", device.UserName)
	assert.Equal(t, models.NotAvailable, device.UserPhone)
	assert.Equal(t, "dev-7@device.local", device.UserEmail)
	assert.Equal(t, "SOS Alert from dev-7", device.Message)
	assert.Equal(t, "photos/p.jpg", device.PhotoURL)

	user := views[1]
	assert.Equal(t, "A", user.UserName)
	assert.Equal(t, "1", user.UserPhone)
	assert.Equal(t, "a@x.com", user.UserEmail)
	assert.Equal(t, "help", user.Message)

	orphan := views[2]
	assert.Equal(t, "Unknown", orphan.UserName)
	assert.Equal(t, models.NotAvailable, orphan.UserPhone)
}

func TestAlertService_ResolveAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, alerts, _ := newTestAlertSvc(t, ctrl)
	ctx := context.Background()

	resolvedAt := fixedNow
	alerts.EXPECT().ResolveAlert(ctx, int64(3), fixedNow).
		Return(models.Alert{ID: 3, Resolved: true, ResolvedAt: &resolvedAt}, nil).
		Times(2)

	for range 2 {
		alert, err := svc.ResolveAlert(ctx, 3)
		require.NoError(t, err)
		assert.True(t, alert.Resolved)
		require.NotNil(t, alert.ResolvedAt)
	}
}

func TestAlertService_ResolveAlert_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, alerts, _ := newTestAlertSvc(t, ctrl)

	alerts.EXPECT().ResolveAlert(gomock.Any(), int64(404), gomock.Any()).Return(models.Alert{}, store.ErrAlertNotFound)

	_, err := svc.ResolveAlert(context.Background(), 404)
	require.ErrorIs(t, err, store.ErrAlertNotFound)
}

func TestMediaKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://proj.supabase.co/storage/v1/object/public/sos-media/a/b.mp3", "a/b.mp3"},
		{"https://proj.supabase.co/sos-media/x/sos-media/y.jpg", "y.jpg"},
		{"https://proj.supabase.co/storage/v1/object/public/avatars/c.jpg", "https://proj.supabase.co/storage/v1/object/public/avatars/c.jpg"},
		{"https://cdn.example.com/sos-media/a/b.mp3", "https://cdn.example.com/sos-media/a/b.mp3"},
		{"https://elsewhere.example.com/c.jpg", "https://elsewhere.example.com/c.jpg"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MediaKey(tt.in), tt.in)
	}
}
