package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/database"
	"github.com/JoshCLWren/TrailGuard/internal/test/testutil"
)

func seedDevice(t *testing.T, pool *database.ConnectionPool, userID, code string) *models.Device {
	d := &models.Device{UserID: userID, PairingCode: ptr(code), ConnectionState: models.ConnectionStateOffline}
	require.NoError(t, pool.DB.Create(d).Error)
	return d
}

func TestBreadcrumbBatchCreateAndList(t *testing.T) {
	pool := testutil.NewPool(t)
	svc := services.NewBreadcrumbService(pool.DB, testutil.Config())
	d := seedDevice(t, pool, "u1", "TRAIL-1")
	ctx := context.Background()

	batch := make([]models.BreadcrumbInput, 0, 3)
	for i := 0; i < 3; i++ {
		at := epoch.Add(time.Duration(i) * time.Minute)
		batch = append(batch, models.BreadcrumbInput{
			Position:   &models.LatLng{Latitude: 10 + float64(i), Longitude: 20},
			RecordTime: &at,
		})
	}
	n, err := svc.BatchCreate(ctx, "u1", d.ID, batch)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	rows, err := svc.List(ctx, "u1", d.ID, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 12.0, rows[0].Lat, "most recent first")
	assert.Equal(t, 11.0, rows[1].Lat)
}

func TestBreadcrumbBatchCreateEmpty(t *testing.T) {
	pool := testutil.NewPool(t)
	svc := services.NewBreadcrumbService(pool.DB, testutil.Config())
	d := seedDevice(t, pool, "u1", "TRAIL-2")

	n, err := svc.BatchCreate(context.Background(), "u1", d.ID, nil)

	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBreadcrumbBatchCreateTooMany(t *testing.T) {
	pool := testutil.NewPool(t)
	svc := services.NewBreadcrumbService(pool.DB, testutil.Config())
	d := seedDevice(t, pool, "u1", "TRAIL-3")

	_, err := svc.BatchCreate(context.Background(), "u1", d.ID, make([]models.BreadcrumbInput, services.MaxBreadcrumbBatch+1))

	assert.ErrorIs(t, err, services.ErrTooManyBreadcrumbs)
}

func TestBreadcrumbsOfForeignDevice(t *testing.T) {
	pool := testutil.NewPool(t)
	svc := services.NewBreadcrumbService(pool.DB, testutil.Config())
	d := seedDevice(t, pool, "u1", "TRAIL-4")
	ctx := context.Background()

	_, err := svc.List(ctx, "u2", d.ID, 10)
	assert.ErrorIs(t, err, services.ErrDeviceNotFound)
	_, err = svc.Create(ctx, "u2", d.ID, models.BreadcrumbInput{Position: &models.LatLng{}})
	assert.ErrorIs(t, err, services.ErrDeviceNotFound)
	_, err = svc.BatchCreate(ctx, "u2", d.ID, []models.BreadcrumbInput{{Position: &models.LatLng{}}})
	assert.ErrorIs(t, err, services.ErrDeviceNotFound)
}

func TestBreadcrumbCreateDefaultsRecordTime(t *testing.T) {
	pool := testutil.NewPool(t)
	svc := services.NewBreadcrumbService(pool.DB, testutil.Config()).(*services.BreadcrumbService)
	svc.Now = testutil.NewClock(epoch).Now
	d := seedDevice(t, pool, "u1", "TRAIL-5")

	row, err := svc.Create(context.Background(), "u1", d.ID, models.BreadcrumbInput{
		Position:       &models.LatLng{Latitude: 10.5, Longitude: 20.25},
		AccuracyMeters: ptr(4.0),
	})

	require.NoError(t, err)
	assert.Equal(t, epoch, row.RecordedAt)
	assert.Equal(t, 10.5, row.Lat)
	assert.Equal(t, 4.0, *row.AccuracyMeters)
}

func TestCheckInCreateAndList(t *testing.T) {
	pool := testutil.NewPool(t)
	svc := services.NewCheckInService(pool.DB, testutil.Config())
	d := seedDevice(t, pool, "u1", "CHECK-1")
	ctx := context.Background()

	ci, err := svc.Create(ctx, "u1", services.CheckInInput{
		Type:     "ok",
		Message:  ptr("Reached the summit"),
		DeviceID: &d.ID,
		Location: &models.LocationInput{Lat: ptr(1.0), Lng: ptr(2.0)},
	})
	require.NoError(t, err)
	assert.Equal(t, &models.Location{Lat: 1, Lng: 2}, ci.GeoPoint.Location())

	rows, err := svc.List(ctx, "u1", 50)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ok", rows[0].Type)
}

func TestCheckInRejectsForeignDeviceAndPartialLocation(t *testing.T) {
	pool := testutil.NewPool(t)
	svc := services.NewCheckInService(pool.DB, testutil.Config())
	d := seedDevice(t, pool, "u1", "CHECK-2")
	ctx := context.Background()

	_, err := svc.Create(ctx, "u2", services.CheckInInput{Type: "ok", DeviceID: &d.ID})
	assert.ErrorIs(t, err, services.ErrDeviceNotFound)

	_, err = svc.Create(ctx, "u1", services.CheckInInput{Type: "ok", Location: &models.LocationInput{Lat: ptr(1.0)}})
	assert.ErrorIs(t, err, services.ErrIncompleteLocation)
}

func TestFamilyMembers(t *testing.T) {
	pool := testutil.NewPool(t)
	svc := services.NewFamilyService(pool.DB, testutil.Config())
	ctx := context.Background()

	seen := epoch
	m, err := svc.Create(ctx, "u1", services.FamilyMemberInput{DisplayName: "Alice", Status: ptr("SAFE"), LastSeenTime: &seen})
	require.NoError(t, err)

	rows, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].DisplayName)

	assert.ErrorIs(t, svc.Delete(ctx, "u2", m.ID), services.ErrFamilyMemberNotFound)
	require.NoError(t, svc.Delete(ctx, "u1", m.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "u1", m.ID), services.ErrFamilyMemberNotFound)
}

func TestMessages(t *testing.T) {
	pool := testutil.NewPool(t)
	svc := services.NewMessageService(pool.DB, testutil.Config())
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", services.MessageInput{Text: "   "})
	assert.ErrorIs(t, err, services.ErrEmptyText)

	_, err = svc.Create(ctx, "u1", services.MessageInput{Text: "Camping at the north lake tonight"})
	require.NoError(t, err)

	rows, err := svc.List(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].GeoPoint.Location())
}

func TestEnsureDemoUserIsIdempotent(t *testing.T) {
	pool := testutil.NewPool(t)
	svc := services.NewUserService(pool.DB, testutil.Config())
	ctx := context.Background()

	require.NoError(t, svc.EnsureDemoUser(ctx))
	require.NoError(t, svc.EnsureDemoUser(ctx))

	u, err := svc.Get(ctx, models.DemoUserID)
	require.NoError(t, err)
	assert.Equal(t, "demo@example.com", *u.Email)
	assert.Equal(t, "Demo User", *u.DisplayName)

	ok, err := svc.Exists(ctx, models.DemoUserID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Get(ctx, "ghost")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestLocalCacheRoundTrip(t *testing.T) {
	cache := services.NewLocalCacheService(time.Minute)
	ctx := context.Background()

	var got models.StatusView
	hit, err := cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	start := epoch
	require.NoError(t, cache.Set(ctx, "k", models.StatusView{Active: true, StartTime: &start}, 0))
	hit, err = cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, got.Active)
	assert.True(t, epoch.Equal(*got.StartTime))

	require.NoError(t, cache.Delete(ctx, "k"))
	hit, _ = cache.Get(ctx, "k", &got)
	assert.False(t, hit)
	assert.Equal(t, "local", cache.Backend())
}

func TestSOSTopic(t *testing.T) {
	assert.Equal(t, "trailguard/users/u1/sos", services.SOSTopic("trailguard/", "u1"))
}
