package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/database"
	"github.com/JoshCLWren/TrailGuard/internal/test/testutil"
	"github.com/JoshCLWren/TrailGuard/pkg/metrics"
)

func ptr[T any](v T) *T { return &v }

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type sosFixture struct {
	pool     *database.ConnectionPool
	svc      *services.SOSService
	clock    *testutil.Clock
	notifier *testutil.RecordingNotifier
}

func newSOSFixture(t *testing.T) *sosFixture {
	pool := testutil.NewPool(t)
	clock := testutil.NewClock(epoch)
	notifier := &testutil.RecordingNotifier{}
	svc := services.NewSOSService(pool.DB, testutil.Config(), services.NewLocalCacheService(time.Minute), notifier).(*services.SOSService)
	svc.Now = clock.Now
	return &sosFixture{pool: pool, svc: svc, clock: clock, notifier: notifier}
}

func (f *sosFixture) countSessions(t *testing.T, userID string, openOnly bool) int64 {
	q := f.pool.DB.Model(&models.SOSSession{}).Where("user_id = ?", userID)
	if openOnly {
		q = q.Where("cancel_time IS NULL")
	}
	var n int64
	require.NoError(t, q.Count(&n).Error)
	return n
}

func TestSOSActivateCancelRoundTrip(t *testing.T) {
	f := newSOSFixture(t)
	ctx := context.Background()

	view, err := f.svc.Activate(ctx, "u1", services.ActivateSOSInput{
		Message:  ptr("help"),
		Location: &models.LocationInput{Lat: ptr(1.0), Lng: ptr(2.0), AccuracyMeters: ptr(5.0)},
	})
	require.NoError(t, err)
	assert.True(t, view.Active)
	assert.Equal(t, epoch, *view.StartTime)
	assert.Equal(t, &models.Location{Lat: 1, Lng: 2, AccuracyMeters: ptr(5.0)}, view.LastKnownLocation)

	f.clock.Advance(time.Minute)
	view, err = f.svc.Cancel(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusView{}, view)

	view, err = f.svc.GetStatus(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, view.Active)

	events := f.notifier.Events()
	require.Len(t, events, 2)
	assert.Equal(t, services.SOSEventActivated, events[0].Type)
	assert.Equal(t, "help", *events[0].Message)
	assert.Equal(t, services.SOSEventCancelled, events[1].Type)
	assert.Equal(t, events[0].SessionID, events[1].SessionID)
}

func TestSOSActivateTwiceReusesSession(t *testing.T) {
	f := newSOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.Activate(ctx, "u1", services.ActivateSOSInput{
		Message:  ptr("first"),
		Location: &models.LocationInput{Lat: ptr(1.0), Lng: ptr(2.0)},
	})
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	view, err := f.svc.Activate(ctx, "u1", services.ActivateSOSInput{
		Message:  ptr(""),
		Location: &models.LocationInput{Lat: ptr(9.0)},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.countSessions(t, "u1", false))
	assert.WithinDuration(t, epoch, *view.StartTime, 0, "start time is kept")
	assert.Equal(t, 1.0, view.LastKnownLocation.Lat, "incomplete location is ignored")

	var sess models.SOSSession
	require.NoError(t, f.pool.DB.Where("user_id = ?", "u1").First(&sess).Error)
	assert.Equal(t, "first", *sess.Message, "empty message is ignored")

	f.clock.Advance(time.Minute)
	view, err = f.svc.Activate(ctx, "u1", services.ActivateSOSInput{
		Message:  ptr("second"),
		Location: &models.LocationInput{Lat: ptr(3.0), Lng: ptr(4.0)},
	})
	require.NoError(t, err)
	assert.Equal(t, &models.Location{Lat: 3, Lng: 4}, view.LastKnownLocation)
	require.NoError(t, f.pool.DB.Where("user_id = ?", "u1").First(&sess).Error)
	assert.Equal(t, "second", *sess.Message)

	events := f.notifier.Events()
	require.Len(t, events, 3)
	assert.Equal(t, services.SOSEventUpdated, events[2].Type)
}

func TestSOSCancelTwiceIsIdempotent(t *testing.T) {
	f := newSOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.Activate(ctx, "u1", services.ActivateSOSInput{})
	require.NoError(t, err)

	first, err := f.svc.Cancel(ctx, "u1")
	require.NoError(t, err)
	second, err := f.svc.Cancel(ctx, "u1")
	require.NoError(t, err)

	assert.False(t, first.Active)
	assert.False(t, second.Active)
	assert.Equal(t, int64(1), f.countSessions(t, "u1", false))
	assert.Len(t, f.notifier.Events(), 2)
}

func TestSOSCancelWithoutSession(t *testing.T) {
	f := newSOSFixture(t)

	view, err := f.svc.Cancel(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Equal(t, models.StatusView{}, view)
	assert.Zero(t, f.countSessions(t, "nobody", false))
	assert.Empty(t, f.notifier.Events())
}

func TestSOSReactivateStartsNewSession(t *testing.T) {
	f := newSOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.Activate(ctx, "u1", services.ActivateSOSInput{})
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, "u1")
	require.NoError(t, err)

	later := f.clock.Advance(time.Hour)
	view, err := f.svc.Activate(ctx, "u1", services.ActivateSOSInput{})
	require.NoError(t, err)

	assert.True(t, view.Active)
	assert.Equal(t, later, *view.StartTime)
	assert.Equal(t, int64(2), f.countSessions(t, "u1", false))
	assert.Equal(t, int64(1), f.countSessions(t, "u1", true))
}

func TestSOSAtMostOneOpenSessionPerUser(t *testing.T) {
	f := newSOSFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.svc.Activate(ctx, "u1", services.ActivateSOSInput{})
		require.NoError(t, err)
		if i%2 == 1 {
			_, err = f.svc.Cancel(ctx, "u1")
			require.NoError(t, err)
		}
		f.clock.Advance(time.Second)
		assert.LessOrEqual(t, f.countSessions(t, "u1", true), int64(1))
	}

	err := f.pool.DB.Create(&models.SOSSession{UserID: "u1", StartTime: f.clock.Now()}).Error
	assert.Error(t, err, "the store refuses a second open session")
}

func TestSOSLatestOpenSessionWins(t *testing.T) {
	f := newSOSFixture(t)
	require.NoError(t, f.pool.DB.Migrator().DropIndex(&models.SOSSession{}, database.OpenSOSIndex))

	older := models.SOSSession{UserID: "u1", StartTime: epoch}
	newer := models.SOSSession{UserID: "u1", StartTime: epoch.Add(time.Minute)}
	newer.LastKnown.SetLocation(&models.Location{Lat: 7, Lng: 8})
	require.NoError(t, f.pool.DB.Create(&older).Error)
	require.NoError(t, f.pool.DB.Create(&newer).Error)

	view, err := f.svc.GetStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.WithinDuration(t, epoch.Add(time.Minute), *view.StartTime, 0)
	assert.Equal(t, 7.0, view.LastKnownLocation.Lat)

	// cancelling the newest exposes the older open session
	view, err = f.svc.Cancel(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, view.Active)
	assert.WithinDuration(t, epoch, *view.StartTime, 0)
}

func TestSOSNotifierFailureDoesNotFailRequest(t *testing.T) {
	f := newSOSFixture(t)
	f.notifier.Err = errors.New("broker down")

	view, err := f.svc.Activate(context.Background(), "u1", services.ActivateSOSInput{})

	require.NoError(t, err)
	assert.True(t, view.Active)
}

func TestSOSStatusIsCachedByTransitions(t *testing.T) {
	f := newSOSFixture(t)
	ctx := context.Background()

	view, err := f.svc.GetStatus(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, view.Active)

	_, err = f.svc.Activate(ctx, "u1", services.ActivateSOSInput{})
	require.NoError(t, err)

	view, err = f.svc.GetStatus(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, view.Active, "activate caches the new view")
}

// afterNextQuery runs fn once, right after the next query on pool completes.
func afterNextQuery(t *testing.T, pool *database.ConnectionPool, fn func()) {
	fired := false
	err := pool.DB.Callback().Query().After("gorm:query").Register("test:after_next_query", func(*gorm.DB) {
		if fired {
			return
		}
		fired = true
		fn()
	})
	require.NoError(t, err)
}

func TestSOSStatusReadDoesNotHideConcurrentActivate(t *testing.T) {
	f := newSOSFixture(t)
	ctx := context.Background()

	afterNextQuery(t, f.pool, func() {
		_, err := f.svc.Activate(ctx, "u1", services.ActivateSOSInput{})
		require.NoError(t, err)
	})

	view, err := f.svc.GetStatus(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, view.Active, "the read ran before the activation")
	require.Equal(t, int64(1), f.countSessions(t, "u1", true))

	view, err = f.svc.GetStatus(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, view.Active)
}

func TestSOSStatusReadDoesNotHideConcurrentCancel(t *testing.T) {
	f := newSOSFixture(t)
	ctx := context.Background()
	_, err := f.svc.Activate(ctx, "u1", services.ActivateSOSInput{})
	require.NoError(t, err)
	// drop the entry the activation cached so the next read hits the store
	require.NoError(t, f.svc.Cache.Delete(ctx, "sos:status:u1"))

	afterNextQuery(t, f.pool, func() {
		_, err := f.svc.Cancel(ctx, "u1")
		require.NoError(t, err)
	})

	view, err := f.svc.GetStatus(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, view.Active, "the read ran before the cancel")

	view, err = f.svc.GetStatus(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, view.Active)
}

func TestSOSCancelWithoutSessionLeavesCacheEmpty(t *testing.T) {
	f := newSOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.Cancel(ctx, "u1")
	require.NoError(t, err)

	var cached models.StatusView
	hit, err := f.svc.Cache.Get(ctx, "sos:status:u1", &cached)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSOSTransitionsAreCounted(t *testing.T) {
	f := newSOSFixture(t)
	ctx := context.Background()
	before := promtest.ToFloat64(metrics.SOSTransitionCounter("activated"))

	_, err := f.svc.Activate(ctx, "counted", services.ActivateSOSInput{})
	require.NoError(t, err)

	assert.Equal(t, before+1, promtest.ToFloat64(metrics.SOSTransitionCounter("activated")))
}
