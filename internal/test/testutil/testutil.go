// Package testutil builds isolated databases and fakes for package tests.
package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/database"
)

// Config returns the defaults a fresh environment would produce.
func Config() *config.Config {
	return &config.Config{
		EnvType:               "LOCAL",
		DBDriver:              database.DriverSQLite,
		DatabaseURL:           "file::memory:",
		DBMigrationMode:       database.MigrationAuto,
		ServerPort:            "3000",
		GinMode:               "test",
		CORSAllowedOrigins:    []string{"http://localhost:8000", "http://127.0.0.1:8000"},
		RateLimit:             "1000-S",
		ResponseCacheTTL:      5 * time.Second,
		CacheType:             "local",
		CacheTTL:              30 * time.Second,
		MQTTTopicPrefix:       "trailguard",
		MQTTQoS:               1,
		FirmwareLatestVersion: "1.2.3",
		FirmwareReleaseNotes:  "Improved GPS accuracy and battery reporting.",
	}
}

// NewPool opens a private in-memory database with the full schema.
func NewPool(t testing.TB) *database.ConnectionPool {
	t.Helper()
	pool, err := database.Open(database.Options{
		Driver:       database.DriverSQLite,
		DSN:          "file::memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     gormlogger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	require.NoError(t, database.Migrate(pool.DB, database.MigrationAuto))
	return pool
}

// SeedUser inserts a user with the given id.
func SeedUser(t testing.TB, pool *database.ConnectionPool, id string) {
	t.Helper()
	require.NoError(t, pool.DB.Create(&models.User{BaseModel: models.BaseModel{ID: id}}).Error)
}

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start.UTC()}
}

// Now returns the current instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// RecordingNotifier keeps every published SOS event.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []services.SOSEvent
	Err    error
}

func (n *RecordingNotifier) PublishSOSEvent(event services.SOSEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.Err
}

func (n *RecordingNotifier) Close() {}

// Events returns a copy of the recorded events.
func (n *RecordingNotifier) Events() []services.SOSEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]services.SOSEvent(nil), n.events...)
}
